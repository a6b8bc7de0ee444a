package api

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

// Authentication validates the Supabase issued bearer token and stores the
// resulting credentials in the request context. Any failure, from a missing
// header to a bad signature, collapses to the same canonical 401 body so
// that clients cannot probe why a token was rejected.
type Authentication struct {
	signingSecret []byte
}

func NewAuthentication(signingSecret []byte) Authentication {
	return Authentication{signingSecret: signingSecret}
}

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	authHeader := strings.Split(authorization, "Bearer ")
	if len(authHeader) != 2 {
		return "", errors.Wrap(models.UnAuthorizedError, "malformed token")
	}
	return authHeader[1], nil
}

func (a Authentication) Middleware(c *gin.Context) {
	tokenString, err := ParseAuthorizationBearerHeader(c.Request.Header)
	if err != nil || tokenString == "" {
		presentUnauthorized(c)
		return
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method %v", t.Header["alg"])
		}
		return a.signingSecret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		presentUnauthorized(c)
		return
	}

	creds := models.Credentials{HouseholdKey: claims.Subject}
	c.Request = c.Request.WithContext(
		utils.StoreCredentialsInContext(c.Request.Context(), creds))
	c.Next()
}
