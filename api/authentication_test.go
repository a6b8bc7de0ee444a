package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

const testSigningSecret = "test-signing-secret"

func signTestToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthTestRouter(capturedCreds *models.Credentials) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := NewAuthentication([]byte(testSigningSecret))
	r.POST("/drm", auth.Middleware, func(c *gin.Context) {
		if creds, ok := utils.CredentialsFromCtx(c.Request.Context()); ok && capturedCreds != nil {
			*capturedCreds = creds
		}
		c.JSON(http.StatusOK, gin.H{"drmActivated": false})
	})
	return r
}

func TestAuthenticationMiddleware_RejectsWithCanonicalBody(t *testing.T) {
	router := newAuthTestRouter(nil)

	expiredToken := signTestToken(t, testSigningSecret, jwt.RegisteredClaims{
		Subject:   "household-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	wrongSecretToken := signTestToken(t, "some-other-secret", jwt.RegisteredClaims{
		Subject: "household-1",
	})
	noSubjectToken := signTestToken(t, testSigningSecret, jwt.RegisteredClaims{})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expiredToken},
		{"wrong signing secret", "Bearer " + wrongSecretToken},
		{"no subject claim", "Bearer " + noSubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/drm", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// The body is an exact contract with the mobile client.
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestAuthenticationMiddleware_AcceptsValidTokenAndStoresCredentials(t *testing.T) {
	var creds models.Credentials
	router := newAuthTestRouter(&creds)

	token := signTestToken(t, testSigningSecret, jwt.RegisteredClaims{
		Subject:   "household-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodPost, "/drm", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "household-42", creds.HouseholdKey)
}

func TestParseAuthorizationBearerHeader_Nominal(t *testing.T) {
	header := http.Header{}
	header.Add("Authorization", "Bearer TOKEN")

	authorization, err := ParseAuthorizationBearerHeader(header)
	assert.NoError(t, err)
	assert.Equal(t, "TOKEN", authorization)
}

func TestParseAuthorizationBearerHeader_EmptyHeader(t *testing.T) {
	authorization, err := ParseAuthorizationBearerHeader(http.Header{})
	assert.NoError(t, err)
	assert.Empty(t, authorization)
}

func TestParseAuthorizationBearerHeader_BadBearerFormat(t *testing.T) {
	header := http.Header{}
	header.Add("Authorization", "MalformedBearer")

	_, err := ParseAuthorizationBearerHeader(header)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}
