package api

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/RogueScr1be/fast-food-sub005/dto"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

func presentUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIErrorResponse{Error: "unauthorized"})
}

// presentError renders err and reports whether it did. The public surface is
// pinned to 200/401/500: anything that is not an authorization failure is
// logged with its cause and rendered as an opaque internal error, malformed
// input included.
func presentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, models.UnAuthorizedError) {
		presentUnauthorized(c)
		return true
	}

	ctx := c.Request.Context()
	utils.LoggerFromContext(ctx).ErrorContext(ctx, fmt.Sprintf("unexpected error: %+v", err))
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.APIErrorResponse{Error: "internal_error"})
	return true
}
