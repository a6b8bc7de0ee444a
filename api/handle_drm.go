package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/RogueScr1be/fast-food-sub005/dto"
	"github.com/RogueScr1be/fast-food-sub005/models"
)

type overrideExecutor interface {
	ExecuteOverride(ctx context.Context, sessionId, rawReason string) (models.DrmOutput, bool, error)
}

func handlePostDrmOverride(uc overrideExecutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.DrmBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		output, activated, err := uc.ExecuteOverride(ctx, body.SessionId, body.Reason)
		if err != nil {
			// An ineligible meal pool is a product state, not a server
			// failure: the client renders a dedicated screen for it.
			if errors.Is(err, models.ErrRescueUnavailable) {
				c.JSON(http.StatusOK, dto.DrmResponse{
					DrmActivated: false,
					Status:       "rescue_unavailable",
				})
				return
			}
			presentError(c, err)
			return
		}

		if !activated {
			c.JSON(http.StatusOK, dto.DrmResponse{DrmActivated: false})
			return
		}

		decision := dto.AdaptDrmOutputDto(output)
		c.JSON(http.StatusOK, dto.DrmResponse{
			DrmActivated: true,
			Decision:     &decision,
		})
	}
}
