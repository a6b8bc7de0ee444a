package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/RogueScr1be/fast-food-sub005/dto"
	"github.com/RogueScr1be/fast-food-sub005/models"
)

type feedbackRecorder interface {
	RecordFeedback(ctx context.Context, eventId, rawAction string) (bool, error)
}

func handlePostFeedback(uc feedbackRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.FeedbackBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		recorded, err := uc.RecordFeedback(ctx, body.DecisionId, body.Action)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.FeedbackResponse{Recorded: recorded})
	}
}
