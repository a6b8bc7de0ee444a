package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/RogueScr1be/fast-food-sub005/dto"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type decisionMaker interface {
	MakeDecision(ctx context.Context, input models.DecisionContext) (models.Decision, bool, error)
}

func handlePostDecision(uc decisionMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.DecisionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		creds, _ := utils.CredentialsFromCtx(ctx)

		decision, drmRecommended, err := uc.MakeDecision(ctx, models.DecisionContext{
			SessionId:      body.SessionId,
			HouseholdKey:   creds.HouseholdKey,
			RejectedCount:  body.RejectedCount,
			ElapsedSeconds: body.ElapsedSeconds,
			ExplicitDone:   body.ExplicitDone,
			Candidates:     body.Candidates,
		})
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.DecisionResponse{
			Decision:       dto.AdaptDecisionDto(decision),
			DrmRecommended: drmRecommended,
		})
	}
}
