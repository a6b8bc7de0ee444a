package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type drmGate interface {
	DrmActive(ctx context.Context) bool
}

type decisionEventCreator interface {
	CreateDecisionEvent(ctx context.Context, exec repositories.Executor, event models.DecisionEvent) error
}

type sessionCreator interface {
	EnsureSession(ctx context.Context, exec repositories.Executor, session models.Session) error
}

// DecisionUsecase serves the primary decision flow. It picks a meal for the
// session context and tells the client whether the rescue flow should be
// offered next.
type DecisionUsecase struct {
	executorFactory    executorFactory
	gate               drmGate
	eventRepository    decisionEventCreator
	sessionRepository  sessionCreator
	fallbackConfig     models.FallbackConfig
	rejectionThreshold int
	decisionTimeLimit  time.Duration
}

// MakeDecision returns the chosen meal and whether a rescue is recommended.
// The recommendation is advisory: the client still has to call the override
// endpoint to get a forced decision. When the rescue capability is off the
// recommendation is always false, whatever the session looks like.
func (uc DecisionUsecase) MakeDecision(ctx context.Context, input models.DecisionContext) (models.Decision, bool, error) {
	if input.SessionId == "" {
		return models.Decision{}, false, errors.Wrap(models.BadParameterError, "missing session id")
	}

	decision := models.Decision{
		DecisionId: uuid.NewString(),
		Source:     models.DecisionSourcePrimary,
	}
	if len(input.Candidates) > 0 {
		decision.Meal = input.Candidates[0]
	} else if len(uc.fallbackConfig.Meals) > 0 {
		decision.Meal = uc.fallbackConfig.Meals[0].Name
	}

	reason, triggered := uc.triggerReason(input)
	drmRecommended := triggered && uc.gate.DrmActive(ctx)

	uc.ensureSession(ctx, input)
	uc.publishDecisionEvent(ctx, input, decision, reason, triggered)
	infra.DecisionsTotal.WithLabelValues(string(decision.Source)).Inc()

	return decision, drmRecommended, nil
}

// triggerReason derives the rescue trigger from the session context. The
// checks are ordered by how deliberate the signal is: an explicit "just
// decide" beats an empty candidate list, which beats the passive thresholds.
func (uc DecisionUsecase) triggerReason(input models.DecisionContext) (models.DrmTriggerReason, bool) {
	switch {
	case input.ExplicitDone:
		return models.DrmTriggerExplicitDone, true
	case len(input.Candidates) == 0:
		return models.DrmTriggerNoValidMeal, true
	case input.RejectedCount >= uc.rejectionThreshold:
		return models.DrmTriggerRejectionThreshold, true
	case time.Duration(input.ElapsedSeconds)*time.Second >= uc.decisionTimeLimit:
		return models.DrmTriggerTimeThreshold, true
	}
	return "", false
}

// ensureSession backs the session tracking: the first decision of a session
// creates its row, so the prune job can later see when it started. Best
// effort, like the audit log write.
func (uc DecisionUsecase) ensureSession(ctx context.Context, input models.DecisionContext) {
	err := uc.sessionRepository.EnsureSession(ctx, uc.executorFactory.NewExecutor(), models.Session{
		Id:           input.SessionId,
		HouseholdKey: input.HouseholdKey,
		StartedAt:    time.Now(),
		Outcome:      models.SessionPending,
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not ensure session row", "session_id", input.SessionId, "error", err.Error())
	}
}

// publishDecisionEvent appends the decision to the audit log. The write is
// best effort: the user already has a meal on screen, losing a log row must
// not turn into an error response.
func (uc DecisionUsecase) publishDecisionEvent(ctx context.Context, input models.DecisionContext,
	decision models.Decision, reason models.DrmTriggerReason, triggered bool,
) {
	payload := map[string]any{
		"meal":           decision.Meal,
		"rejected_count": input.RejectedCount,
	}
	if triggered {
		payload["trigger_reason"] = string(reason)
	}
	serialized, err := json.Marshal(payload)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not serialize decision payload", "error", err.Error())
		return
	}

	err = uc.eventRepository.CreateDecisionEvent(ctx, uc.executorFactory.NewExecutor(), models.DecisionEvent{
		Id:              decision.DecisionId,
		SessionId:       input.SessionId,
		HouseholdKey:    input.HouseholdKey,
		Source:          decision.Source,
		DecisionPayload: serialized,
		DecidedAt:       time.Now(),
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not persist decision event",
			"decision_id", decision.DecisionId, "error", err.Error())
	}
}
