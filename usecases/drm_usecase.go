package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/usecases/drm"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type rescueSessionRepository interface {
	GetSessionById(ctx context.Context, exec repositories.Executor, sessionId string) (models.Session, error)
	UpdateSessionOutcome(ctx context.Context, exec repositories.Executor,
		sessionId string, outcome models.SessionOutcome) (bool, error)
}

type dailyMetricIncrementer interface {
	IncrementDailyMetric(ctx context.Context, exec repositories.Executor,
		metricKey string, delta int64) error
}

// DrmUsecase serves forced fallback decisions. It sits between the flag gate
// and the pure selection engine and owns every side effect of a rescue.
type DrmUsecase struct {
	executorFactory   executorFactory
	gate              drmGate
	eventRepository   decisionEventCreator
	sessionRepository rescueSessionRepository
	metricsRepository dailyMetricIncrementer
	fallbackConfig    models.FallbackConfig
}

// ExecuteOverride produces a forced decision for the session. The gate is
// checked before the reason is even parsed: a disabled capability answers
// "not activated" to any payload, valid or not. The boolean reports whether
// the rescue actually ran.
func (uc DrmUsecase) ExecuteOverride(ctx context.Context, sessionId, rawReason string) (models.DrmOutput, bool, error) {
	if !uc.gate.DrmActive(ctx) {
		return models.DrmOutput{}, false, nil
	}

	reason, err := models.DrmTriggerReasonFrom(rawReason)
	if err != nil {
		return models.DrmOutput{}, false, err
	}

	output, err := drm.Execute(sessionId, uc.fallbackConfig, reason)
	if err != nil {
		return models.DrmOutput{}, false, err
	}

	uc.recordRescue(ctx, sessionId, output)
	infra.DrmRescuesTotal.WithLabelValues(string(output.Reason)).Inc()
	infra.DecisionsTotal.WithLabelValues(string(models.DecisionSourceRescue)).Inc()

	return output, true, nil
}

// recordRescue persists the audit trail of a successful rescue. The audit
// row, the session outcome and the daily metric move in one transaction, and
// the whole transaction is best effort: the forced decision is already made
// and the client gets it regardless of what the bookkeeping does.
func (uc DrmUsecase) recordRescue(ctx context.Context, sessionId string, output models.DrmOutput) {
	logger := utils.LoggerFromContext(ctx)

	// The household key comes from the request credentials, or from the
	// session row when the rescue was triggered outside a request.
	householdKey := ""
	if creds, ok := utils.CredentialsFromCtx(ctx); ok {
		householdKey = creds.HouseholdKey
	} else if session, err := uc.sessionRepository.GetSessionById(
		ctx, uc.executorFactory.NewExecutor(), sessionId); err == nil {
		householdKey = session.HouseholdKey
	}

	payload, err := json.Marshal(map[string]any{
		"meal":           output.Meal,
		"estimated_time": output.EstimatedTime,
		"trigger_reason": string(output.Reason),
		"steps":          output.ExecutionPayload.Steps,
	})
	if err != nil {
		logger.WarnContext(ctx, "could not serialize rescue payload",
			"decision_id", output.DecisionId, "error", err.Error())
		return
	}

	err = uc.executorFactory.Transaction(ctx, func(tx repositories.Executor) error {
		err := uc.eventRepository.CreateDecisionEvent(ctx, tx, models.DecisionEvent{
			Id:              output.DecisionId,
			SessionId:       sessionId,
			HouseholdKey:    householdKey,
			Source:          models.DecisionSourceRescue,
			DecisionPayload: payload,
			DecidedAt:       time.Now(),
		})
		if err != nil {
			return err
		}
		if _, err := uc.sessionRepository.UpdateSessionOutcome(ctx, tx, sessionId, models.SessionRescued); err != nil {
			return err
		}
		return uc.metricsRepository.IncrementDailyMetric(ctx, tx, models.MetricDrmRescue, 1)
	})
	if err != nil {
		logger.WarnContext(ctx, "could not record rescue bookkeeping",
			"session_id", sessionId, "decision_id", output.DecisionId, "error", err.Error())
	}
}

// IsRescueUnavailable reports whether the error is the engine's "no eligible
// meal" outcome, which the API renders as a dedicated status rather than an
// internal error.
func IsRescueUnavailable(err error) bool {
	return errors.Is(err, models.ErrRescueUnavailable)
}
