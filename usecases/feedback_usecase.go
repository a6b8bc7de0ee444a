package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type userActionApplier interface {
	GetDecisionEventById(ctx context.Context, exec repositories.Executor,
		eventId string) (models.DecisionEvent, error)
	ApplyUserAction(ctx context.Context, exec repositories.Executor,
		eventId string, action models.UserAction) (bool, error)
}

type feedbackSessionRepository interface {
	UpdateSessionOutcome(ctx context.Context, exec repositories.Executor,
		sessionId string, outcome models.SessionOutcome) (bool, error)
}

// FeedbackUsecase records how the user acted on a decision.
type FeedbackUsecase struct {
	executorFactory   executorFactory
	eventRepository   userActionApplier
	sessionRepository feedbackSessionRepository
	metricsRepository dailyMetricIncrementer
}

// RecordFeedback applies the user action to the decision event. The returned
// boolean is false when the event does not exist or was already actioned,
// which the client treats as "nothing to do", not as a failure.
func (uc FeedbackUsecase) RecordFeedback(ctx context.Context, eventId, rawAction string) (bool, error) {
	if eventId == "" {
		return false, errors.Wrap(models.BadParameterError, "missing decision id")
	}
	action, err := models.UserActionFrom(rawAction)
	if err != nil {
		return false, err
	}

	exec := uc.executorFactory.NewExecutor()

	recorded, err := uc.eventRepository.ApplyUserAction(ctx, exec, eventId, action)
	if err != nil {
		return false, errors.Wrap(err, "apply user action")
	}
	if !recorded {
		return false, nil
	}

	if action == models.UserActionApproved {
		uc.settleSession(ctx, exec, eventId)
	}

	if err := uc.metricsRepository.IncrementDailyMetric(ctx, exec, models.MetricFeedbackRecorded, 1); err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not increment feedback metric", "error", err.Error())
	}
	return true, nil
}

// settleSession closes the session of an approved decision so the prune job
// never counts it as abandoned. Best effort, the feedback itself is already
// recorded.
func (uc FeedbackUsecase) settleSession(ctx context.Context, exec repositories.Executor, eventId string) {
	logger := utils.LoggerFromContext(ctx)

	event, err := uc.eventRepository.GetDecisionEventById(ctx, exec, eventId)
	if err != nil {
		logger.WarnContext(ctx, "could not load decision event to settle its session",
			"decision_id", eventId, "error", err.Error())
		return
	}
	if _, err := uc.sessionRepository.UpdateSessionOutcome(ctx, exec, event.SessionId, models.SessionApproved); err != nil {
		logger.WarnContext(ctx, "could not mark session as approved",
			"session_id", event.SessionId, "error", err.Error())
	}
}
