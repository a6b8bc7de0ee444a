package usecases

import (
	"context"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
)

type stubExecutorFactory struct{}

func (stubExecutorFactory) NewExecutor() repositories.Executor { return nil }

func (stubExecutorFactory) Transaction(_ context.Context, fn func(tx repositories.Executor) error) error {
	return fn(nil)
}

type stubGate struct {
	drmActive bool
	ocrActive bool
}

func (g stubGate) DrmActive(context.Context) bool { return g.drmActive }
func (g stubGate) OcrActive(context.Context) bool { return g.ocrActive }

type fakeEventRepository struct {
	created  []models.DecisionEvent
	applied  []string
	recorded bool
	err      error
}

func (r *fakeEventRepository) CreateDecisionEvent(_ context.Context, _ repositories.Executor,
	event models.DecisionEvent,
) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, event)
	return nil
}

func (r *fakeEventRepository) GetDecisionEventById(_ context.Context, _ repositories.Executor,
	eventId string,
) (models.DecisionEvent, error) {
	for _, event := range r.created {
		if event.Id == eventId {
			return event, nil
		}
	}
	return models.DecisionEvent{}, models.NotFoundError
}

func (r *fakeEventRepository) ApplyUserAction(_ context.Context, _ repositories.Executor,
	eventId string, _ models.UserAction,
) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.applied = append(r.applied, eventId)
	return r.recorded, nil
}

type fakeSessionRepository struct {
	sessions map[string]models.Session
	outcomes map[string]models.SessionOutcome
}

func (r *fakeSessionRepository) EnsureSession(_ context.Context, _ repositories.Executor,
	session models.Session,
) error {
	if r.sessions == nil {
		r.sessions = map[string]models.Session{}
	}
	if _, exists := r.sessions[session.Id]; !exists {
		r.sessions[session.Id] = session
	}
	return nil
}

func (r *fakeSessionRepository) GetSessionById(_ context.Context, _ repositories.Executor,
	sessionId string,
) (models.Session, error) {
	session, ok := r.sessions[sessionId]
	if !ok {
		return models.Session{}, models.NotFoundError
	}
	return session, nil
}

func (r *fakeSessionRepository) UpdateSessionOutcome(_ context.Context, _ repositories.Executor,
	sessionId string, outcome models.SessionOutcome,
) (bool, error) {
	if r.outcomes == nil {
		r.outcomes = map[string]models.SessionOutcome{}
	}
	r.outcomes[sessionId] = outcome
	return true, nil
}

type fakeMetricsRepository struct {
	counts map[string]int64
}

func (r *fakeMetricsRepository) IncrementDailyMetric(_ context.Context, _ repositories.Executor,
	metricKey string, delta int64,
) error {
	if r.counts == nil {
		r.counts = map[string]int64{}
	}
	r.counts[metricKey] += delta
	return nil
}

type fakeTaskQueue struct {
	enqueued []models.ReceiptOcrJobArgs
	err      error
}

func (q *fakeTaskQueue) EnqueueReceiptOcrTask(_ context.Context, args models.ReceiptOcrJobArgs) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, args)
	return nil
}
