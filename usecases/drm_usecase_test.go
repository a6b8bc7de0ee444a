package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

func newDrmUsecase(gate stubGate, events *fakeEventRepository, sessions *fakeSessionRepository,
	metrics *fakeMetricsRepository, cfg models.FallbackConfig,
) DrmUsecase {
	return DrmUsecase{
		executorFactory:   stubExecutorFactory{},
		gate:              gate,
		eventRepository:   events,
		sessionRepository: sessions,
		metricsRepository: metrics,
		fallbackConfig:    cfg,
	}
}

func TestExecuteOverride_DisabledCapabilityNeverActivates(t *testing.T) {
	uc := newDrmUsecase(stubGate{drmActive: false}, &fakeEventRepository{},
		&fakeSessionRepository{}, &fakeMetricsRepository{}, models.DefaultFallbackConfig())

	// The gate answers before the payload is even parsed, so garbage
	// reasons get the same quiet refusal as valid ones.
	for _, reason := range []string{"rejection_threshold", "time_threshold", "explicit_done", "no_valid_meal", "bogus", ""} {
		output, activated, err := uc.ExecuteOverride(context.Background(), "session-1", reason)
		require.NoError(t, err)
		assert.False(t, activated)
		assert.Empty(t, output.DecisionId)
	}
}

func TestExecuteOverride_ReturnsForcedDecision(t *testing.T) {
	events := &fakeEventRepository{}
	sessions := &fakeSessionRepository{}
	metrics := &fakeMetricsRepository{}
	uc := newDrmUsecase(stubGate{drmActive: true}, events, sessions, metrics, models.DefaultFallbackConfig())

	output, activated, err := uc.ExecuteOverride(context.Background(), "session-1", "explicit_done")
	require.NoError(t, err)

	assert.True(t, activated)
	assert.NotEmpty(t, output.DecisionId)
	assert.NotEmpty(t, output.Meal)
	assert.NotEmpty(t, output.ExecutionPayload.Steps)
	assert.Equal(t, models.DrmTriggerExplicitDone, output.Reason)
}

func TestExecuteOverride_RecordsSideEffects(t *testing.T) {
	events := &fakeEventRepository{}
	sessions := &fakeSessionRepository{}
	metrics := &fakeMetricsRepository{}
	uc := newDrmUsecase(stubGate{drmActive: true}, events, sessions, metrics, models.DefaultFallbackConfig())

	output, _, err := uc.ExecuteOverride(context.Background(), "session-1", "rejection_threshold")
	require.NoError(t, err)

	require.Len(t, events.created, 1)
	assert.Equal(t, output.DecisionId, events.created[0].Id)
	assert.Equal(t, models.DecisionSourceRescue, events.created[0].Source)
	assert.Equal(t, models.SessionRescued, sessions.outcomes["session-1"])
	assert.Equal(t, int64(1), metrics.counts[models.MetricDrmRescue])
}

func TestExecuteOverride_BookkeepingFailureDoesNotBlockTheRescue(t *testing.T) {
	events := &fakeEventRepository{err: assert.AnError}
	uc := newDrmUsecase(stubGate{drmActive: true}, events,
		&fakeSessionRepository{}, &fakeMetricsRepository{}, models.DefaultFallbackConfig())

	output, activated, err := uc.ExecuteOverride(context.Background(), "session-1", "time_threshold")
	require.NoError(t, err)
	assert.True(t, activated)
	assert.NotEmpty(t, output.Meal)
}

func TestExecuteOverride_UnknownReasonFails(t *testing.T) {
	uc := newDrmUsecase(stubGate{drmActive: true}, &fakeEventRepository{},
		&fakeSessionRepository{}, &fakeMetricsRepository{}, models.DefaultFallbackConfig())

	_, activated, err := uc.ExecuteOverride(context.Background(), "session-1", "hungry")
	assert.ErrorIs(t, err, models.BadParameterError)
	assert.False(t, activated)
}

func TestExecuteOverride_EmptyPoolIsRescueUnavailable(t *testing.T) {
	uc := newDrmUsecase(stubGate{drmActive: true}, &fakeEventRepository{},
		&fakeSessionRepository{}, &fakeMetricsRepository{}, models.FallbackConfig{})

	_, activated, err := uc.ExecuteOverride(context.Background(), "session-1", "no_valid_meal")
	assert.True(t, IsRescueUnavailable(err))
	assert.False(t, activated)
}
