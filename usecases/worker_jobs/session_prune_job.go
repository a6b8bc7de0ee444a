package worker_jobs

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

const (
	SESSION_PRUNE_INTERVAL = 5 * time.Minute
	SESSION_PRUNE_TIMEOUT  = 1 * time.Minute
)

func NewSessionPrunePeriodicJob() *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(SESSION_PRUNE_INTERVAL),
		func() (river.JobArgs, *river.InsertOpts) {
			return models.SessionPruneJobArgs{},
				&river.InsertOpts{
					UniqueOpts: river.UniqueOpts{
						ByPeriod: SESSION_PRUNE_INTERVAL,
					},
				}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

type sessionPruneRepository interface {
	PruneStaleSessions(ctx context.Context, exec repositories.Executor,
		olderThan time.Time, limit int) (int64, error)
}

type pruneMetricsRepository interface {
	IncrementDailyMetric(ctx context.Context, exec repositories.Executor,
		metricKey string, delta int64) error
}

type executorFactory interface {
	NewExecutor() repositories.Executor
}

// SessionPruneWorker moves pending sessions that outlived the inactivity
// window to the abandoned outcome. Batches are bounded, a backlog larger
// than one batch drains over successive runs.
type SessionPruneWorker struct {
	river.WorkerDefaults[models.SessionPruneJobArgs]

	sessionRepository sessionPruneRepository
	metricsRepository pruneMetricsRepository
	executorFactory   executorFactory
	sessionTtl        time.Duration
}

func NewSessionPruneWorker(
	sessionRepository sessionPruneRepository,
	metricsRepository pruneMetricsRepository,
	executorFactory executorFactory,
	sessionTtl time.Duration,
) *SessionPruneWorker {
	return &SessionPruneWorker{
		sessionRepository: sessionRepository,
		metricsRepository: metricsRepository,
		executorFactory:   executorFactory,
		sessionTtl:        sessionTtl,
	}
}

func (w *SessionPruneWorker) Timeout(job *river.Job[models.SessionPruneJobArgs]) time.Duration {
	return SESSION_PRUNE_TIMEOUT
}

func (w *SessionPruneWorker) Work(ctx context.Context, job *river.Job[models.SessionPruneJobArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	exec := w.executorFactory.NewExecutor()

	cutoff := time.Now().Add(-w.sessionTtl)

	pruned, err := w.sessionRepository.PruneStaleSessions(ctx, exec, cutoff, models.SessionPruneBatchSize)
	if err != nil {
		// The batch update can lose a lock race against a concurrent
		// rescue or feedback write. The next periodic run catches up.
		if repositories.IsDeadlockError(err) {
			logger.WarnContext(ctx, "session prune lost a lock race, leaving the batch to the next run")
			return nil
		}
		logger.ErrorContext(ctx, "failed to prune stale sessions", "error", err.Error())
		return err
	}
	if pruned == 0 {
		return nil
	}

	infra.SessionsPrunedTotal.Add(float64(pruned))
	if err := w.metricsRepository.IncrementDailyMetric(ctx, exec, models.MetricSessionAbandoned, pruned); err != nil {
		logger.WarnContext(ctx, "could not increment abandoned sessions metric", "error", err.Error())
	}

	logger.InfoContext(ctx, "pruned stale sessions", "count", pruned, "cutoff", cutoff)
	return nil
}
