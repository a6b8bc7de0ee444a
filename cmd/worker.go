package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/jobs"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/usecases/worker_jobs"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

func RunTaskQueue() error {
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetEnv("DATABASE_URL", utils.GetEnv("DATABASE_URL_STAGING", "")),
		Database:           "decision_os",
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
	workerConfig := struct {
		env               string
		loggingFormat     string
		sentryDsn         string
		ocrApiUrl         string
		ocrApiKey         string
		sessionTtlMinutes int
		probePort         string
	}{
		env:               utils.GetEnv("ENV", "development"),
		loggingFormat:     utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:         utils.GetEnv("SENTRY_DSN", ""),
		ocrApiUrl:         utils.GetEnv("OCR_API_URL", ""),
		ocrApiKey:         utils.GetEnv("OCR_API_KEY", ""),
		sessionTtlMinutes: utils.GetEnv("SESSION_TTL_MINUTES", 30),
		probePort:         utils.GetEnv("PROBE_PORT", ""),
	}

	logger := utils.NewLogger(workerConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(workerConfig.sentryDsn, workerConfig.env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repos := repositories.NewRepositories(pool,
		repositories.WithOcrApi(workerConfig.ocrApiUrl, workerConfig.ocrApiKey),
	)

	sessionTtl := time.Duration(workerConfig.sessionTtlMinutes) * time.Minute

	workers := river.NewWorkers()
	river.AddWorker(workers, worker_jobs.NewSessionPruneWorker(
		repos.DecisionOsDbRepository,
		repos.DecisionOsDbRepository,
		repos.ExecutorGetter,
		sessionTtl,
	))
	river.AddWorker(workers, worker_jobs.NewReceiptOcrWorker(
		repos.OcrRepository,
		repos.DecisionOsDbRepository,
		repos.ExecutorGetter,
	))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: 100 * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		// Must be larger than the time it takes to process a job.
		RescueStuckJobsAfter: 5 * time.Minute,
		PeriodicJobs: []*river.PeriodicJob{
			worker_jobs.NewSessionPrunePeriodicJob(),
		},
		WorkerMiddleware: []rivertype.WorkerMiddleware{
			jobs.NewSentryMiddleware(),
			jobs.NewLoggerMiddleware(logger),
			jobs.NewRecovererMiddleware(),
		},
		Workers: workers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// run a non-blocking basic http server to respond to infra http probes
	if workerConfig.probePort != "" {
		go func() {
			http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})
			if err := http.ListenAndServe(":"+workerConfig.probePort, nil); err != nil {
				utils.LogAndReportSentryError(ctx, err)
			}
		}()
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")

	return nil
}

// This stop goroutine waits for SIGINT/SIGTERM and when received, tries to stop
// gracefully by allowing a chance for jobs to finish. But if that isn't
// working, a second SIGINT/SIGTERM will tell it to terminate with prejudice and
// it'll issue a hard stop that cancels the context of all active jobs. In
// case that doesn't work, a third SIGINT/SIGTERM ignores River's stop procedure
// completely and exits uncleanly.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 5*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	// As long as all jobs respect context cancellation, StopAndCancel will
	// always work. However, in the case of a bug where a job blocks despite
	// being cancelled, it may be necessary to either ignore River's stop
	// result (what's shown here) or have a supervisor kill the process.
	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}
