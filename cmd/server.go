package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/RogueScr1be/fast-food-sub005/api"
	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/usecases"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

func RunServer() error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:            utils.GetEnv("ENV", "development"),
		AppName:        "decision-os-backend",
		AppVersion:     utils.GetEnv("APP_VERSION", "dev"),
		Port:           utils.GetRequiredEnv[string]("PORT"),
		MobileAppUrl:   utils.GetEnv("MOBILE_APP_URL", ""),
		DefaultTimeout: time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 10)) * time.Second,
	}
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
	serverConfig := struct {
		jwtSigningSecret  string
		loggingFormat     string
		sentryDsn         string
		ocrApiUrl         string
		ocrApiKey         string
		sessionTtlMinutes int
	}{
		jwtSigningSecret:  utils.GetRequiredEnv[string]("SUPABASE_JWT_SECRET"),
		loggingFormat:     utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:         utils.GetEnv("SENTRY_DSN", ""),
		ocrApiUrl:         utils.GetEnv("OCR_API_URL", ""),
		ocrApiKey:         utils.GetEnv("OCR_API_KEY", ""),
		sessionTtlMinutes: utils.GetEnv("SESSION_TTL_MINUTES", 30),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	featureFlags := infra.ResolveFeatureFlags(apiConfig.Env, os.LookupEnv)
	logger.InfoContext(ctx, "resolved feature flags",
		"decision_os", featureFlags.DecisionOs,
		"autopilot", featureFlags.IsAutopilotEnabled(),
		"ocr", featureFlags.IsOcrEnabled(),
		"drm", featureFlags.IsDrmEnabled(),
	)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// Insert-only river client: jobs enqueued here are worked by the worker
	// process.
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repos := repositories.NewRepositories(pool,
		repositories.WithRiverClient(riverClient),
		repositories.WithOcrApi(serverConfig.ocrApiUrl, serverConfig.ocrApiKey),
	)

	uc := usecases.NewUsecases(repos,
		usecases.WithFeatureFlags(featureFlags),
	)

	logDeployment(ctx, repos, apiConfig.AppVersion, apiConfig.Env)

	auth := api.NewAuthentication([]byte(serverConfig.jwtSigningSecret))
	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc, auth)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}

	return nil
}

// logDeployment appends a deploy row to the runtime deployments log. Best
// effort: a missing table or unreachable database must not block startup.
func logDeployment(ctx context.Context, repos repositories.Repositories, appVersion, env string) {
	err := repos.DecisionOsDbRepository.LogDeployment(ctx, repos.ExecutorGetter.NewExecutor(),
		models.DeploymentLogEntry{
			Id:         uuid.NewString(),
			AppVersion: appVersion,
			Env:        env,
			Action:     models.DeploymentActionDeploy,
			DeployedAt: time.Now(),
		})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not record deployment", "error", err.Error())
	}
}
