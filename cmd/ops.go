package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

// Post-deployment checks, run from CI after a deploy. Each check prints PASS
// or FAIL lines to stdout and returns an error on FAIL so that main exits
// non-zero. None of them ever print a secret.

var expectedTables = []string{
	"sessions",
	"decision_events",
	"runtime_flags",
	"runtime_metrics_daily",
	"runtime_deployments_log",
}

func opsPgConfig() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString: utils.GetEnv("DATABASE_URL", utils.GetEnv("DATABASE_URL_STAGING", "")),
		Database:         "decision_os",
		Hostname:         utils.GetEnv("PG_HOSTNAME", ""),
		Password:         utils.GetEnv("PG_PASSWORD", ""),
		Port:             utils.GetEnv("PG_PORT", "5432"),
		User:             utils.GetEnv("PG_USER", ""),
		SslMode:          utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func opsPool(ctx context.Context) (*pgxpool.Pool, error) {
	return infra.NewPostgresConnectionPool(ctx, opsPgConfig().GetConnectionString(), 2)
}

// RunAuthCheck verifies the live API's authentication contract: an
// unauthenticated override call must yield the canonical 401 body, and the
// liveness probe must answer 200 without credentials.
func RunAuthCheck() error {
	apiUrl := strings.TrimSuffix(utils.GetRequiredEnv[string]("API_URL"), "/")
	client := &http.Client{Timeout: 10 * time.Second}

	res, err := client.Post(apiUrl+"/drm", "application/json",
		strings.NewReader(`{"sessionId":"ops-auth-check","reason":"explicit_done"}`))
	if err != nil {
		fmt.Println("FAIL auth-check: drm endpoint unreachable")
		return err
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()

	var parsed struct {
		Error string `json:"error"`
	}
	if res.StatusCode != http.StatusUnauthorized ||
		json.Unmarshal(body, &parsed) != nil || parsed.Error != "unauthorized" {
		fmt.Printf("FAIL auth-check: unauthenticated /drm returned %d %s\n", res.StatusCode, strings.TrimSpace(string(body)))
		return errors.New("auth check failed")
	}
	fmt.Println("PASS auth-check: unauthenticated /drm is rejected with the canonical body")

	res, err = client.Get(apiUrl + "/liveness")
	if err != nil {
		fmt.Println("FAIL auth-check: liveness endpoint unreachable")
		return err
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		fmt.Printf("FAIL auth-check: liveness returned %d\n", res.StatusCode)
		return errors.New("liveness check failed")
	}
	fmt.Println("PASS auth-check: liveness answers 200")

	return nil
}

// RunVerifySchema checks that every table the application relies on exists.
func RunVerifySchema() error {
	ctx := context.Background()
	pool, err := opsPool(ctx)
	if err != nil {
		fmt.Println("FAIL verify-schema: could not connect to the database")
		return err
	}
	defer pool.Close()

	failed := false
	for _, table := range expectedTables {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table).Scan(&exists)
		if err != nil {
			fmt.Printf("FAIL verify-schema: could not check table %s\n", table)
			return err
		}
		if exists {
			fmt.Printf("PASS verify-schema: table %s exists\n", table)
		} else {
			fmt.Printf("FAIL verify-schema: table %s is missing\n", table)
			failed = true
		}
	}
	if failed {
		return errors.New("schema verification failed")
	}
	return nil
}

// RunMetricsAlert compares today's abandoned session count against a
// threshold, for a cron-driven alert.
func RunMetricsAlert() error {
	threshold := utils.GetEnv("ABANDONED_SESSIONS_ALERT_THRESHOLD", 100)

	ctx := context.Background()
	pool, err := opsPool(ctx)
	if err != nil {
		fmt.Println("FAIL metrics-alert: could not connect to the database")
		return err
	}
	defer pool.Close()

	repo := repositories.NewDecisionOsDbRepository()
	metric, err := repo.GetDailyMetric(ctx, pool, time.Now(), models.MetricSessionAbandoned)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			fmt.Println("PASS metrics-alert: no abandoned sessions recorded today")
			return nil
		}
		fmt.Println("FAIL metrics-alert: could not read the daily metric")
		return err
	}

	if metric.Count > int64(threshold) {
		fmt.Printf("FAIL metrics-alert: %d sessions abandoned today (threshold %d)\n", metric.Count, threshold)
		return errors.New("abandoned sessions above threshold")
	}
	fmt.Printf("PASS metrics-alert: %d sessions abandoned today (threshold %d)\n", metric.Count, threshold)
	return nil
}

// RunSetRuntimeFlag flips an operator kill switch without a redeploy. The
// flip propagates to running replicas within the runtime flag cache TTL.
func RunSetRuntimeFlag(key string, enabled bool) error {
	switch key {
	case models.RuntimeFlagDrm, models.RuntimeFlagAutopilot, models.RuntimeFlagOcr:
	default:
		fmt.Printf("FAIL set-flag: unknown runtime flag %s\n", key)
		return errors.Newf("unknown runtime flag %s", key)
	}

	ctx := context.Background()
	pool, err := opsPool(ctx)
	if err != nil {
		fmt.Println("FAIL set-flag: could not connect to the database")
		return err
	}
	defer pool.Close()

	repo := repositories.NewRuntimeFlagsRepository(0)
	if err := repo.UpsertRuntimeFlag(ctx, pool, key, enabled); err != nil {
		fmt.Printf("FAIL set-flag: could not update %s\n", key)
		return err
	}
	fmt.Printf("PASS set-flag: %s is now %t\n", key, enabled)
	return nil
}

// RunLogDeployment appends a deployment or rollback row, for release
// bookkeeping from CI.
func RunLogDeployment(action string) error {
	appVersion := utils.GetRequiredEnv[string]("APP_VERSION")
	env := utils.GetEnv("ENV", "development")

	ctx := context.Background()
	pool, err := opsPool(ctx)
	if err != nil {
		fmt.Println("FAIL log-deployment: could not connect to the database")
		return err
	}
	defer pool.Close()

	repo := repositories.NewDecisionOsDbRepository()
	if previous, err := repo.GetLatestDeployment(ctx, pool); err == nil {
		fmt.Printf("INFO log-deployment: previous %s was %s in %s\n",
			previous.Action, previous.AppVersion, previous.Env)
	} else if !errors.Is(err, models.NotFoundError) {
		fmt.Println("FAIL log-deployment: could not read the deployment log")
		return err
	}

	err = repo.LogDeployment(ctx, pool, models.DeploymentLogEntry{
		Id:         uuid.NewString(),
		AppVersion: appVersion,
		Env:        env,
		Action:     action,
		DeployedAt: time.Now(),
	})
	if err != nil {
		fmt.Printf("FAIL log-deployment: could not record the %s\n", action)
		return err
	}
	fmt.Printf("PASS log-deployment: recorded %s of %s in %s\n", action, appVersion, env)
	return nil
}
