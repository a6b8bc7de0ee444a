package cmd

import (
	"context"
	"fmt"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

func RunMigrations() error {
	pgConfig := infra.PgConfig{
		ConnectionString: utils.GetEnv("DATABASE_URL", utils.GetEnv("DATABASE_URL_STAGING", "")),
		Database:         "decision_os",
		Hostname:         utils.GetEnv("PG_HOSTNAME", ""),
		Password:         utils.GetEnv("PG_PASSWORD", ""),
		Port:             utils.GetEnv("PG_PORT", "5432"),
		User:             utils.GetEnv("PG_USER", ""),
		SslMode:          utils.GetEnv("PG_SSL_MODE", "prefer"),
	}

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := repositories.RunMigrations(ctx, pgConfig.GetConnectionString(), logger); err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("error running migrations: %v", err))
		return err
	}

	return nil
}
