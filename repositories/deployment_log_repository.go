package repositories

import (
	"context"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories/dbmodels"
)

func (repo *DecisionOsDbRepository) LogDeployment(ctx context.Context, exec Executor,
	entry models.DeploymentLogEntry,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_RUNTIME_DEPLOYMENTS_LOG).
			Columns("id", "app_version", "env", "action", "deployed_at").
			Values(entry.Id, entry.AppVersion, entry.Env, entry.Action, entry.DeployedAt),
	)
	return err
}

func (repo *DecisionOsDbRepository) GetLatestDeployment(ctx context.Context, exec Executor) (models.DeploymentLogEntry, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDeploymentLogColumn...).
			From(dbmodels.TABLE_RUNTIME_DEPLOYMENTS_LOG).
			OrderBy("deployed_at DESC").
			Limit(1),
		dbmodels.AdaptDeploymentLogEntry,
	)
}
