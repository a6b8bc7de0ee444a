package dbmodels

import (
	"time"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type DbDeploymentLogEntry struct {
	Id         string    `db:"id"`
	AppVersion string    `db:"app_version"`
	Env        string    `db:"env"`
	Action     string    `db:"action"`
	DeployedAt time.Time `db:"deployed_at"`
}

const TABLE_RUNTIME_DEPLOYMENTS_LOG = "runtime_deployments_log"

var SelectDeploymentLogColumn = utils.ColumnList[DbDeploymentLogEntry]()

func AdaptDeploymentLogEntry(db DbDeploymentLogEntry) (models.DeploymentLogEntry, error) {
	return models.DeploymentLogEntry{
		Id:         db.Id,
		AppVersion: db.AppVersion,
		Env:        db.Env,
		Action:     db.Action,
		DeployedAt: db.DeployedAt,
	}, nil
}
