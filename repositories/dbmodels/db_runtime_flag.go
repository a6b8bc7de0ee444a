package dbmodels

import (
	"time"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type DbRuntimeFlag struct {
	Key       string    `db:"key"`
	Enabled   bool      `db:"enabled"`
	UpdatedAt time.Time `db:"updated_at"`
}

const TABLE_RUNTIME_FLAGS = "runtime_flags"

var SelectRuntimeFlagColumn = utils.ColumnList[DbRuntimeFlag]()

func AdaptRuntimeFlag(db DbRuntimeFlag) (models.RuntimeFlag, error) {
	return models.RuntimeFlag{
		Key:       db.Key,
		Enabled:   db.Enabled,
		UpdatedAt: db.UpdatedAt,
	}, nil
}
