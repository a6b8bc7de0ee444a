package dbmodels

import (
	"time"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type DbSession struct {
	Id           string     `db:"id"`
	HouseholdKey string     `db:"household_key"`
	StartedAt    time.Time  `db:"started_at"`
	EndedAt      *time.Time `db:"ended_at"`
	Outcome      *string    `db:"outcome"`
}

const TABLE_SESSIONS = "sessions"

var SelectSessionColumn = utils.ColumnList[DbSession]()

func AdaptSession(db DbSession) (models.Session, error) {
	// Legacy rows may carry a NULL outcome, treated as pending.
	outcome := models.SessionPending
	if db.Outcome != nil {
		outcome = models.SessionOutcome(*db.Outcome)
	}

	return models.Session{
		Id:           db.Id,
		HouseholdKey: db.HouseholdKey,
		StartedAt:    db.StartedAt,
		EndedAt:      db.EndedAt,
		Outcome:      outcome,
	}, nil
}
