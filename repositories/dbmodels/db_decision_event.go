package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type DbDecisionEvent struct {
	Id              string          `db:"id"`
	SessionId       string          `db:"session_id"`
	HouseholdKey    string          `db:"household_key"`
	Source          string          `db:"source"`
	DecisionPayload json.RawMessage `db:"decision_payload"`
	UserAction      *string         `db:"user_action"`
	DecidedAt       time.Time       `db:"decided_at"`
	ActionedAt      *time.Time      `db:"actioned_at"`
}

const TABLE_DECISION_EVENTS = "decision_events"

var SelectDecisionEventColumn = utils.ColumnList[DbDecisionEvent]()

func AdaptDecisionEvent(db DbDecisionEvent) (models.DecisionEvent, error) {
	var userAction *models.UserAction
	if db.UserAction != nil {
		action := models.UserAction(*db.UserAction)
		userAction = &action
	}

	return models.DecisionEvent{
		Id:              db.Id,
		SessionId:       db.SessionId,
		HouseholdKey:    db.HouseholdKey,
		Source:          models.DecisionSource(db.Source),
		DecisionPayload: db.DecisionPayload,
		UserAction:      userAction,
		DecidedAt:       db.DecidedAt,
		ActionedAt:      db.ActionedAt,
	}, nil
}
