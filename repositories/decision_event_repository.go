package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories/dbmodels"
)

func (repo *DecisionOsDbRepository) CreateDecisionEvent(ctx context.Context, exec Executor,
	event models.DecisionEvent,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_DECISION_EVENTS).
			Columns("id", "session_id", "household_key", "source", "decision_payload", "decided_at").
			Values(
				event.Id,
				event.SessionId,
				event.HouseholdKey,
				string(event.Source),
				event.DecisionPayload,
				event.DecidedAt,
			),
	)
	return err
}

func (repo *DecisionOsDbRepository) GetDecisionEventById(ctx context.Context, exec Executor,
	eventId string,
) (models.DecisionEvent, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDecisionEventColumn...).
			From(dbmodels.TABLE_DECISION_EVENTS).
			Where(squirrel.Eq{"id": eventId}),
		dbmodels.AdaptDecisionEvent,
	)
}

// ApplyUserAction records how the user acted on a decision. The audit log is
// append-only: the action is applied at most once, guarded by the
// actioned_at IS NULL predicate, and rows are never deleted.
func (repo *DecisionOsDbRepository) ApplyUserAction(ctx context.Context, exec Executor,
	eventId string, action models.UserAction,
) (bool, error) {
	affected, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_DECISION_EVENTS).
			Set("user_action", string(action)).
			Set("actioned_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": eventId}).
			Where(squirrel.Expr("actioned_at IS NULL")),
	)
	return affected > 0, err
}
