package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories/dbmodels"
)

// EnsureSession creates the session row if it does not exist yet. Session ids
// are minted by the mobile client, so the first request of a session wins and
// later requests are no-ops.
func (repo *DecisionOsDbRepository) EnsureSession(ctx context.Context, exec Executor, session models.Session) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_SESSIONS).
			Columns("id", "household_key", "started_at", "outcome").
			Values(session.Id, session.HouseholdKey, session.StartedAt, string(session.Outcome)).
			Suffix("ON CONFLICT (id) DO NOTHING"),
	)
	return err
}

func (repo *DecisionOsDbRepository) GetSessionById(ctx context.Context, exec Executor, sessionId string) (models.Session, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectSessionColumn...).
			From(dbmodels.TABLE_SESSIONS).
			Where(squirrel.Eq{"id": sessionId}),
		dbmodels.AdaptSession,
	)
}

// UpdateSessionOutcome moves a pending session to a terminal outcome. The
// outcome predicate makes the transition idempotent: a session that already
// reached a terminal state is left untouched.
func (repo *DecisionOsDbRepository) UpdateSessionOutcome(ctx context.Context, exec Executor,
	sessionId string, outcome models.SessionOutcome,
) (bool, error) {
	affected, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_SESSIONS).
			Set("outcome", string(outcome)).
			Set("ended_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": sessionId}).
			Where(squirrel.Expr("(outcome = 'pending' OR outcome IS NULL)")),
	)
	return affected > 0, err
}

// PruneStaleSessions transitions at most limit pending sessions older than
// the cutoff to abandoned, returning the number of rows actually updated.
// Rerunning on the same dataset is a no-op thanks to the pending predicate.
func (repo *DecisionOsDbRepository) PruneStaleSessions(ctx context.Context, exec Executor,
	olderThan time.Time, limit int,
) (int64, error) {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_SESSIONS).
			Set("outcome", string(models.SessionAbandoned)).
			Set("ended_at", squirrel.Expr("NOW()")).
			Where(squirrel.Expr(
				`id IN (SELECT id FROM sessions WHERE (outcome = 'pending' OR outcome IS NULL) AND started_at < ? ORDER BY started_at ASC LIMIT ?)`,
				olderThan, limit)).
			Where(squirrel.Expr("(outcome = 'pending' OR outcome IS NULL)")),
	)
}
