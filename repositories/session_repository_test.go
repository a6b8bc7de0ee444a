package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

const pruneSessionsSql = `UPDATE sessions SET outcome = $1, ended_at = NOW() ` +
	`WHERE id IN (SELECT id FROM sessions WHERE (outcome = 'pending' OR outcome IS NULL) ` +
	`AND started_at < $2 ORDER BY started_at ASC LIMIT $3) AND (outcome = 'pending' OR outcome IS NULL)`

func TestPruneStaleSessions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cutoff := time.Now().Add(-30 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta(pruneSessionsSql)).
		WithArgs("abandoned", cutoff, 100).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	repo := NewDecisionOsDbRepository()
	pruned, err := repo.PruneStaleSessions(context.Background(), mock, cutoff, 100)
	require.NoError(t, err)

	assert.Equal(t, int64(3), pruned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneStaleSessions_SecondRunIsNoOp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cutoff := time.Now().Add(-30 * time.Minute)

	// The pending predicate excludes rows abandoned by the first run, so
	// the second run matches nothing.
	mock.ExpectExec(regexp.QuoteMeta(pruneSessionsSql)).
		WithArgs("abandoned", cutoff, 100).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(regexp.QuoteMeta(pruneSessionsSql)).
		WithArgs("abandoned", cutoff, 100).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewDecisionOsDbRepository()

	first, err := repo.PruneStaleSessions(context.Background(), mock, cutoff, 100)
	require.NoError(t, err)
	second, err := repo.PruneStaleSessions(context.Background(), mock, cutoff, 100)
	require.NoError(t, err)

	assert.Equal(t, int64(3), first)
	assert.Equal(t, int64(0), second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSessionOutcome_GuardsTerminalStates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	updateSql := `UPDATE sessions SET outcome = $1, ended_at = NOW() ` +
		`WHERE id = $2 AND (outcome = 'pending' OR outcome IS NULL)`

	mock.ExpectExec(regexp.QuoteMeta(updateSql)).
		WithArgs("rescued", "session-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewDecisionOsDbRepository()
	updated, err := repo.UpdateSessionOutcome(context.Background(), mock, "session-1", models.SessionRescued)
	require.NoError(t, err)

	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
