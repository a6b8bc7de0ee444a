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

const selectRuntimeFlagSql = `SELECT key, enabled, updated_at FROM runtime_flags WHERE key = $1`

func TestGetRuntimeFlag_ServesFromCacheWithinTtl(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// A single database round trip is expected for two reads.
	mock.ExpectQuery(regexp.QuoteMeta(selectRuntimeFlagSql)).
		WithArgs(models.RuntimeFlagDrm).
		WillReturnRows(pgxmock.NewRows([]string{"key", "enabled", "updated_at"}).
			AddRow(models.RuntimeFlagDrm, true, time.Now()))

	repo := NewRuntimeFlagsRepository(time.Minute)

	first, err := repo.GetRuntimeFlag(context.Background(), mock, models.RuntimeFlagDrm)
	require.NoError(t, err)
	second, err := repo.GetRuntimeFlag(context.Background(), mock, models.RuntimeFlagDrm)
	require.NoError(t, err)

	assert.True(t, first.Enabled)
	assert.Equal(t, first.Key, second.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRuntimeFlag_CacheExpires(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	for range 2 {
		mock.ExpectQuery(regexp.QuoteMeta(selectRuntimeFlagSql)).
			WithArgs(models.RuntimeFlagDrm).
			WillReturnRows(pgxmock.NewRows([]string{"key", "enabled", "updated_at"}).
				AddRow(models.RuntimeFlagDrm, false, time.Now()))
	}

	repo := NewRuntimeFlagsRepository(10 * time.Millisecond)

	_, err = repo.GetRuntimeFlag(context.Background(), mock, models.RuntimeFlagDrm)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	flag, err := repo.GetRuntimeFlag(context.Background(), mock, models.RuntimeFlagDrm)
	require.NoError(t, err)

	assert.False(t, flag.Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRuntimeFlag_MissingRowIsNotFoundAndNotCached(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectRuntimeFlagSql)).
		WithArgs("unknown_flag").
		WillReturnRows(pgxmock.NewRows([]string{"key", "enabled", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(selectRuntimeFlagSql)).
		WithArgs("unknown_flag").
		WillReturnRows(pgxmock.NewRows([]string{"key", "enabled", "updated_at"}))

	repo := NewRuntimeFlagsRepository(time.Minute)

	_, err = repo.GetRuntimeFlag(context.Background(), mock, "unknown_flag")
	assert.ErrorIs(t, err, models.NotFoundError)

	// The miss is queried again rather than served from the cache.
	_, err = repo.GetRuntimeFlag(context.Background(), mock, "unknown_flag")
	assert.ErrorIs(t, err, models.NotFoundError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRuntimeFlag_InvalidatesCache(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	upsertSql := `INSERT INTO runtime_flags (key,enabled,updated_at) VALUES ($1,$2,NOW()) ` +
		`ON CONFLICT (key) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = NOW()`

	mock.ExpectQuery(regexp.QuoteMeta(selectRuntimeFlagSql)).
		WithArgs(models.RuntimeFlagDrm).
		WillReturnRows(pgxmock.NewRows([]string{"key", "enabled", "updated_at"}).
			AddRow(models.RuntimeFlagDrm, true, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(upsertSql)).
		WithArgs(models.RuntimeFlagDrm, false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectRuntimeFlagSql)).
		WithArgs(models.RuntimeFlagDrm).
		WillReturnRows(pgxmock.NewRows([]string{"key", "enabled", "updated_at"}).
			AddRow(models.RuntimeFlagDrm, false, time.Now()))

	repo := NewRuntimeFlagsRepository(time.Minute)
	ctx := context.Background()

	flag, err := repo.GetRuntimeFlag(ctx, mock, models.RuntimeFlagDrm)
	require.NoError(t, err)
	assert.True(t, flag.Enabled)

	require.NoError(t, repo.UpsertRuntimeFlag(ctx, mock, models.RuntimeFlagDrm, false))

	flag, err = repo.GetRuntimeFlag(ctx, mock, models.RuntimeFlagDrm)
	require.NoError(t, err)
	assert.False(t, flag.Enabled)

	assert.NoError(t, mock.ExpectationsWereMet())
}
