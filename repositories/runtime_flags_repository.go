package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories/dbmodels"
)

const (
	// RuntimeFlagCacheTtl bounds the staleness of runtime flag reads: a
	// flag flip takes at most this long to propagate, while the table is
	// not hit on every request.
	RuntimeFlagCacheTtl = 30 * time.Second

	runtimeFlagCacheSize = 32
)

type RuntimeFlagsRepository struct {
	cache *expirable.LRU[string, models.RuntimeFlag]
}

func NewRuntimeFlagsRepository(cacheTtl time.Duration) *RuntimeFlagsRepository {
	if cacheTtl <= 0 {
		cacheTtl = RuntimeFlagCacheTtl
	}
	return &RuntimeFlagsRepository{
		cache: expirable.NewLRU[string, models.RuntimeFlag](runtimeFlagCacheSize, nil, cacheTtl),
	}
}

// GetRuntimeFlag returns the runtime flag for the key, serving from the
// cache within the staleness window. A missing row returns NotFoundError
// and is not cached, so creating the flag is visible immediately.
func (repo *RuntimeFlagsRepository) GetRuntimeFlag(ctx context.Context, exec Executor,
	key string,
) (models.RuntimeFlag, error) {
	if flag, ok := repo.cache.Get(key); ok {
		return flag, nil
	}

	flag, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRuntimeFlagColumn...).
			From(dbmodels.TABLE_RUNTIME_FLAGS).
			Where(squirrel.Eq{"key": key}),
		dbmodels.AdaptRuntimeFlag,
	)
	if err != nil {
		return models.RuntimeFlag{}, err
	}

	repo.cache.Add(key, flag)
	return flag, nil
}

func (repo *RuntimeFlagsRepository) UpsertRuntimeFlag(ctx context.Context, exec Executor,
	key string, enabled bool,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_RUNTIME_FLAGS).
			Columns("key", "enabled", "updated_at").
			Values(key, enabled, squirrel.Expr("NOW()")).
			Suffix(`ON CONFLICT (key) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = NOW()`),
	)
	if err != nil {
		return err
	}

	// Writers see their own flips right away, other replicas converge
	// within the cache TTL.
	repo.cache.Remove(key)
	return nil
}
