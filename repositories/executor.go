package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor abstracts over a pgx pool or transaction so that repository
// methods do not care which one they run on.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ExecutorGetter struct {
	pool *pgxpool.Pool
}

func NewExecutorGetter(pool *pgxpool.Pool) ExecutorGetter {
	return ExecutorGetter{pool: pool}
}

func (g ExecutorGetter) NewExecutor() Executor {
	return g.pool
}

// Transaction runs fn inside a database transaction, committing on success
// and rolling back on error.
func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx Executor) error) error {
	return pgx.BeginFunc(ctx, g.pool, func(tx pgx.Tx) error {
		return fn(tx)
	})
}
