package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	var zero Model

	sql, args, err := query.ToSql()
	if err != nil {
		return zero, errors.Wrap(err, "build query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	dbModel, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[DBModel])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, errors.WithDetail(models.NotFoundError, err.Error())
	} else if err != nil {
		return zero, err
	}

	return adapter(dbModel)
}

// ExecBuilder runs a statement built with squirrel and returns the number of
// rows affected.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (int64, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build query")
	}

	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
