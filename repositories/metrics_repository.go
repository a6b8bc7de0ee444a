package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories/dbmodels"
)

// IncrementDailyMetric adds delta to today's counter for the given metric
// key, creating the row on first increment.
func (repo *DecisionOsDbRepository) IncrementDailyMetric(ctx context.Context, exec Executor,
	metricKey string, delta int64,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_RUNTIME_METRICS_DAILY).
			Columns("day", "metric_key", "count").
			Values(squirrel.Expr("CURRENT_DATE"), metricKey, delta).
			Suffix(`ON CONFLICT (day, metric_key) DO UPDATE SET count = runtime_metrics_daily.count + EXCLUDED.count`),
	)
	return err
}

func (repo *DecisionOsDbRepository) GetDailyMetric(ctx context.Context, exec Executor,
	day time.Time, metricKey string,
) (models.DailyMetric, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDailyMetricColumn...).
			From(dbmodels.TABLE_RUNTIME_METRICS_DAILY).
			Where(squirrel.Eq{"day": day.Format("2006-01-02")}).
			Where(squirrel.Eq{"metric_key": metricKey}),
		dbmodels.AdaptDailyMetric,
	)
}
