package dbmodels

import (
	"time"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type DbDailyMetric struct {
	Day       time.Time `db:"day"`
	MetricKey string    `db:"metric_key"`
	Count     int64     `db:"count"`
}

const TABLE_RUNTIME_METRICS_DAILY = "runtime_metrics_daily"

var SelectDailyMetricColumn = utils.ColumnList[DbDailyMetric]()

func AdaptDailyMetric(db DbDailyMetric) (models.DailyMetric, error) {
	return models.DailyMetric{
		Day:       db.Day,
		MetricKey: db.MetricKey,
		Count:     db.Count,
	}, nil
}
