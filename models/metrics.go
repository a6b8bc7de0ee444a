package models

import "time"

// DailyMetric is one counter of the runtime_metrics_daily table, used for
// dogfood reporting and operational alerting.
type DailyMetric struct {
	Day       time.Time
	MetricKey string
	Count     int64
}

const (
	MetricSessionAbandoned = "session_abandoned"
	MetricDrmRescue        = "drm_rescue"
	MetricFeedbackRecorded = "feedback_recorded"
	MetricReceiptOcrFailed = "receipt_ocr_failed"
)

// DeploymentLogEntry is one row of runtime_deployments_log, appended on
// server start and by the rollback bookkeeping command.
type DeploymentLogEntry struct {
	Id         string
	AppVersion string
	Env        string
	Action     string
	DeployedAt time.Time
}

const (
	DeploymentActionDeploy   = "deploy"
	DeploymentActionRollback = "rollback"
)
