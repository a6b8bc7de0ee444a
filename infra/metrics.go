package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-local counters, exposed on /metrics. Durable dogfood counters live
// in the runtime_metrics_daily table, these exist for scrape-based alerting.
var (
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "decision_os_decisions_total",
		Help: "Decisions returned by the decision endpoint, by source.",
	}, []string{"source"})

	DrmRescuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "decision_os_drm_rescues_total",
		Help: "Forced fallback decisions, by trigger reason.",
	}, []string{"reason"})

	SessionsPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "decision_os_sessions_pruned_total",
		Help: "Pending sessions transitioned to abandoned by the prune job.",
	})

	ReceiptOcrFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "decision_os_receipt_ocr_failures_total",
		Help: "Receipt OCR jobs that exhausted their retries.",
	})
)
