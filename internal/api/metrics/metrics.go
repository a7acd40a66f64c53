// Package metrics defines all custom Prometheus metrics for the monitoring
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monitor"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication workflow outcomes.
// Labels:
//   - operation: "signup", "login", "verify", "whoami"
//   - outcome: "success", "rejected", "unauthorized", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ValidationRejectionsTotal counts inputs rejected by the validation firewall.
// Label:
//   - kind: the firewall error kind (e.g. "potential_sql_injection", "too_short")
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of request inputs rejected by the validation firewall.",
	},
	[]string{"kind"},
)

// ── Telemetry metrics ─────────────────────────────────────────────────────────

// ReadingsProcessedTotal counts sensor readings that completed processing.
var ReadingsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "readings_processed_total",
		Help:      "Total number of sensor readings successfully processed.",
	},
)

// ReadingsErrorsTotal counts readings that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "out_of_range", "insert_failed")
var ReadingsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "readings_errors_total",
		Help:      "Total number of sensor readings that failed processing.",
	},
	[]string{"reason"},
)

// ReadingsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new reading, processed)
var ReadingsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "readings_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ReadingsQueueDepth tracks the number of readings waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReadingsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readings_queue_depth",
		Help:      "Current number of readings pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ReadingProcessingDuration measures how long one reading takes to process.
var ReadingProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reading_processing_duration_seconds",
		Help:      "Duration of reading processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── ML metrics ────────────────────────────────────────────────────────────────

// ClassificationsTotal counts activity classifications returned by the ML service.
// Label:
//   - class: the predicted activity class (e.g. "SLEEPING", "FALL_DETECTED")
var ClassificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ml_classifications_total",
		Help:      "Total number of activity classifications, by predicted class.",
	},
	[]string{"class"},
)
