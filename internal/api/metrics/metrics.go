// Package metrics defines and registers all custom Prometheus metrics for the
// store rating API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storerating"

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingsSubmittedTotal counts accepted rating submissions.
// Label:
//   - action: "created" or "updated"
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of accepted rating submissions, by action.",
	},
	[]string{"action"},
)

// RatingsRejectedTotal counts submissions that did not change any rating.
// Label:
//   - reason: "invalid_value", "store_not_found", "unavailable" or "error"
var RatingsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_rejected_total",
		Help:      "Total number of rejected rating submissions.",
	},
	[]string{"reason"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests turned away by the gate or the role policy.
// Label:
//   - reason: "missing_token", "expired_token", "invalid_token" or "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Store cache metrics ───────────────────────────────────────────────────────

// StoreCacheTotal counts lookups of the cached public store listing.
// Label:
//   - result: "hit", "miss" or "error"
var StoreCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_cache_total",
		Help:      "Total number of public store listing cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Rating event metrics ──────────────────────────────────────────────────────

// EventsProcessedTotal counts rating events written to the activity log.
// Label:
//   - action: "created" or "updated"
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_events_processed_total",
		Help:      "Total number of rating events recorded.",
	},
	[]string{"action"},
)

// EventsErrorsTotal counts rating events that never reached the log.
// Label:
//   - reason: "dropped" (queue full or stopped) or "record_failed"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_events_errors_total",
		Help:      "Total number of rating events that were dropped or failed to record.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rating_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long recording a single event takes.
// Label:
//   - action: the event action, or "error" on failure
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rating_event_processing_duration_seconds",
		Help:      "Duration of rating event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)
