// Package metrics defines the domain Prometheus metrics of the task manager
// API. HTTP request metrics come from echoprometheus; everything here counts
// business events.
//
// Metrics are registered on the default registry at package load, so the
// /metrics handler exposes them without further setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskmanager"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Labels:
//   - priority: "Low", "Medium" or "High"
//   - replayed: "true" when an Idempotency-Key returned an existing task
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of task create requests that succeeded, by priority.",
	},
	[]string{"priority", "replayed"},
)

// TasksUpdatedTotal counts successful task updates.
var TasksUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_updated_total",
		Help:      "Total number of tasks updated.",
	},
)

// TasksDeletedTotal counts successful task deletions.
var TasksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of tasks deleted.",
	},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// MessagesSentTotal counts stored chat messages.
// Label:
//   - chat_type: "team" or "user"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages sent, by chat type.",
	},
	[]string{"chat_type"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts credential checks.
// Labels:
//   - kind: "login", "signup" or "admin"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ObserveAuth records one authentication attempt.
func ObserveAuth(kind string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AuthAttemptsTotal.WithLabelValues(kind, result).Inc()
}
