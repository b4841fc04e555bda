// Package metrics defines and registers all custom Prometheus metrics for the
// staffhub API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staffhub"

// ── Identity metrics ──────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful self-service registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

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

// ── Workflow metrics ──────────────────────────────────────────────────────────

// LeavesSubmittedTotal counts leave applications created.
var LeavesSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaves_submitted_total",
		Help:      "Total number of leave applications submitted.",
	},
)

// LeavesApprovedTotal counts leave applications approved.
var LeavesApprovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaves_approved_total",
		Help:      "Total number of leave applications approved.",
	},
)

// ManagersPromotedTotal counts manager activations.
var ManagersPromotedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "managers_promoted_total",
		Help:      "Total number of manager profiles activated.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsCreatedTotal counts durable notification records written.
// Label:
//   - type: the notification type (e.g. "LeaveApplicationSubmitted")
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notification records persisted, by type.",
	},
	[]string{"type"},
)

// PushDeliveriesTotal counts best-effort push attempts.
// Label:
//   - result: "delivered" or "failed"
var PushDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_deliveries_total",
		Help:      "Total number of real-time push delivery attempts, by result.",
	},
	[]string{"result"},
)

// PushDeliveryDuration measures a single push attempt from dequeue to publish.
var PushDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "push_delivery_duration_seconds",
		Help:      "Duration of a push delivery from dequeue to publish.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Background scan metrics ───────────────────────────────────────────────────

// LeaveScanRunsTotal counts approaching-leave scan executions.
// Label:
//   - result: "ok", "skipped" (lock held elsewhere) or "error"
var LeaveScanRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_scan_runs_total",
		Help:      "Total number of approaching-leave scan runs, by result.",
	},
	[]string{"result"},
)
