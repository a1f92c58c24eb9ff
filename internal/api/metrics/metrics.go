// Package metrics defines and registers all custom Prometheus metrics for the
// parceldesk shipment API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; expose them by mounting promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parceldesk"

// BookingsCreatedTotal counts successfully created bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of shipments booked.",
	},
)

// BookingsRolledBackTotal counts bookings that failed and were compensated.
var BookingsRolledBackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_rolled_back_total",
		Help:      "Total number of failed bookings cleaned up by compensation.",
	},
)

// ScansProcessedTotal counts partner scans that applied a status transition.
// Label:
//   - status: the new shipment status applied by the scan (e.g. "PICKED_UP")
var ScansProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_processed_total",
		Help:      "Total number of partner scans successfully applied.",
	},
	[]string{"status"},
)

// ScansRejectedTotal counts scans that failed before or during the write.
// Label:
//   - reason: "access_denied", "invalid_transition", "not_found" or "error"
var ScansRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_rejected_total",
		Help:      "Total number of partner scans rejected, by reason.",
	},
	[]string{"reason"},
)

// ForceOverridesTotal counts administrator status overrides.
// Label:
//   - status: the forced status value
var ForceOverridesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "force_overrides_total",
		Help:      "Total number of admin force-status overrides applied.",
	},
	[]string{"status"},
)

// PickupsScheduledTotal counts pickup scheduling events.
var PickupsScheduledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pickups_scheduled_total",
		Help:      "Total number of pickups scheduled.",
	},
)

// NotifyQueueDepth tracks the number of notifications waiting in each
// notifier worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications pending in each notifier worker channel.",
	},
	[]string{"worker_id"},
)

// NotifyDroppedTotal counts notifications discarded because a worker channel
// was full. Delivery is best-effort; the lifecycle write has already
// committed when enqueueing happens.
var NotifyDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_dropped_total",
		Help:      "Total number of status notifications dropped due to a full worker channel.",
	},
)

// NotifyDeliveryDuration measures how long a single notification takes to
// deliver to the sink.
var NotifyDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notify_delivery_duration_seconds",
		Help:      "Duration of notification delivery from dequeue to sink ack.",
		Buckets:   prometheus.DefBuckets,
	},
)

// TrackingLookupsTotal counts public tracking reads.
// Label:
//   - result: "found" or "not_found"
var TrackingLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_lookups_total",
		Help:      "Total number of public tracking lookups, by result.",
	},
	[]string{"result"},
)
