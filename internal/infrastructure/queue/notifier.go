package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/parceldesk/shipment-api/internal/api/metrics"
	"github.com/parceldesk/shipment-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// StatusNotification is a post-commit record of a status change, delivered to
// subscribers outside the request path.
type StatusNotification struct {
	TrackingCode string
	Status       domain.ShipmentStatus
	Location     string
	OccurredAt   time.Time
}

// Sink receives notifications in per-shipment order. Implementations must not
// block indefinitely; a failed delivery is the sink's problem to retry.
type Sink interface {
	Deliver(ctx context.Context, n StatusNotification) error
}

// LogSink writes notifications to the structured log. The default sink until a
// real webhook or push channel is configured.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Deliver(_ context.Context, n StatusNotification) error {
	s.Log.Info().
		Str("tracking_code", n.TrackingCode).
		Str("status", string(n.Status)).
		Str("location", n.Location).
		Time("occurred_at", n.OccurredAt).
		Msg("status notification")
	return nil
}

// Notifier fans status notifications out to a fixed set of workers using
// consistent hashing on the tracking code, guaranteeing per-shipment delivery
// ordering.
type Notifier struct {
	workers []chan StatusNotification
	sink    Sink
	log     zerolog.Logger
}

// NewNotifier creates a Notifier with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewNotifier(numWorkers int, sink Sink, log zerolog.Logger) *Notifier {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	n := &Notifier{
		workers: make([]chan StatusNotification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range n.workers {
		n.workers[i] = make(chan StatusNotification, channelBuffer)
	}
	return n
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i, ch := range n.workers {
		go n.runWorker(ctx, i, ch)
	}
}

// NotifyStatusChange enqueues a notification for the shipment's worker. The
// send never blocks: when the worker channel is full (backlogged or stopped
// workers) the notification is dropped and counted. The lifecycle write has
// already committed, so dropping costs a notification, not data.
func (n *Notifier) NotifyStatusChange(trackingCode string, status domain.ShipmentStatus, location string) {
	notification := StatusNotification{
		TrackingCode: trackingCode,
		Status:       status,
		Location:     location,
		OccurredAt:   time.Now().UTC(),
	}
	select {
	case n.workers[n.shardIndex(trackingCode)] <- notification:
	default:
		metrics.NotifyDroppedTotal.Inc()
		n.log.Warn().
			Str("tracking_code", trackingCode).
			Str("status", string(status)).
			Msg("notification dropped, worker channel full")
	}
}

// shardIndex maps a tracking code deterministically to a worker index.
func (n *Notifier) shardIndex(trackingCode string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingCode))
	return int(h.Sum32()) % len(n.workers)
}

func (n *Notifier) runWorker(ctx context.Context, id int, ch <-chan StatusNotification) {
	depth := metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case notification, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			start := time.Now()
			if err := n.sink.Deliver(ctx, notification); err != nil {
				n.log.Error().Err(err).
					Str("tracking_code", notification.TrackingCode).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
			metrics.NotifyDeliveryDuration.Observe(time.Since(start).Seconds())
		}
	}
}
