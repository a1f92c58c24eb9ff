package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/parceldesk/shipment-api/internal/api/metrics"
	"github.com/parceldesk/shipment-api/internal/core/domain"
)

type collectingSink struct {
	mu        sync.Mutex
	delivered []StatusNotification
	wg        *sync.WaitGroup
}

func (s *collectingSink) Deliver(_ context.Context, n StatusNotification) error {
	s.mu.Lock()
	s.delivered = append(s.delivered, n)
	s.mu.Unlock()
	s.wg.Done()
	return nil
}

func TestNotifier_PreservesPerShipmentOrder(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(3)
	sink := &collectingSink{wg: &wg}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier(4, sink, zerolog.Nop())
	n.Start(ctx)

	n.NotifyStatusChange("PD-AAAA0001", domain.StatusPickedUp, "")
	n.NotifyStatusChange("PD-AAAA0001", domain.StatusInTransit, "")
	n.NotifyStatusChange("PD-AAAA0001", domain.StatusOutForDelivery, "")

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifications not delivered in time")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	want := []domain.ShipmentStatus{domain.StatusPickedUp, domain.StatusInTransit, domain.StatusOutForDelivery}
	for i, n := range sink.delivered {
		if n.Status != want[i] {
			t.Errorf("delivery %d: want %s, got %s", i, want[i], n.Status)
		}
	}
}

func TestNotifier_FullChannelDropsInsteadOfBlocking(t *testing.T) {
	// Workers deliberately not started: every send lands in the buffer, and
	// once the buffer is full the overflow must be dropped, not block the
	// calling (request) goroutine.
	n := NewNotifier(1, LogSink{Log: zerolog.Nop()}, zerolog.Nop())

	before := testutil.ToFloat64(metrics.NotifyDroppedTotal)
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+5; i++ {
			n.NotifyStatusChange("PD-AAAA0002", domain.StatusInTransit, "")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyStatusChange blocked on a full channel")
	}

	if got := len(n.workers[0]); got != channelBuffer {
		t.Errorf("expected a full buffer of %d, got %d", channelBuffer, got)
	}
	if dropped := testutil.ToFloat64(metrics.NotifyDroppedTotal) - before; dropped != 5 {
		t.Errorf("expected 5 dropped notifications, got %v", dropped)
	}
}

func TestNotifier_DefaultWorkerCount(t *testing.T) {
	n := NewNotifier(0, LogSink{Log: zerolog.Nop()}, zerolog.Nop())
	if len(n.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(n.workers))
	}
}
