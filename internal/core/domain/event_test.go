package domain

import (
	"testing"
	"time"
)

func evt(kind EventKind, partnerID string, age time.Duration) Event {
	return Event{
		Kind:      kind,
		Status:    StatusPending,
		PartnerID: partnerID,
		CreatedAt: time.Now().UTC().Add(-age),
	}
}

func TestLatestAssignment_LatestWins(t *testing.T) {
	// Newest-first, assignments interleaved with other kinds.
	log := []Event{
		evt(EventStatusChange, "", 0),
		evt(EventAssignment, "partner_b", time.Hour),
		evt(EventPickupScheduled, "", 2*time.Hour),
		evt(EventAssignment, "partner_a", 3*time.Hour),
		evt(EventStatusChange, "", 4*time.Hour),
	}

	if got := LatestAssignment(log); got != "partner_b" {
		t.Errorf("expected latest assignment partner_b, got %q", got)
	}
}

func TestLatestAssignment_NoAssignment(t *testing.T) {
	log := []Event{
		evt(EventStatusChange, "", 0),
		evt(EventPickupScheduled, "", time.Hour),
	}
	if got := LatestAssignment(log); got != "" {
		t.Errorf("expected no assignment, got %q", got)
	}
}

func TestLatestAssignment_EmptyLog(t *testing.T) {
	if got := LatestAssignment(nil); got != "" {
		t.Errorf("expected no assignment for empty log, got %q", got)
	}
}

func TestHasPickupScheduled(t *testing.T) {
	if HasPickupScheduled([]Event{evt(EventStatusChange, "", 0)}) {
		t.Error("status-change events must not count as a scheduled pickup")
	}
	log := []Event{
		evt(EventStatusChange, "", 0),
		evt(EventPickupScheduled, "", time.Hour),
	}
	if !HasPickupScheduled(log) {
		t.Error("expected pickup to be detected")
	}
}
