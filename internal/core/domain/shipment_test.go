package domain

import "testing"

var allStatuses = []ShipmentStatus{
	StatusPending,
	StatusPickedUp,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
}

// The only pairs a partner scan may perform.
var legalScanPairs = map[[2]ShipmentStatus]bool{
	{StatusPending, StatusPickedUp}:         true,
	{StatusPickedUp, StatusInTransit}:       true,
	{StatusInTransit, StatusOutForDelivery}: true,
	{StatusOutForDelivery, StatusDelivered}: true,
}

func TestCanScanTo_Exhaustive(t *testing.T) {
	legal, illegal := 0, 0
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legalScanPairs[[2]ShipmentStatus{from, to}]
			got := from.CanScanTo(to)
			if got != want {
				t.Errorf("CanScanTo(%s -> %s): got %v, want %v", from, to, got, want)
			}
			if got {
				legal++
			} else {
				illegal++
			}
		}
	}
	if legal != 4 {
		t.Errorf("expected exactly 4 legal scan transitions, got %d", legal)
	}
	if illegal != 45 {
		t.Errorf("expected 45 illegal pairs out of 49, got %d", illegal)
	}
}

func TestCanScanTo_NoOpIsIllegal(t *testing.T) {
	for _, s := range allStatuses {
		if s.CanScanTo(s) {
			t.Errorf("scan %s -> %s must be illegal", s, s)
		}
	}
}

func TestCanScanTo_TerminalStatesUnreachableByScan(t *testing.T) {
	for _, from := range allStatuses {
		if from.CanScanTo(StatusCancelled) {
			t.Errorf("scan %s -> CANCELLED must be illegal", from)
		}
		if from.CanScanTo(StatusReturned) {
			t.Errorf("scan %s -> RETURNED must be illegal", from)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range allStatuses {
		if !s.IsValid() {
			t.Errorf("%s must be valid", s)
		}
	}
	for _, s := range []ShipmentStatus{"", "pending", "LOST", "DELIVERED "} {
		if s.IsValid() {
			t.Errorf("%q must be invalid", s)
		}
	}
}
