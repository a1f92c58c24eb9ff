package domain

import "time"

// EventKind discriminates the structured meaning of a shipment event.
type EventKind string

const (
	// EventStatusChange records a status applied by a partner scan.
	EventStatusChange EventKind = "status_change"
	// EventAssignment records a partner assignment; the most recent one wins.
	EventAssignment EventKind = "assignment"
	// EventPickupScheduled records the owner booking a pickup window.
	EventPickupScheduled EventKind = "pickup_scheduled"
	// EventForceOverride records an administrator override with its reason.
	EventForceOverride EventKind = "force_override"
)

// Event is a single append-only record in a shipment's log. Events are never
// updated or deleted; the ordered log is the sole source of derived state such
// as the currently assigned partner.
type Event struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	ShipmentID string         `json:"shipment_id" bson:"shipment_id"`
	Kind       EventKind      `json:"kind" bson:"kind"`
	Status     ShipmentStatus `json:"status" bson:"status"`

	// Kind-specific fields. Exactly the fields matching Kind are set.
	PartnerID  string `json:"partner_id,omitempty" bson:"partner_id,omitempty"`
	Reason     string `json:"reason,omitempty" bson:"reason,omitempty"`
	PickupDate string `json:"pickup_date,omitempty" bson:"pickup_date,omitempty"`
	PickupSlot string `json:"pickup_slot,omitempty" bson:"pickup_slot,omitempty"`

	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// LatestAssignment derives the currently assigned partner from a log ordered
// newest-first. Returns the partner id of the first assignment event found, or
// "" when the shipment has never been assigned.
func LatestAssignment(eventsDesc []Event) string {
	for _, e := range eventsDesc {
		if e.Kind == EventAssignment && e.PartnerID != "" {
			return e.PartnerID
		}
	}
	return ""
}

// HasPickupScheduled reports whether the log already contains a
// pickup-scheduled event. At most one is permitted per shipment.
func HasPickupScheduled(events []Event) bool {
	for _, e := range events {
		if e.Kind == EventPickupScheduled {
			return true
		}
	}
	return false
}
