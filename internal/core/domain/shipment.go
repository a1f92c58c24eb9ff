package domain

import (
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "PENDING"
	StatusPickedUp       ShipmentStatus = "PICKED_UP"
	StatusInTransit      ShipmentStatus = "IN_TRANSIT"
	StatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ShipmentStatus = "DELIVERED"
	StatusCancelled      ShipmentStatus = "CANCELLED"
	StatusReturned       ShipmentStatus = "RETURNED"
)

// scanTransitions defines the strict forward pipeline for partner scans.
// Each status has exactly one legal successor; CANCELLED and RETURNED are
// reachable only through the admin force-override path, which bypasses this
// table entirely.
var scanTransitions = map[ShipmentStatus]ShipmentStatus{
	StatusPending:        StatusPickedUp,
	StatusPickedUp:       StatusInTransit,
	StatusInTransit:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// CanScanTo reports whether a partner scan may move a shipment from s to next.
func (s ShipmentStatus) CanScanTo(next ShipmentStatus) bool {
	allowed, ok := scanTransitions[s]
	return ok && allowed == next
}

// IsValid reports whether s is one of the seven defined status values.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// AddressType tags an address as the pickup or delivery end of a shipment.
type AddressType string

const (
	AddressPickup   AddressType = "PICKUP"
	AddressDelivery AddressType = "DELIVERY"
)

// Address is one end of a shipment. Immutable once created; its lifetime is
// bound to the owning shipment.
type Address struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	ShipmentID   string      `json:"shipment_id" bson:"shipment_id"`
	Type         AddressType `json:"type" bson:"type"`
	ContactName  string      `json:"contact_name" bson:"contact_name"`
	ContactPhone string      `json:"contact_phone" bson:"contact_phone"`
	AddressLine1 string      `json:"address_line_1" bson:"address_line_1"`
	AddressLine2 string      `json:"address_line_2,omitempty" bson:"address_line_2,omitempty"`
	City         string      `json:"city" bson:"city"`
	State        string      `json:"state" bson:"state"`
	Pincode      string      `json:"pincode" bson:"pincode"`
	Country      string      `json:"country" bson:"country"`
}

// Item is a single line of shipment contents. Dimensions and weight are
// optional declarations, not measurements.
type Item struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	ShipmentID  string  `json:"shipment_id" bson:"shipment_id"`
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	WeightKg    float64 `json:"weight_kg,omitempty" bson:"weight_kg,omitempty"`
	LengthCm    float64 `json:"length_cm,omitempty" bson:"length_cm,omitempty"`
	WidthCm     float64 `json:"width_cm,omitempty" bson:"width_cm,omitempty"`
	HeightCm    float64 `json:"height_cm,omitempty" bson:"height_cm,omitempty"`
}

// Shipment is the core aggregate root. The internal ID is never exposed to
// unauthenticated callers; TrackingCode is the public handle. Status changes
// only through the lifecycle service.
type Shipment struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	TrackingCode  string         `json:"tracking_code" bson:"tracking_code"`
	OwnerID       string         `json:"owner_id" bson:"owner_id"`
	Status        ShipmentStatus `json:"status" bson:"status"`
	TotalWeightKg float64        `json:"total_weight_kg,omitempty" bson:"total_weight_kg,omitempty"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}
