package ports

import (
	"context"
	"time"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

// AddressInput holds one end of a new booking.
type AddressInput struct {
	ContactName  string
	ContactPhone string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Country      string
}

// ItemInput holds one content line of a new booking.
type ItemInput struct {
	Description string
	Quantity    int
	WeightKg    float64
	LengthCm    float64
	WidthCm     float64
	HeightCm    float64
}

// CreateBookingInput carries all data needed to create a shipment with its
// pickup and delivery addresses and optional items.
type CreateBookingInput struct {
	OwnerID         string
	PickupAddress   AddressInput
	DeliveryAddress AddressInput
	Items           []ItemInput
	TotalWeightKg   float64
}

// BookingResult is returned by the service after a successful booking.
type BookingResult struct {
	ShipmentID   string
	TrackingCode string
	Status       string
	CreatedAt    time.Time
}

// SchedulePickupInput carries an owner's pickup scheduling request.
type SchedulePickupInput struct {
	Actor      domain.Actor
	ShipmentID string
	PickupDate string // YYYY-MM-DD
	TimeSlot   string // e.g. "10:00-12:00"
}

// AssignPartnerInput carries an administrator's partner assignment.
type AssignPartnerInput struct {
	Actor      domain.Actor
	ShipmentID string
	PartnerID  string
}

// ScanInput carries a partner's status scan.
type ScanInput struct {
	Actor       domain.Actor
	ShipmentID  string
	NewStatus   domain.ShipmentStatus
	Description string
	Location    string
}

// ScanResult reports the applied transition.
type ScanResult struct {
	TrackingCode string
	Status       domain.ShipmentStatus
}

// ForceStatusInput carries an administrator's status override.
type ForceStatusInput struct {
	Actor      domain.Actor
	ShipmentID string
	NewStatus  domain.ShipmentStatus
	Reason     string
}

// ListShipmentsInput carries the admin list filters. PartnerID cannot be
// pushed to the store and is resolved per shipment in the service.
type ListShipmentsInput struct {
	Actor     domain.Actor
	Status    string
	PartnerID string
}

// ShipmentView is a list row annotated with the derived assignment.
type ShipmentView struct {
	Shipment          domain.Shipment
	AssignedPartnerID string
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items []ShipmentView
	Count int
}

// ShipmentAggregate is the full shipment view: record, owned children, log,
// and the derived assignment.
type ShipmentAggregate struct {
	Shipment          domain.Shipment
	Addresses         []domain.Address
	Items             []domain.Item
	Events            []domain.Event
	AssignedPartnerID string
}

// PublicEvent is a sanitized timeline entry: no internal ids.
type PublicEvent struct {
	Status      domain.ShipmentStatus `json:"status"`
	Description string                `json:"description,omitempty"`
	Location    string                `json:"location,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// PublicTracking is the unauthenticated tracking payload. It must never carry
// the internal shipment id, the owner id, or any address data.
type PublicTracking struct {
	TrackingCode string                `json:"tracking_code"`
	Status       domain.ShipmentStatus `json:"status"`
	Events       []PublicEvent         `json:"events"`
}

// ShipmentService defines the lifecycle use-cases.
type ShipmentService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResult, error)
	SchedulePickup(ctx context.Context, input SchedulePickupInput) error
	AssignPartner(ctx context.Context, input AssignPartnerInput) error
	Scan(ctx context.Context, input ScanInput) (*ScanResult, error)
	ForceStatus(ctx context.Context, input ForceStatusInput) error
	ListShipments(ctx context.Context, input ListShipmentsInput) (*ListShipmentsResult, error)
	GetAdminDetail(ctx context.Context, actor domain.Actor, shipmentID string) (*ShipmentAggregate, error)
	GetOwnerDetail(ctx context.Context, actor domain.Actor, shipmentID string) (*ShipmentAggregate, error)
	GetPublicTracking(ctx context.Context, trackingCode string) (*PublicTracking, error)
}
