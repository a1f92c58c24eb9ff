package ports

import (
	"context"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

// ListShipmentsFilter carries the store-level query parameters for listing.
// The assigned-partner filter is intentionally absent: assignment is derived
// from the event log and must be applied by the service after loading.
type ListShipmentsFilter struct {
	Status string // optional: filter by shipment status
}

// ShipmentRepository defines persistence operations for shipments and their
// owned addresses and items.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	FindByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error)
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.Shipment, error)

	// UpdateStatus unconditionally sets the shipment status. Used by the admin
	// force path and by compensating reverts.
	UpdateStatus(ctx context.Context, id string, status domain.ShipmentStatus) error

	// CompareAndSetStatus sets the status only if the shipment still holds
	// expected. Returns domain.ErrInvalidTransition when no row matched,
	// closing the race between two concurrent scans.
	CompareAndSetStatus(ctx context.Context, id string, expected, next domain.ShipmentStatus) error

	// DeleteCascade removes the shipment and all of its addresses, items and
	// events. Used as the compensating step of a failed booking.
	DeleteCascade(ctx context.Context, id string) error

	CreateAddresses(ctx context.Context, addrs []domain.Address) error
	CreateItems(ctx context.Context, items []domain.Item) error
	FindAddresses(ctx context.Context, shipmentID string) ([]domain.Address, error)
	FindItems(ctx context.Context, shipmentID string) ([]domain.Item, error)
}
