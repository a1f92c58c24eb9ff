package ports

import (
	"context"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

// EventRepository handles the append-only shipment event log. Events are
// inserted once and never amended; order is by creation time.
type EventRepository interface {
	// Append inserts a single immutable event record.
	Append(ctx context.Context, event *domain.Event) error

	// ListDescending returns the shipment's events newest-first, materialized
	// at call time. Used for assignment resolution.
	ListDescending(ctx context.Context, shipmentID string) ([]domain.Event, error)

	// ListAscending returns the shipment's events oldest-first, for timeline
	// display.
	ListAscending(ctx context.Context, shipmentID string) ([]domain.Event, error)
}
