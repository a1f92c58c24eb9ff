package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

const collectionEvents = "shipment_events"

// EventRepository implements the append-only event log on MongoDB. Documents
// are inserted once and never updated or deleted outside a booking rollback.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

// Append inserts one immutable event record.
func (r *EventRepository) Append(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, event)
	return err
}

// ListDescending returns the shipment's events newest-first.
func (r *EventRepository) ListDescending(ctx context.Context, shipmentID string) ([]domain.Event, error) {
	return r.list(ctx, shipmentID, -1)
}

// ListAscending returns the shipment's events oldest-first.
func (r *EventRepository) ListAscending(ctx context.Context, shipmentID string) ([]domain.Event, error) {
	return r.list(ctx, shipmentID, 1)
}

func (r *EventRepository) list(ctx context.Context, shipmentID string, order int) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"shipment_id": shipmentID}, findSorted("created_at", order))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the compound index backing ordered log reads.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shipment_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
