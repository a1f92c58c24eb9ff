package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

const (
	collectionShipments = "shipments"
	collectionAddresses = "shipment_addresses"
	collectionItems     = "shipment_items"
)

// ShipmentRepository persists shipments and their owned addresses and items.
type ShipmentRepository struct {
	db *mongo.Database
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// Create inserts a new shipment document.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.Collection(collectionShipments).InsertOne(ctx, s)
	return err
}

// FindByID retrieves a shipment by its internal id.
func (r *ShipmentRepository) FindByID(ctx context.Context, id string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	err := r.db.Collection(collectionShipments).FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByTrackingCode retrieves a shipment by its public tracking code.
func (r *ShipmentRepository) FindByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	err := r.db.Collection(collectionShipments).FindOne(ctx, bson.M{"tracking_code": code}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all shipments matching the store-level filter, newest first.
func (r *ShipmentRepository) List(ctx context.Context, filter ports.ListShipmentsFilter) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cur, err := r.db.Collection(collectionShipments).Find(ctx, query, findSortedDesc("created_at"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Shipment
	for cur.Next(ctx) {
		var s domain.Shipment
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

// UpdateStatus unconditionally sets the shipment's status.
func (r *ShipmentRepository) UpdateStatus(ctx context.Context, id string, status domain.ShipmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(collectionShipments).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// CompareAndSetStatus sets the status only when the document still holds
// expected. Zero matched documents means a concurrent writer moved the status
// first; that is reported as an invalid transition, not applied blindly.
func (r *ShipmentRepository) CompareAndSetStatus(ctx context.Context, id string, expected, next domain.ShipmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(collectionShipments).UpdateOne(ctx,
		bson.M{"_id": id, "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(next), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// DeleteCascade removes the shipment and everything it owns. Children are
// deleted first so a partial failure never orphans rows behind a missing
// parent; the shipment row itself goes last.
func (r *ShipmentRepository) DeleteCascade(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	children := bson.M{"shipment_id": id}
	for _, col := range []string{collectionAddresses, collectionItems, collectionEvents} {
		if _, err := r.db.Collection(col).DeleteMany(ctx, children); err != nil {
			return err
		}
	}
	_, err := r.db.Collection(collectionShipments).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CreateAddresses batch-inserts address documents.
func (r *ShipmentRepository) CreateAddresses(ctx context.Context, addrs []domain.Address) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(addrs))
	for i := range addrs {
		docs[i] = addrs[i]
	}
	_, err := r.db.Collection(collectionAddresses).InsertMany(ctx, docs)
	return err
}

// CreateItems batch-inserts item documents.
func (r *ShipmentRepository) CreateItems(ctx context.Context, items []domain.Item) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	_, err := r.db.Collection(collectionItems).InsertMany(ctx, docs)
	return err
}

// FindAddresses returns the shipment's addresses (pickup and delivery).
func (r *ShipmentRepository) FindAddresses(ctx context.Context, shipmentID string) ([]domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionAddresses).Find(ctx, bson.M{"shipment_id": shipmentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Address
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindItems returns the shipment's items.
func (r *ShipmentRepository) FindItems(ctx context.Context, shipmentID string) ([]domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionItems).Find(ctx, bson.M{"shipment_id": shipmentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Item
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing lookups and the cascade queries.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	shipmentIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_code", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.db.Collection(collectionShipments).Indexes().CreateMany(ctx, shipmentIdx); err != nil {
		return err
	}

	childIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shipment_id", Value: 1}}},
	}
	for _, col := range []string{collectionAddresses, collectionItems} {
		if _, err := r.db.Collection(col).Indexes().CreateMany(ctx, childIdx); err != nil {
			return err
		}
	}
	return nil
}
