package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// CreateBooking creates a shipment with its pickup/delivery addresses and
// items. The store offers no multi-record transaction, so the workflow is a
// saga: if any step after the shipment insert fails, the shipment is deleted
// (cascading over any partially inserted children) and the original failure is
// surfaced as ErrBookingFailed. A failed compensation surfaces ErrInconsistent
// so the partial state is never hidden.
func (s *ShipmentService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*ports.BookingResult, error) {
	now := time.Now().UTC()
	shipment := &domain.Shipment{
		ID:            uuid.NewString(),
		TrackingCode:  generateTrackingCode(),
		OwnerID:       in.OwnerID,
		Status:        domain.StatusPending,
		TotalWeightKg: in.TotalWeightKg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 1. Shipment row.
	if err := s.shipments.Create(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("booking: shipment insert failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrBookingFailed, err)
	}

	// 2. Both addresses.
	addrs := []domain.Address{
		toAddress(shipment.ID, domain.AddressPickup, in.PickupAddress),
		toAddress(shipment.ID, domain.AddressDelivery, in.DeliveryAddress),
	}
	if err := s.shipments.CreateAddresses(ctx, addrs); err != nil {
		return nil, s.compensateBooking(ctx, shipment, fmt.Errorf("addresses: %w", err))
	}

	// 3. Items, if any.
	if len(in.Items) > 0 {
		items := make([]domain.Item, 0, len(in.Items))
		for _, it := range in.Items {
			qty := it.Quantity
			if qty <= 0 {
				qty = 1
			}
			items = append(items, domain.Item{
				ID:          uuid.NewString(),
				ShipmentID:  shipment.ID,
				Description: it.Description,
				Quantity:    qty,
				WeightKg:    it.WeightKg,
				LengthCm:    it.LengthCm,
				WidthCm:     it.WidthCm,
				HeightCm:    it.HeightCm,
			})
		}
		if err := s.shipments.CreateItems(ctx, items); err != nil {
			return nil, s.compensateBooking(ctx, shipment, fmt.Errorf("items: %w", err))
		}
	}

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("owner_id", in.OwnerID).
		Int("items", len(in.Items)).
		Msg("booking created")

	return &ports.BookingResult{
		ShipmentID:   shipment.ID,
		TrackingCode: shipment.TrackingCode,
		Status:       string(shipment.Status),
		CreatedAt:    shipment.CreatedAt,
	}, nil
}

// compensateBooking deletes the partially created shipment and re-raises the
// original failure. Best effort: if the delete itself fails the caller gets
// ErrInconsistent and must reconcile via cleanup tooling.
func (s *ShipmentService) compensateBooking(ctx context.Context, shipment *domain.Shipment, cause error) error {
	s.logger.Warn().Err(cause).
		Str("tracking_code", shipment.TrackingCode).
		Msg("booking failed, rolling back shipment")

	if delErr := s.shipments.DeleteCascade(ctx, shipment.ID); delErr != nil {
		s.logger.Error().Err(delErr).
			Str("shipment_id", shipment.ID).
			Msg("booking rollback failed, partial records remain")
		return fmt.Errorf("%w: rollback: %v (original: %v)", domain.ErrInconsistent, delErr, cause)
	}
	return fmt.Errorf("%w: %v", domain.ErrBookingFailed, cause)
}

func toAddress(shipmentID string, typ domain.AddressType, in ports.AddressInput) domain.Address {
	country := in.Country
	if country == "" {
		country = "India"
	}
	return domain.Address{
		ID:           uuid.NewString(),
		ShipmentID:   shipmentID,
		Type:         typ,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		Country:      country,
	}
}

// generateTrackingCode returns a public tracking code in the format PD-XXXXXXXX.
func generateTrackingCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("PD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("PD-%08X", b)
}
