package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// TrackingCache abstracts the read-through cache for the public tracking
// payload (Redis). A miss returns (nil, nil).
type TrackingCache interface {
	Get(ctx context.Context, trackingCode string) (*ports.PublicTracking, error)
	Set(ctx context.Context, payload *ports.PublicTracking) error
	Invalidate(ctx context.Context, trackingCode string) error
}

// StatusNotifier receives post-commit status change notifications. Delivery is
// asynchronous and must never affect the request path.
type StatusNotifier interface {
	NotifyStatusChange(trackingCode string, status domain.ShipmentStatus, location string)
}

// ShipmentService orchestrates the shipment lifecycle: it gates every
// operation behind its access policy, validates transitions, and performs the
// shipment-row and event-log writes with compensating actions on partial
// failure. The store offers no multi-record transaction to this layer.
type ShipmentService struct {
	shipments ports.ShipmentRepository
	events    ports.EventRepository
	cache     TrackingCache  // optional
	notifier  StatusNotifier // optional
	logger    zerolog.Logger
}

func NewShipmentService(
	shipments ports.ShipmentRepository,
	events ports.EventRepository,
	cache TrackingCache,
	notifier StatusNotifier,
	logger zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		events:    events,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
	}
}

// resolveAssignment derives the currently assigned partner from the event log.
// Returns "" when the shipment has never been assigned.
func (s *ShipmentService) resolveAssignment(ctx context.Context, shipmentID string) (string, error) {
	log, err := s.events.ListDescending(ctx, shipmentID)
	if err != nil {
		return "", fmt.Errorf("resolve assignment: %w", err)
	}
	return domain.LatestAssignment(log), nil
}

// SchedulePickup appends a pickup-scheduled event to a PENDING shipment.
// Owner-only; at most one pickup may be scheduled per shipment; the shipment
// status is unchanged.
func (s *ShipmentService) SchedulePickup(ctx context.Context, in ports.SchedulePickupInput) error {
	shipment, err := s.shipments.FindByID(ctx, in.ShipmentID)
	if err != nil {
		return err
	}

	if err := requireOwner(in.Actor, shipment); err != nil {
		return err
	}

	if shipment.Status != domain.StatusPending {
		return fmt.Errorf("%w: pickup requires PENDING, shipment is %s", domain.ErrInvalidState, shipment.Status)
	}

	log, err := s.events.ListDescending(ctx, in.ShipmentID)
	if err != nil {
		return fmt.Errorf("schedule pickup: %w", err)
	}
	if domain.HasPickupScheduled(log) {
		return domain.ErrAlreadyScheduled
	}

	event := &domain.Event{
		ID:          uuid.NewString(),
		ShipmentID:  shipment.ID,
		Kind:        domain.EventPickupScheduled,
		Status:      shipment.Status,
		PickupDate:  in.PickupDate,
		PickupSlot:  in.TimeSlot,
		Description: fmt.Sprintf("Pickup scheduled for %s (%s)", in.PickupDate, in.TimeSlot),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		return fmt.Errorf("schedule pickup: append event: %w", err)
	}

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("owner_id", in.Actor.UserID).
		Str("pickup_date", in.PickupDate).
		Msg("pickup scheduled")
	return nil
}

// AssignPartner appends an assignment event carrying the shipment's current
// status. Admin-only. The partner id is not checked against an account store;
// assignment to an unknown partner simply never matches a scan.
func (s *ShipmentService) AssignPartner(ctx context.Context, in ports.AssignPartnerInput) error {
	if err := requireAdmin(in.Actor); err != nil {
		return err
	}

	shipment, err := s.shipments.FindByID(ctx, in.ShipmentID)
	if err != nil {
		return err
	}

	event := &domain.Event{
		ID:          uuid.NewString(),
		ShipmentID:  shipment.ID,
		Kind:        domain.EventAssignment,
		Status:      shipment.Status,
		PartnerID:   in.PartnerID,
		Description: "Assigned to delivery partner",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		return fmt.Errorf("assign partner: append event: %w", err)
	}

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("partner_id", in.PartnerID).
		Str("admin_id", in.Actor.UserID).
		Msg("partner assigned")
	return nil
}

// Scan moves a shipment one step along the forward pipeline on behalf of its
// assigned partner. Two-step write with compensation: the status update uses a
// compare-and-set on the pre-scan status, and a failed event append reverts it.
func (s *ShipmentService) Scan(ctx context.Context, in ports.ScanInput) (*ports.ScanResult, error) {
	shipment, err := s.shipments.FindByID(ctx, in.ShipmentID)
	if err != nil {
		return nil, err
	}

	// 1. Assigned-partner policy (admin override permitted).
	if err := s.requireAssignedPartner(ctx, in.Actor, shipment.ID); err != nil {
		return nil, err
	}

	// 2. Transition legality.
	if !shipment.Status.CanScanTo(in.NewStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, shipment.Status, in.NewStatus)
	}

	// 3. Conditional status update. A concurrent scan that moved the status
	// first leaves nothing to match and this scan fails instead of
	// double-applying.
	prev := shipment.Status
	if err := s.shipments.CompareAndSetStatus(ctx, shipment.ID, prev, in.NewStatus); err != nil {
		return nil, fmt.Errorf("scan %s: %w", shipment.TrackingCode, err)
	}

	// 4. Append the status-change event; revert the status if the append fails.
	description := in.Description
	if description == "" {
		description = fmt.Sprintf("Shipment scanned: %s", in.NewStatus)
	}
	event := &domain.Event{
		ID:          uuid.NewString(),
		ShipmentID:  shipment.ID,
		Kind:        domain.EventStatusChange,
		Status:      in.NewStatus,
		Description: description,
		Location:    in.Location,
		CreatedAt:   time.Now().UTC(),
	}
	if appendErr := s.events.Append(ctx, event); appendErr != nil {
		if revertErr := s.shipments.UpdateStatus(ctx, shipment.ID, prev); revertErr != nil {
			s.logger.Error().Err(revertErr).
				Str("tracking_code", shipment.TrackingCode).
				Str("status", string(in.NewStatus)).
				Msg("status revert failed after event append failure")
			return nil, fmt.Errorf("%w: %v (original: %v)", domain.ErrInconsistent, revertErr, appendErr)
		}
		return nil, fmt.Errorf("scan %s: append event: %w", shipment.TrackingCode, appendErr)
	}

	s.afterStatusChange(ctx, shipment.TrackingCode, in.NewStatus, in.Location)

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("partner_id", in.Actor.UserID).
		Str("from", string(prev)).
		Str("to", string(in.NewStatus)).
		Msg("shipment scanned")

	return &ports.ScanResult{TrackingCode: shipment.TrackingCode, Status: in.NewStatus}, nil
}

// ForceStatus sets any status value, bypassing the pipeline. Admin-only, and
// the reason is mandatory for the audit trail. Compensation mirrors Scan: a
// failed event append reverts the status update.
func (s *ShipmentService) ForceStatus(ctx context.Context, in ports.ForceStatusInput) error {
	if err := requireAdmin(in.Actor); err != nil {
		return err
	}
	if !in.NewStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidState, in.NewStatus)
	}

	shipment, err := s.shipments.FindByID(ctx, in.ShipmentID)
	if err != nil {
		return err
	}
	prev := shipment.Status

	if err := s.shipments.UpdateStatus(ctx, shipment.ID, in.NewStatus); err != nil {
		return fmt.Errorf("force status %s: %w", shipment.TrackingCode, err)
	}

	event := &domain.Event{
		ID:          uuid.NewString(),
		ShipmentID:  shipment.ID,
		Kind:        domain.EventForceOverride,
		Status:      in.NewStatus,
		Reason:      in.Reason,
		Description: fmt.Sprintf("Status forced to %s: %s", in.NewStatus, in.Reason),
		CreatedAt:   time.Now().UTC(),
	}
	if appendErr := s.events.Append(ctx, event); appendErr != nil {
		if revertErr := s.shipments.UpdateStatus(ctx, shipment.ID, prev); revertErr != nil {
			s.logger.Error().Err(revertErr).
				Str("tracking_code", shipment.TrackingCode).
				Msg("status revert failed after audit append failure")
			return fmt.Errorf("%w: %v (original: %v)", domain.ErrInconsistent, revertErr, appendErr)
		}
		return fmt.Errorf("force status %s: append event: %w", shipment.TrackingCode, appendErr)
	}

	s.afterStatusChange(ctx, shipment.TrackingCode, in.NewStatus, "")

	s.logger.Info().
		Str("tracking_code", shipment.TrackingCode).
		Str("admin_id", in.Actor.UserID).
		Str("from", string(prev)).
		Str("to", string(in.NewStatus)).
		Str("reason", in.Reason).
		Msg("status forced")
	return nil
}

// afterStatusChange runs the post-commit side effects: cache invalidation and
// async notification. Failures are logged, never surfaced.
func (s *ShipmentService) afterStatusChange(ctx context.Context, trackingCode string, status domain.ShipmentStatus, location string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, trackingCode); err != nil {
			s.logger.Warn().Err(err).Str("tracking_code", trackingCode).Msg("tracking cache invalidation failed")
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyStatusChange(trackingCode, status, location)
	}
}

// ListShipments returns shipments for the admin console. The status filter is
// pushed to the store; the partner filter is applied here after resolving each
// shipment's assignment, because assignment is not a stored column.
func (s *ShipmentService) ListShipments(ctx context.Context, in ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	if err := requireAdmin(in.Actor); err != nil {
		return nil, err
	}

	shipments, err := s.shipments.List(ctx, ports.ListShipmentsFilter{Status: in.Status})
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	items := make([]ports.ShipmentView, 0, len(shipments))
	for _, sh := range shipments {
		assigned, err := s.resolveAssignment(ctx, sh.ID)
		if err != nil {
			return nil, err
		}
		if in.PartnerID != "" && assigned != in.PartnerID {
			continue
		}
		items = append(items, ports.ShipmentView{Shipment: *sh, AssignedPartnerID: assigned})
	}

	return &ports.ListShipmentsResult{Items: items, Count: len(items)}, nil
}

// GetAdminDetail loads the full aggregate with the derived assignment.
func (s *ShipmentService) GetAdminDetail(ctx context.Context, actor domain.Actor, shipmentID string) (*ports.ShipmentAggregate, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.loadAggregate(ctx, shipmentID)
}

// GetOwnerDetail loads the full aggregate for the shipment's owner.
func (s *ShipmentService) GetOwnerDetail(ctx context.Context, actor domain.Actor, shipmentID string) (*ports.ShipmentAggregate, error) {
	shipment, err := s.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, shipment); err != nil {
		return nil, err
	}
	return s.loadAggregate(ctx, shipmentID)
}

func (s *ShipmentService) loadAggregate(ctx context.Context, shipmentID string) (*ports.ShipmentAggregate, error) {
	shipment, err := s.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	addresses, err := s.shipments.FindAddresses(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("load shipment %s: addresses: %w", shipmentID, err)
	}
	items, err := s.shipments.FindItems(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("load shipment %s: items: %w", shipmentID, err)
	}
	log, err := s.events.ListAscending(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("load shipment %s: events: %w", shipmentID, err)
	}

	// Derive assignment from the same log, scanned newest-first.
	assigned := ""
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Kind == domain.EventAssignment && log[i].PartnerID != "" {
			assigned = log[i].PartnerID
			break
		}
	}

	return &ports.ShipmentAggregate{
		Shipment:          *shipment,
		Addresses:         addresses,
		Items:             items,
		Events:            log,
		AssignedPartnerID: assigned,
	}, nil
}

// GetPublicTracking returns the sanitized tracking payload for an anonymous
// caller. The internal shipment id is needed to join the event log but is
// stripped from the result; owner id and addresses are never loaded into it.
func (s *ShipmentService) GetPublicTracking(ctx context.Context, trackingCode string) (*ports.PublicTracking, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, trackingCode)
		if err != nil {
			s.logger.Warn().Err(err).Str("tracking_code", trackingCode).Msg("tracking cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	shipment, err := s.shipments.FindByTrackingCode(ctx, trackingCode)
	if err != nil {
		return nil, err
	}

	log, err := s.events.ListAscending(ctx, shipment.ID)
	if err != nil {
		return nil, fmt.Errorf("public tracking %s: %w", trackingCode, err)
	}

	events := make([]ports.PublicEvent, 0, len(log))
	for _, e := range log {
		events = append(events, ports.PublicEvent{
			Status:      e.Status,
			Description: e.Description,
			Location:    e.Location,
			CreatedAt:   e.CreatedAt,
		})
	}

	payload := &ports.PublicTracking{
		TrackingCode: shipment.TrackingCode,
		Status:       shipment.Status,
		Events:       events,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, payload); err != nil {
			s.logger.Warn().Err(err).Str("tracking_code", trackingCode).Msg("tracking cache write failed")
		}
	}
	return payload, nil
}
