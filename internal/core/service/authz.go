package service

import (
	"context"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

// The three access policies. Each privileged operation declares exactly one.
// Policies are evaluated on every call against the current record and event
// log; no result is ever cached across requests.

// requireOwner admits only the shipment's owning user.
func requireOwner(actor domain.Actor, s *domain.Shipment) error {
	if actor.UserID == "" || actor.UserID != s.OwnerID {
		return domain.ErrAccessDenied
	}
	return nil
}

// requireAdmin admits only actors carrying the administrator role.
func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrAccessDenied
	}
	return nil
}

// requireAssignedPartner admits the partner the shipment currently resolves
// to, or an administrator override. Assignment is derived from the event log,
// latest assignment event wins.
func (s *ShipmentService) requireAssignedPartner(ctx context.Context, actor domain.Actor, shipmentID string) error {
	if actor.IsAdmin() {
		return nil
	}
	assigned, err := s.resolveAssignment(ctx, shipmentID)
	if err != nil {
		return err
	}
	if assigned == "" || assigned != actor.UserID {
		return domain.ErrAccessDenied
	}
	return nil
}
