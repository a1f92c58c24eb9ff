package domain

import "errors"

var (
	// ErrShipmentNotFound is returned when the referenced shipment does not exist.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrAccessDenied is returned when an authorization policy rejects the actor.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidState is returned when an operation's status precondition fails.
	ErrInvalidState = errors.New("shipment is not in a valid state for this operation")
	// ErrInvalidTransition is returned when a scan requests a status that is not
	// the adjacent forward step from the current one.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyScheduled is returned when a pickup has already been scheduled.
	ErrAlreadyScheduled = errors.New("pickup already scheduled")
	// ErrBookingFailed is returned when multi-record creation failed and the
	// partially created records were cleaned up.
	ErrBookingFailed = errors.New("booking failed")
	// ErrInconsistent is returned when a compensating write itself failed,
	// leaving the shipment row and event log diverged. Never swallowed.
	ErrInconsistent = errors.New("shipment state inconsistent: compensation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
