package domain

import "time"

const (
	RoleCustomer = "customer"
	RolePartner  = "partner"
	RoleAdmin    = "admin"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the resolved identity attached to every privileged request. It is
// re-derived from the token on each call; nothing is cached across requests.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor carries the administrator role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
