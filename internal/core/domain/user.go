package domain

import "time"

// User models an account holder. Users are created at signup and never
// edited or removed afterwards.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Caller is the identity resolved by the access-control middleware.
// A zero Caller never reaches a service.
type Caller struct {
	ID string
}

// IsZero reports whether the caller carries no identity.
func (c Caller) IsZero() bool {
	return c.ID == ""
}
