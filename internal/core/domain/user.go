package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account of the social backend.
// Only the fields the signing engine needs are mapped.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  *string // Nullable
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the authenticated principal an image gets signed for.
type Identity struct {
	ID    string
	Email string
}

// Identity returns the signing identity of the user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:    u.ID.String(),
		Email: u.Email,
	}
}
