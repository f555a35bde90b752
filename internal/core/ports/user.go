package ports

import (
	"StegoGuard/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the read operations the signer needs on users.
type UserRepository interface {
	// GetByEmail finds a user by login email. Returns nil, nil if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID finds a user by their internal UUID. Returns nil, nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
