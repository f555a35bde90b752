package ports

import (
	"StegoGuard/internal/core/domain"
	"context"
)

// IdentityProvider resolves who is calling.
type IdentityProvider interface {
	// CurrentIdentity returns nil, nil when the caller is anonymous.
	CurrentIdentity(ctx context.Context) (*domain.Identity, error)
}
