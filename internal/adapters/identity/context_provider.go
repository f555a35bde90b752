package identity

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"context"
	"strings"

	"github.com/rs/zerolog"
)

type emailKey struct{}

// WithEmail stores the authenticated login email in ctx. The transport
// layer calls this after it has authenticated the request.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

// EmailFrom returns the authenticated email stored in ctx.
func EmailFrom(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok && email != ""
}

// contextProvider resolves the email carried by ctx to a user.
type contextProvider struct {
	userRepo ports.UserRepository
	log      zerolog.Logger
}

var _ ports.IdentityProvider = (*contextProvider)(nil)

// NewContextProvider creates an IdentityProvider backed by userRepo.
// A nil userRepo resolves every caller as anonymous.
func NewContextProvider(userRepo ports.UserRepository, baseLogger *zerolog.Logger) ports.IdentityProvider {
	return &contextProvider{
		userRepo: userRepo,
		log:      baseLogger.With().Str("component", "identity_provider").Logger(),
	}
}

// CurrentIdentity returns nil, nil for anonymous or unknown callers.
func (p *contextProvider) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	email, ok := EmailFrom(ctx)
	if !ok {
		return nil, nil
	}
	if p.userRepo == nil {
		p.log.Debug().Msg("No user repository, treating caller as anonymous")
		return nil, nil
	}

	user, err := p.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to look up authenticated user")
		return nil, err
	}
	if user == nil {
		p.log.Warn().Msg("Authenticated email has no user")
		return nil, nil
	}
	return user.Identity(), nil
}
