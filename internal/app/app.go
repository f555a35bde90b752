// Package app wires the adapters and services from a Config.
package app

import (
	"StegoGuard/internal/adapters/compression"
	"StegoGuard/internal/adapters/eventbus"
	"StegoGuard/internal/adapters/identity"
	"StegoGuard/internal/adapters/oracle"
	"StegoGuard/internal/adapters/postgres"
	"StegoGuard/internal/adapters/security"
	"StegoGuard/internal/core/lsb"
	"StegoGuard/internal/core/policy"
	"StegoGuard/internal/core/ports"
	"StegoGuard/internal/core/services"
	"StegoGuard/internal/shared/config"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// App holds the wired services.
type App struct {
	Stego  *services.SteganographyService
	Images *services.ImageService
	Bus    eventbus.Bus

	db  *postgres.DB
	log zerolog.Logger
}

// New builds every component described by cfg. The database is only
// opened when DATABASE_URL is set; without it no caller has an identity.
func New(ctx context.Context, cfg *config.Config, baseLogger *zerolog.Logger) (*App, error) {
	a := &App{log: baseLogger.With().Str("component", "app").Logger()}

	// 1. Key and cipher
	key, err := signatureKey(cfg.Stego)
	if err != nil {
		return nil, err
	}
	mode, err := security.ParseMode(cfg.Stego.CipherMode)
	if err != nil {
		return nil, err
	}
	secSvc, err := security.NewAESService(key, mode, baseLogger)
	if err != nil {
		return nil, err
	}

	// 2. Codec and payload policy
	codec, err := lsb.New(cfg.Stego.BitsPerByte)
	if err != nil {
		return nil, err
	}
	kind := policy.KindEmail
	if cfg.Stego.SignatureMode == string(services.SignTimestamp) {
		kind = policy.KindTimestamp
	}

	// 3. Identity
	var userRepo ports.UserRepository
	if cfg.DatabaseURL != "" {
		a.db, err = postgres.NewDB(ctx, cfg.DatabaseURL, 0, baseLogger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		userRepo = postgres.NewUserRepository(a.db, baseLogger)
	} else {
		a.log.Warn().Msg("DATABASE_URL not set, uploads cannot be attributed to a user")
	}
	identityProvider := identity.NewContextProvider(userRepo, baseLogger)

	a.Stego = services.NewSteganographyService(secSvc, codec, identityProvider, kind, baseLogger)

	// 4. Oracle chain: local detection first, then the remote service
	oracles := []ports.ImageOracle{oracle.NewLocalOracle(a.Stego, baseLogger)}
	if cfg.Oracle.URL != "" {
		oracles = append(oracles, oracle.NewHTTPOracle(cfg.Oracle.URL, cfg.Oracle.Timeout, baseLogger))
	}

	// 5. Events
	a.Bus = eventbus.NewInMemoryEventBus(baseLogger)
	eventbus.SubscribeAuditLog(a.Bus, baseLogger)

	a.Images = services.NewImageService(
		a.Stego,
		oracle.Chain(oracles...),
		compression.NewZlibCompressor(),
		a.Bus,
		services.SignatureMode(cfg.Stego.SignatureMode),
		baseLogger,
	)

	a.log.Info().
		Str("cipher_mode", string(mode)).
		Int("bits_per_byte", codec.BitsPerByte()).
		Str("signature_mode", cfg.Stego.SignatureMode).
		Int("oracles", len(oracles)).
		Msg("Services initialized")
	return a, nil
}

// Close waits for pending event handlers and releases the database.
func (a *App) Close() {
	a.Bus.Drain()
	if a.db != nil {
		a.db.Close()
	}
}

// signatureKey derives the key from the configured secret, or generates a
// process-local one.
func signatureKey(cfg config.StegoConfig) ([]byte, error) {
	if cfg.Secret == "" {
		return security.GenerateKey()
	}
	return security.DeriveKey([]byte(cfg.Secret), []byte(cfg.Salt))
}
