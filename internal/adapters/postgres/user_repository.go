package postgres

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type userRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.UserRepository = (*userRepository)(nil) // Ensure compliance

// NewUserRepository creates a new repository for user lookups.
func NewUserRepository(db *DB, baseLogger *zerolog.Logger) ports.UserRepository {
	return &userRepository{
		db:  db,
		log: baseLogger.With().Str("component", "user_repo").Logger(),
	}
}

const userQueryCols = `id, email, username, created_at, updated_at`

// scanUser is a helper to scan a row into a User struct
func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan user row")
		return nil, err
	}
	return &user, nil
}

// GetByEmail finds a user by their login email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users WHERE lower(email) = lower($1)`

	user, err := r.scanUser(r.db.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Info().Msg("User not found by email")
			return nil, nil // Return nil, nil for "not found"
		}
		return nil, err
	}
	return user, nil
}

// GetByID finds a user by their internal UUID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Info().Str("user_id", id.String()).Msg("User not found")
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
