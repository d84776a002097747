package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new repository for login profiles.
func NewProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &profileRepository{pool: pool}
}

var _ portsrepo.ProfileRepositoryFacade = (*profileRepository)(nil)

const profileColumns = `profile_id, name, password_hash, role, refresh_token_hash, refresh_token_expiry, created_at, created_by, last_updated_at, last_updated_by`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ProfileID,
		&p.Name,
		&p.PasswordHash,
		&p.Role,
		&p.RefreshTokenHash,
		&p.RefreshTokenExpiryTime,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindProfileByID retrieves a profile by its unique identifier.
func (r *profileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE profile_id = $1;`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find profile by ID %s: %w", profileID, err)
	}
	return p, nil
}

// FindProfileByName retrieves a profile by login name.
func (r *profileRepository) FindProfileByName(ctx context.Context, name string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE name = $1;`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find profile by name: %w", err)
	}
	return p, nil
}

// SaveProfile persists a new profile.
func (r *profileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	query := `
		INSERT INTO profiles (profile_id, name, password_hash, role, refresh_token_hash, refresh_token_expiry, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ProfileID,
		profile.Name,
		profile.PasswordHash,
		profile.Role,
		profile.RefreshTokenHash,
		profile.RefreshTokenExpiryTime,
		profile.CreatedAt,
		profile.CreatedBy,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.ProfileID, err)
	}
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a newly issued refresh
// token. An empty hash with nil expiry clears the stored token.
func (r *profileRepository) UpdateRefreshToken(ctx context.Context, profileID string, tokenHash string, expiresAt *time.Time, now time.Time) error {
	query := `
		UPDATE profiles
		SET refresh_token_hash = $2, refresh_token_expiry = $3, last_updated_at = $4, last_updated_by = $1
		WHERE profile_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, profileID, tokenHash, expiresAt, now)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for profile %s: %w", profileID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
