package repositories

import (
	"context"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
)

// ProfileRepositoryFacade defines storage operations for login profiles and
// their roles.
type ProfileRepositoryFacade interface {
	// FindProfileByID retrieves a profile by its unique identifier.
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)

	// FindProfileByName retrieves a profile by login name.
	FindProfileByName(ctx context.Context, name string) (*domain.Profile, error)

	// SaveProfile persists a new profile.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// UpdateRefreshToken stores the hash and expiry of a newly issued
	// refresh token; empty hash clears it.
	UpdateRefreshToken(ctx context.Context, profileID string, tokenHash string, expiresAt *time.Time, now time.Time) error
}
