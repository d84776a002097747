package services

import (
	"context"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
)

// AuthSvcFacade authenticates profiles and resolves their roles.
type AuthSvcFacade interface {
	// Login verifies the credentials and returns the matching profile.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.Profile, error)

	// Register creates a new login profile with a hashed password.
	Register(ctx context.Context, req dto.RegisterProfileRequest, creatorUserID string) (*domain.Profile, error)

	// ResolveRole returns the role for a profile ID, or ErrNotFound.
	ResolveRole(ctx context.Context, profileID string) (domain.Role, error)

	// RequireAdmin returns ErrForbidden unless the profile resolves to admin.
	RequireAdmin(ctx context.Context, profileID string) error
}

// TokenSvcFacade issues and validates access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a JWT access token for the profile.
	GenerateAccessToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and persists its hash.
	GenerateRefreshToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)

	// ValidateRefreshToken checks a presented refresh token against the
	// stored hash and expiry, returning the profile when valid.
	ValidateRefreshToken(ctx context.Context, profileID, refreshToken string) (*domain.Profile, error)
}
