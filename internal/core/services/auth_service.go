package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils"
	"github.com/Marceldinga/The-young-shall-grow/pkg/config"
	"github.com/google/uuid"
)

// authService authenticates profiles against the profiles table and
// resolves their roles. It doubles as the AdminAuthorizer injected into the
// other services and the RoleResolver used by the route middleware.
type authService struct {
	BaseService
	cfg         *config.Config
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, profileRepo portsrepo.ProfileRepositoryFacade) *authService {
	return &authService{cfg: cfg, profileRepo: profileRepo}
}

var (
	_ portssvc.AuthSvcFacade  = (*authService)(nil)
	_ portssvc.TokenSvcFacade = (*authService)(nil)
)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Uniform failure for unknown name and wrong password.
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up profile for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, profile.PasswordHash) {
		s.LogWarn(ctx, "Password mismatch on login", slog.String("profile_name", req.Name))
		return nil, apperrors.ErrUnauthorized
	}

	return profile, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterProfileRequest, creatorUserID string) (*domain.Profile, error) {
	if err := s.RequireAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}

	if existing, err := s.profileRepo.FindProfileByName(ctx, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("profile %q already exists: %w", req.Name, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleMember
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ProfileID:    uuid.NewString(),
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "Failed to save profile", slog.String("profile_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Profile registered",
		slog.String("profile_id", profile.ProfileID),
		slog.String("role", string(profile.Role)))
	return &profile, nil
}

func (s *authService) ResolveRole(ctx context.Context, profileID string) (domain.Role, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

func (s *authService) RequireAdmin(ctx context.Context, profileID string) error {
	role, err := s.ResolveRole(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// --- TokenSvcFacade implementation ---

func (s *authService) GenerateAccessToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(profile.ProfileID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

func (s *authService) GenerateRefreshToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	hash := utils.HashRefreshToken(rawRefreshToken)
	if err := s.profileRepo.UpdateRefreshToken(ctx, profile.ProfileID, hash, &expiryTime, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to persist refresh token hash",
			slog.String("profile_id", profile.ProfileID))
		return "", time.Time{}, err
	}

	return rawRefreshToken, expiryTime, nil
}

func (s *authService) ValidateRefreshToken(ctx context.Context, profileID, refreshToken string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve profile for refresh validation: %w", err)
	}

	if profile.RefreshTokenHash == "" || profile.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*profile.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(refreshToken, profile.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return profile, nil
}
