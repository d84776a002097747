package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils"
	"github.com/Marceldinga/The-young-shall-grow/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockProfileRepository is a mock type for the ProfileRepositoryFacade interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByName(ctx context.Context, name string) (*domain.Profile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateRefreshToken(ctx context.Context, profileID string, tokenHash string, expiresAt *time.Time, now time.Time) error {
	args := m.Called(ctx, profileID, tokenHash, expiresAt, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

// authSvc covers both facades the auth service implements.
type authSvc interface {
	Login(ctx context.Context, req dto.LoginRequest) (*domain.Profile, error)
	Register(ctx context.Context, req dto.RegisterProfileRequest, creatorUserID string) (*domain.Profile, error)
	RequireAdmin(ctx context.Context, profileID string) error
	GenerateAccessToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)
	ValidateRefreshToken(ctx context.Context, profileID, refreshToken string) (*domain.Profile, error)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

type AuthServiceSuite struct {
	suite.Suite
	mockRepo *MockProfileRepository
	service  authSvc
}

func (suite *AuthServiceSuite) SetupTest() {
	suite.mockRepo = new(MockProfileRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "njangi-backend-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewAuthService(cfg, suite.mockRepo)
}

func (suite *AuthServiceSuite) profileWithPassword(password string, role domain.Role) *domain.Profile {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.Profile{
		ProfileID:    uuid.NewString(),
		Name:         "marcel",
		PasswordHash: hash,
		Role:         role,
	}
}

// --- Test Cases ---

func (suite *AuthServiceSuite) TestLogin_Success() {
	ctx := context.Background()
	profile := suite.profileWithPassword("correct horse", domain.RoleAdmin)

	suite.mockRepo.On("FindProfileByName", ctx, "marcel").Return(profile, nil).Once()

	got, err := suite.service.Login(ctx, dto.LoginRequest{Name: "marcel", Password: "correct horse"})

	suite.Require().NoError(err)
	suite.Equal(profile.ProfileID, got.ProfileID)
	suite.Equal(domain.RoleAdmin, got.Role)
}

func (suite *AuthServiceSuite) TestLogin_WrongPasswordAndUnknownNameFailTheSame() {
	ctx := context.Background()
	profile := suite.profileWithPassword("correct horse", domain.RoleMember)

	suite.mockRepo.On("FindProfileByName", ctx, "marcel").Return(profile, nil).Once()
	suite.mockRepo.On("FindProfileByName", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, wrongPassword := suite.service.Login(ctx, dto.LoginRequest{Name: "marcel", Password: "wrong"})
	_, unknownName := suite.service.Login(ctx, dto.LoginRequest{Name: "nobody", Password: "whatever"})

	suite.ErrorIs(wrongPassword, apperrors.ErrUnauthorized)
	suite.ErrorIs(unknownName, apperrors.ErrUnauthorized)
	suite.Equal(wrongPassword.Error(), unknownName.Error())
}

func (suite *AuthServiceSuite) TestRegister_AdminOnly() {
	ctx := context.Background()
	creator := suite.profileWithPassword("pw-admin-1", domain.RoleMember)

	suite.mockRepo.On("FindProfileByID", ctx, creator.ProfileID).Return(creator, nil).Once()

	_, err := suite.service.Register(ctx, dto.RegisterProfileRequest{Name: "new", Password: "password123"}, creator.ProfileID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

func (suite *AuthServiceSuite) TestRegister_DefaultsToMemberRole() {
	ctx := context.Background()
	creator := suite.profileWithPassword("pw-admin-1", domain.RoleAdmin)

	suite.mockRepo.On("FindProfileByID", ctx, creator.ProfileID).Return(creator, nil).Once()
	suite.mockRepo.On("FindProfileByName", ctx, "new").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveProfile", ctx, mock.AnythingOfType("domain.Profile")).Return(nil).Once()

	created, err := suite.service.Register(ctx, dto.RegisterProfileRequest{Name: "new", Password: "password123"}, creator.ProfileID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleMember, created.Role)
	suite.NotEqual("password123", created.PasswordHash)
	suite.True(utils.CheckPasswordHash("password123", created.PasswordHash))
}

func (suite *AuthServiceSuite) TestRequireAdmin_UnknownProfileIsForbidden() {
	ctx := context.Background()
	profileID := uuid.NewString()

	suite.mockRepo.On("FindProfileByID", ctx, profileID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequireAdmin(ctx, profileID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceSuite) TestGenerateAndValidateRefreshToken() {
	ctx := context.Background()
	profile := suite.profileWithPassword("pw", domain.RoleMember)

	var storedHash string
	var storedExpiry *time.Time
	suite.mockRepo.On("UpdateRefreshToken", ctx, profile.ProfileID, mock.AnythingOfType("string"), mock.AnythingOfType("*time.Time"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
			storedExpiry = args.Get(3).(*time.Time)
		}).Return(nil).Once()

	raw, expiry, err := suite.service.GenerateRefreshToken(ctx, profile)
	suite.Require().NoError(err)
	suite.NotEmpty(raw)
	suite.True(expiry.After(time.Now()))
	suite.Equal(utils.HashRefreshToken(raw), storedHash)

	// Validation checks the presented raw token against the stored hash.
	profile.RefreshTokenHash = storedHash
	profile.RefreshTokenExpiryTime = storedExpiry
	suite.mockRepo.On("FindProfileByID", ctx, profile.ProfileID).Return(profile, nil).Twice()

	got, err := suite.service.ValidateRefreshToken(ctx, profile.ProfileID, raw)
	suite.Require().NoError(err)
	suite.Equal(profile.ProfileID, got.ProfileID)

	_, err = suite.service.ValidateRefreshToken(ctx, profile.ProfileID, "tampered")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	profile := suite.profileWithPassword("pw", domain.RoleMember)
	expired := time.Now().Add(-time.Minute)
	profile.RefreshTokenHash = utils.HashRefreshToken("old-token")
	profile.RefreshTokenExpiryTime = &expired

	suite.mockRepo.On("FindProfileByID", ctx, profile.ProfileID).Return(profile, nil).Once()

	_, err := suite.service.ValidateRefreshToken(ctx, profile.ProfileID, "old-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}
