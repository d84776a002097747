package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/Marceldinga/The-young-shall-grow/internal/middleware"
	"github.com/Marceldinga/The-young-shall-grow/pkg/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles login, token refresh and profile registration.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, tokenService: ts, cfg: cfg}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate
// limited by client IP to slow credential guessing.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Token, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
		auth.POST("/refresh", h.refresh)
	}
}

// registerProtectedAuthRoutes sets up auth routes that require a valid token.
func registerProtectedAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Token, cfg)
	rg.POST("/auth/register", h.register)
}

// setRefreshCookie stores the raw refresh token in an HTTP-only cookie scoped
// to the auth routes.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// login godoc
// @Summary Profile login
// @Description Authenticates a profile and returns a JWT access token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid name or password"
// @Failure 429 {object} map[string]string "Too many login attempts"
// @Failure 500 {object} map[string]string "Failed to generate tokens"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Login failed", slog.String("login_name", req.Name))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid name or password"})
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.setRefreshCookie(c, refreshToken, refreshExpiresAt)

	logger.Info("Profile logged in", slog.String("profile_id", profile.ProfileID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		ProfileID:   profile.ProfileID,
		Name:        profile.Name,
		Role:        string(profile.Role),
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

// refresh godoc
// @Summary Refresh the access token
// @Description Exchanges a valid refresh-token cookie for a new access token and a rotated refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Profile presenting the cookie"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body or missing cookie"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Failure 500 {object} map[string]string "Failed to generate tokens"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rawToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || rawToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token cookie missing"})
		return
	}

	profile, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), req.ProfileID, rawToken)
	if err != nil {
		logger.Warn("Refresh token validation failed", slog.String("profile_id", req.ProfileID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Rotate the refresh token on every use.
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to rotate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.setRefreshCookie(c, refreshToken, refreshExpiresAt)

	logger.Info("Access token refreshed", slog.String("profile_id", profile.ProfileID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		ProfileID:   profile.ProfileID,
		Name:        profile.Name,
		Role:        string(profile.Role),
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

// register godoc
// @Summary Register a new login profile
// @Description Creates a login profile with a hashed password. Only admins may register new profiles.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterProfileRequest true "Profile registration info"
// @Success 201 {object} map[string]string "Created profile ID and name"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 409 {object} map[string]string "Profile name already taken"
// @Failure 500 {object} map[string]string "Failed to register profile"
// @Security BearerAuth
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.authService.Register(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Non-admin attempted to register a profile", slog.String("creator_id", creatorUserID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Profile name already taken"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to register profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register profile"})
		}
		return
	}

	logger.Info("Profile registered", slog.String("profile_id", profile.ProfileID))
	c.JSON(http.StatusCreated, gin.H{"profileID": profile.ProfileID, "name": profile.Name, "role": string(profile.Role)})
}
