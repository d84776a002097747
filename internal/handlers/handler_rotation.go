package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/Marceldinga/The-young-shall-grow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rotationHandler handles payout-queue and pool-state requests.
type rotationHandler struct {
	rotationService portssvc.RotationSvcFacade
	poolService     portssvc.PoolSvcFacade
}

func newRotationHandler(rs portssvc.RotationSvcFacade, ps portssvc.PoolSvcFacade) *rotationHandler {
	return &rotationHandler{rotationService: rs, poolService: ps}
}

// registerRotationRoutes registers the payout-queue and pool-state routes.
// Advancing the queue sits behind the admin gate.
func registerRotationRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc, rotationService portssvc.RotationSvcFacade, poolService portssvc.PoolSvcFacade) {
	h := newRotationHandler(rotationService, poolService)

	rotation := rg.Group("/rotation")
	{
		rotation.GET("", h.getRotationOrder)
		rotation.POST("/advance", adminOnly, h.advancePayout)
	}
	rg.GET("/pool", h.getPoolState)
}

// getRotationOrder godoc
// @Summary Get the payout rotation order
// @Description Returns the roster sorted by rotation position with the next beneficiary flagged
// @Tags rotation
// @Produce json
// @Success 200 {object} dto.RotationOrderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute rotation order"
// @Security BearerAuth
// @Router /rotation [get]
func (h *rotationHandler) getRotationOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	nextIndex, slots, err := h.rotationService.Order(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute rotation order", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rotation order"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRotationOrderResponse(nextIndex, slots))
}

// advancePayout godoc
// @Summary Advance the payout rotation
// @Description Moves the next-payout pointer one step forward, wrapping past the end of the roster
// @Tags rotation
// @Produce json
// @Success 200 {object} dto.PoolStateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 500 {object} map[string]string "Failed to advance payout"
// @Security BearerAuth
// @Router /rotation/advance [post]
func (h *rotationHandler) advancePayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to advance payout")

	state, err := h.rotationService.AdvancePayout(c.Request.Context(), actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Non-admin attempted to advance payout")
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Cannot advance payout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to advance payout", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance payout"})
		}
		return
	}

	logger.Info("Payout advanced", slog.Int("next_payout_index", state.NextPayoutIndex))
	c.JSON(http.StatusOK, dto.ToPoolStateResponse(state))
}

// getPoolState godoc
// @Summary Get the shared pool state
// @Description Returns the foundation balance, cumulative interest and the next-payout pointer
// @Tags rotation
// @Produce json
// @Success 200 {object} dto.PoolStateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Pool state not initialized"
// @Failure 500 {object} map[string]string "Failed to retrieve pool state"
// @Security BearerAuth
// @Router /pool [get]
func (h *rotationHandler) getPoolState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.poolService.GetPoolState(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Pool state row missing")
			c.JSON(http.StatusNotFound, gin.H{"error": "Pool state not initialized"})
		} else {
			logger.Error("Failed to get pool state", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pool state"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPoolStateResponse(state))
}
