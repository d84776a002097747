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

// ledgerHandler handles ledger reconciliation requests.
type ledgerHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newLedgerHandler(rs portssvc.ReconciliationSvcFacade) *ledgerHandler {
	return &ledgerHandler{reconciliationService: rs}
}

// registerLedgerRoutes registers the reconciliation routes. Preview is open
// to any authenticated caller; apply sits behind the admin gate.
func registerLedgerRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newLedgerHandler(reconciliationService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/reconciliation", h.previewReconciliation)
		ledger.POST("/reconciliation", adminOnly, h.applyReconciliation)
	}
}

// previewReconciliation godoc
// @Summary Preview a ledger reconciliation
// @Description Replays the full history against the roster and returns the recomputed totals without persisting them. When the history schema lacks required columns the roster is returned unchanged with schemaOK=false.
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ReconciliationPreviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to preview reconciliation"
// @Security BearerAuth
// @Router /ledger/reconciliation [get]
func (h *ledgerHandler) previewReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to preview reconciliation")

	report, err := h.reconciliationService.Preview(c.Request.Context())
	if err != nil {
		logger.Error("Failed to preview reconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview reconciliation"})
		return
	}

	if !report.SchemaOK {
		logger.Warn("Reconciliation previewed with insufficient history schema")
	}
	c.JSON(http.StatusOK, dto.ToReconciliationPreviewResponse(report))
}

// applyReconciliation godoc
// @Summary Apply a ledger reconciliation
// @Description Replays the full history and persists the recomputed totals, one independent update per member. Members whose update failed are reported in the response instead of rolling back the rest.
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ReconciliationApplyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 500 {object} map[string]string "Failed to apply reconciliation"
// @Security BearerAuth
// @Router /ledger/reconciliation [post]
func (h *ledgerHandler) applyReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to apply reconciliation")

	outcome, err := h.reconciliationService.Apply(c.Request.Context(), actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Non-admin attempted to apply reconciliation")
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		} else {
			logger.Error("Failed to apply reconciliation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply reconciliation"})
		}
		return
	}

	logger.Info("Reconciliation applied",
		slog.Int("updated_count", outcome.UpdatedCount),
		slog.Int("failure_count", len(outcome.Failures)))
	c.JSON(http.StatusOK, dto.ToReconciliationApplyResponse(outcome))
}
