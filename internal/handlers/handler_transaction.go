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

// transactionHandler handles recording financial events against members and
// reading the normalized history.
type transactionHandler struct {
	recorderService portssvc.RecorderSvcFacade
	historyService  portssvc.HistorySvcFacade
}

func newTransactionHandler(rs portssvc.RecorderSvcFacade, hs portssvc.HistorySvcFacade) *transactionHandler {
	return &transactionHandler{recorderService: rs, historyService: hs}
}

// registerTransactionRoutes registers the recorder and history routes.
// Recording routes sit behind the admin gate; history reads do not.
func registerTransactionRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc, recorderService portssvc.RecorderSvcFacade, historyService portssvc.HistorySvcFacade) {
	h := newTransactionHandler(recorderService, historyService)

	members := rg.Group("/members/:id", adminOnly)
	{
		members.POST("/contributions", h.recordContribution)
		members.POST("/loans", h.recordLoan)
		members.POST("/repayments", h.recordRepayment)
		members.POST("/fines", h.recordFine)
	}
	rg.GET("/history", h.listHistory)
}

// recordOutcomeError translates recorder service errors to HTTP responses.
func recordOutcomeError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Member not found for " + action)
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error recording "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Non-admin attempted to record " + action)
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
	default:
		logger.Error("Failed to record "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record " + action})
	}
}

// recordContribution godoc
// @Summary Record a contribution
// @Description Increases a member's contributed total and appends a history event in one transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param contribution body dto.RecordContributionRequest true "Contribution details"
// @Success 201 {object} dto.RecordOutcomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to record contribution"
// @Security BearerAuth
// @Router /members/{id}/contributions [post]
func (h *transactionHandler) recordContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	var req dto.RecordContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_member_id", memberID), slog.String("actor_id", actorID))
	logger.Info("Received request to record contribution", slog.String("amount", req.Amount.String()))

	outcome, err := h.recorderService.RecordContribution(c.Request.Context(), memberID, req.Amount, req.FoundationPart, actorID)
	if err != nil {
		recordOutcomeError(c, logger, "contribution", err)
		return
	}

	logger.Info("Contribution recorded successfully", slog.String("event_id", outcome.Event.EventID))
	c.JSON(http.StatusCreated, dto.ToRecordOutcomeResponse(outcome))
}

// recordLoan godoc
// @Summary Record a loan
// @Description Increases a member's loan due by principal plus up-front interest and appends a history event
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param loan body dto.RecordLoanRequest true "Loan details"
// @Success 201 {object} dto.RecordOutcomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to record loan"
// @Security BearerAuth
// @Router /members/{id}/loans [post]
func (h *transactionHandler) recordLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	var req dto.RecordLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_member_id", memberID), slog.String("actor_id", actorID))
	logger.Info("Received request to record loan",
		slog.String("amount", req.Amount.String()),
		slog.String("interest_percent", req.InterestPercent.String()))

	outcome, err := h.recorderService.RecordLoan(c.Request.Context(), memberID, req.Amount, req.InterestPercent, actorID)
	if err != nil {
		recordOutcomeError(c, logger, "loan", err)
		return
	}

	logger.Info("Loan recorded successfully", slog.String("event_id", outcome.Event.EventID))
	c.JSON(http.StatusCreated, dto.ToRecordOutcomeResponse(outcome))
}

// recordRepayment godoc
// @Summary Record a loan repayment
// @Description Decreases a member's loan due by the repaid amount, floored at zero
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param repayment body dto.RecordRepaymentRequest true "Repayment details"
// @Success 201 {object} dto.RecordOutcomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to record repayment"
// @Security BearerAuth
// @Router /members/{id}/repayments [post]
func (h *transactionHandler) recordRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	var req dto.RecordRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordRepayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_member_id", memberID), slog.String("actor_id", actorID))
	logger.Info("Received request to record repayment", slog.String("amount", req.Amount.String()))

	outcome, err := h.recorderService.RecordRepayment(c.Request.Context(), memberID, req.Amount, actorID)
	if err != nil {
		recordOutcomeError(c, logger, "repayment", err)
		return
	}

	logger.Info("Repayment recorded successfully", slog.String("event_id", outcome.Event.EventID))
	c.JSON(http.StatusCreated, dto.ToRecordOutcomeResponse(outcome))
}

// recordFine godoc
// @Summary Record a fine
// @Description Charges a penalty against a member; fines are tracked separately and do not change ledger balances
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param fine body dto.RecordFineRequest true "Fine details"
// @Success 201 {object} dto.FineResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not an admin)"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to record fine"
// @Security BearerAuth
// @Router /members/{id}/fines [post]
func (h *transactionHandler) recordFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	var req dto.RecordFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordFine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_member_id", memberID), slog.String("actor_id", actorID))
	logger.Info("Received request to record fine", slog.String("amount", req.Amount.String()))

	fine, err := h.recorderService.RecordFine(c.Request.Context(), memberID, req.Amount, req.Reason, actorID)
	if err != nil {
		recordOutcomeError(c, logger, "fine", err)
		return
	}

	logger.Info("Fine recorded successfully", slog.String("fine_id", fine.FineID))
	c.JSON(http.StatusCreated, dto.ToFineResponse(*fine))
}

// listHistory godoc
// @Summary List history events
// @Description Retrieves a page of normalized history events, newest first
// @Tags transactions
// @Produce json
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListHistoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "History schema insufficient for replay"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /history [get]
func (h *transactionHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	events, err := h.historyService.ListEvents(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrSchemaInsufficient) {
			logger.Warn("History schema insufficient", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "History table schema is missing required columns"})
			return
		}
		logger.Error("Failed to list history from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListHistoryResponse(events))
}
