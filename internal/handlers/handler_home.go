package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/Marceldinga/The-young-shall-grow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// homeHandler serves the dashboard summary.
type homeHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newHomeHandler(rs portssvc.ReportingSvcFacade) *homeHandler {
	return &homeHandler{reportingService: rs}
}

// registerHomeRoutes registers the dashboard and fines-list routes.
func registerHomeRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newHomeHandler(reportingService)
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/fines", h.listFines)
}

// dashboard godoc
// @Summary Dashboard summary
// @Description Returns roster size, aggregate totals, the pool balance and the next beneficiary in one payload
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute dashboard summary"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *homeHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.DashboardSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// listFines godoc
// @Summary List fines
// @Description Retrieves every recorded fine, newest first
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.ListFinesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list fines"
// @Security BearerAuth
// @Router /fines [get]
func (h *homeHandler) listFines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fines, err := h.reportingService.ListFines(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fines", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fines"})
		return
	}

	c.JSON(http.StatusOK, dto.ListFinesResponse{Fines: fines})
}
