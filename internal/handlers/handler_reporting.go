package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/cashflowhq/cashflow_backend/internal/core/ports/services"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
	"github.com/cashflowhq/cashflow_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for aggregate reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/years", h.getYears)
		reports.GET("/summary/:year", h.getMonthlySummary)
		reports.GET("/business/:year", h.getBusinessTotal)
	}
}

// getYears godoc
// @Summary Years with data
// @Description Lists every year that has at least one record, newest first
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.YearsResponse
// @Failure 500 {object} map[string]string "Failed to load years"
// @Security BearerAuth
// @Router /reports/years [get]
func (h *reportingHandler) getYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.reportingService.Years(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load years", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load years"})
		return
	}

	c.JSON(http.StatusOK, dto.YearsResponse{Years: years})
}

// getMonthlySummary godoc
// @Summary Monthly summary for a year
// @Description Returns per-month income and expense totals plus the year totals
// @Tags reports
// @Produce  json
// @Param   year path int true "Year"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 500 {object} map[string]string "Failed to load summary"
// @Security BearerAuth
// @Router /reports/summary/{year} [get]
func (h *reportingHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	rows, err := h.reportingService.MonthlySummary(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to load monthly summary", slog.Int("year", year), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(rows))
}

// getBusinessTotal godoc
// @Summary Business expense total for a year
// @Description Sums all business-category expenses of the given year
// @Tags reports
// @Produce  json
// @Param   year path int true "Year"
// @Success 200 {object} dto.BusinessTotalResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 500 {object} map[string]string "Failed to load business total"
// @Security BearerAuth
// @Router /reports/business/{year} [get]
func (h *reportingHandler) getBusinessTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	total, err := h.reportingService.BusinessTotal(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to load business total", slog.Int("year", year), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business total"})
		return
	}

	c.JSON(http.StatusOK, dto.BusinessTotalResponse{Total: total})
}
