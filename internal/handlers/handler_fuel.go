package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cashflowhq/cashflow_backend/internal/apperrors"
	portssvc "github.com/cashflowhq/cashflow_backend/internal/core/ports/services"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
	"github.com/cashflowhq/cashflow_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// fuelLogHandler handles HTTP requests for the fuel log.
type fuelLogHandler struct {
	fuelService portssvc.FuelLogSvcFacade
}

// newFuelLogHandler creates a new fuelLogHandler.
func newFuelLogHandler(fs portssvc.FuelLogSvcFacade) *fuelLogHandler {
	return &fuelLogHandler{
		fuelService: fs,
	}
}

// registerFuelLogRoutes registers all fuel-log routes.
func registerFuelLogRoutes(rg *gin.RouterGroup, fuelService portssvc.FuelLogSvcFacade) {
	h := newFuelLogHandler(fuelService)

	fuel := rg.Group("/fuel-logs")
	{
		fuel.POST("", h.createFuelLog)
		fuel.GET("/overview", h.getFuelOverview)
		fuel.GET("/:id", h.getFuelLog)
		fuel.PUT("/:id", h.updateFuelLog)
		fuel.DELETE("/:id", h.deleteFuelLog)
	}
}

// createFuelLog godoc
// @Summary Record a refuelling stop
// @Description Creates a fuel log entry together with its backing expense transaction
// @Tags fuel-logs
// @Accept  json
// @Produce  json
// @Param   fuelLog body dto.CreateFuelLogRequest true "Fuel log details"
// @Success 201 {object} dto.FuelLogResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create fuel log"
// @Security BearerAuth
// @Router /fuel-logs [post]
func (h *fuelLogHandler) createFuelLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.fuelService.CreateFuelLog(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create fuel log", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fuel log"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToFuelLogResponse(*created))
}

// getFuelOverview godoc
// @Summary Fuel consumption overview
// @Description Returns every fill with distance and consumption figures computed between full-tank fills, plus overall averages
// @Tags fuel-logs
// @Produce  json
// @Success 200 {object} dto.FuelOverviewResponse
// @Failure 500 {object} map[string]string "Failed to load fuel overview"
// @Security BearerAuth
// @Router /fuel-logs/overview [get]
func (h *fuelLogHandler) getFuelOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	overview, err := h.fuelService.GetFuelOverview(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load fuel overview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load fuel overview"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelOverviewResponse(*overview))
}

// getFuelLog godoc
// @Summary Get a fuel log entry by ID
// @Tags fuel-logs
// @Produce  json
// @Param   id path string true "Fuel log ID"
// @Success 200 {object} dto.FuelLogResponse
// @Failure 404 {object} map[string]string "Fuel log not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fuel log"
// @Security BearerAuth
// @Router /fuel-logs/{id} [get]
func (h *fuelLogHandler) getFuelLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fuelLogID := c.Param("id")

	log, err := h.fuelService.GetFuelLogByID(c.Request.Context(), fuelLogID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fuel log not found"})
			return
		}
		logger.Error("Failed to get fuel log", slog.String("fuel_log_id", fuelLogID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fuel log"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelLogResponse(*log))
}

// updateFuelLog godoc
// @Summary Update a fuel log entry
// @Description Applies corrections; the backing expense amount is kept in sync
// @Tags fuel-logs
// @Accept  json
// @Produce  json
// @Param   id path string true "Fuel log ID"
// @Param   fuelLog body dto.UpdateFuelLogRequest true "Fields to update"
// @Success 200 {object} dto.FuelLogResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fuel log not found"
// @Failure 500 {object} map[string]string "Failed to update fuel log"
// @Security BearerAuth
// @Router /fuel-logs/{id} [put]
func (h *fuelLogHandler) updateFuelLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fuelLogID := c.Param("id")

	var req dto.UpdateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.fuelService.UpdateFuelLog(c.Request.Context(), fuelLogID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fuel log not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update fuel log", slog.String("fuel_log_id", fuelLogID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fuel log"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelLogResponse(*updated))
}

// deleteFuelLog godoc
// @Summary Delete a fuel log entry
// @Description Removes the entry together with its backing expense transaction
// @Tags fuel-logs
// @Produce  json
// @Param   id path string true "Fuel log ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Fuel log not found"
// @Failure 500 {object} map[string]string "Failed to delete fuel log"
// @Security BearerAuth
// @Router /fuel-logs/{id} [delete]
func (h *fuelLogHandler) deleteFuelLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fuelLogID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.fuelService.DeleteFuelLog(c.Request.Context(), fuelLogID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fuel log not found"})
			return
		}
		logger.Error("Failed to delete fuel log", slog.String("fuel_log_id", fuelLogID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fuel log"})
		return
	}

	c.Status(http.StatusNoContent)
}
