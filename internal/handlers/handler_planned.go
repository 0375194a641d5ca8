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

// plannedExpenseHandler handles HTTP requests for planned expenses.
type plannedExpenseHandler struct {
	plannedService portssvc.PlannedExpenseSvcFacade
}

// newPlannedExpenseHandler creates a new plannedExpenseHandler.
func newPlannedExpenseHandler(ps portssvc.PlannedExpenseSvcFacade) *plannedExpenseHandler {
	return &plannedExpenseHandler{
		plannedService: ps,
	}
}

// registerPlannedExpenseRoutes registers all planned-expense routes.
func registerPlannedExpenseRoutes(rg *gin.RouterGroup, plannedService portssvc.PlannedExpenseSvcFacade) {
	h := newPlannedExpenseHandler(plannedService)

	planned := rg.Group("/planned-expenses")
	{
		planned.POST("", h.createPlannedExpense)
		planned.GET("", h.listPlannedExpenses)
		planned.GET("/:id", h.getPlannedExpense)
		planned.PUT("/:id", h.updatePlannedExpense)
		planned.DELETE("/:id", h.deletePlannedExpense)
		planned.POST("/:id/materialize", h.materializePlannedExpense)
	}
}

// createPlannedExpense godoc
// @Summary Create a planned expense
// @Description Adds an upcoming expense to the planning list
// @Tags planned-expenses
// @Accept  json
// @Produce  json
// @Param   planned body dto.CreatePlannedExpenseRequest true "Planned expense details"
// @Success 201 {object} dto.PlannedExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create planned expense"
// @Security BearerAuth
// @Router /planned-expenses [post]
func (h *plannedExpenseHandler) createPlannedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.plannedService.CreatePlannedExpense(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create planned expense", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create planned expense"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlannedExpenseResponse(*created))
}

// listPlannedExpenses godoc
// @Summary List planned expenses
// @Description Returns all open plans ordered by due date, plus their total amount
// @Tags planned-expenses
// @Produce  json
// @Success 200 {object} dto.ListPlannedExpensesResponse
// @Failure 500 {object} map[string]string "Failed to list planned expenses"
// @Security BearerAuth
// @Router /planned-expenses [get]
func (h *plannedExpenseHandler) listPlannedExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.plannedService.ListPlannedExpenses(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list planned expenses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list planned expenses"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPlannedExpense godoc
// @Summary Get a planned expense by ID
// @Tags planned-expenses
// @Produce  json
// @Param   id path string true "Planned expense ID"
// @Success 200 {object} dto.PlannedExpenseResponse
// @Failure 404 {object} map[string]string "Planned expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve planned expense"
// @Security BearerAuth
// @Router /planned-expenses/{id} [get]
func (h *plannedExpenseHandler) getPlannedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedExpenseID := c.Param("id")

	planned, err := h.plannedService.GetPlannedExpenseByID(c.Request.Context(), plannedExpenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned expense not found"})
			return
		}
		logger.Error("Failed to get planned expense", slog.String("planned_expense_id", plannedExpenseID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve planned expense"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlannedExpenseResponse(*planned))
}

// updatePlannedExpense godoc
// @Summary Update a planned expense
// @Tags planned-expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Planned expense ID"
// @Param   planned body dto.UpdatePlannedExpenseRequest true "Fields to update"
// @Success 200 {object} dto.PlannedExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Planned expense not found"
// @Failure 500 {object} map[string]string "Failed to update planned expense"
// @Security BearerAuth
// @Router /planned-expenses/{id} [put]
func (h *plannedExpenseHandler) updatePlannedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedExpenseID := c.Param("id")

	var req dto.UpdatePlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.plannedService.UpdatePlannedExpense(c.Request.Context(), plannedExpenseID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned expense not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update planned expense", slog.String("planned_expense_id", plannedExpenseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update planned expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPlannedExpenseResponse(*updated))
}

// deletePlannedExpense godoc
// @Summary Delete a planned expense
// @Tags planned-expenses
// @Produce  json
// @Param   id path string true "Planned expense ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Planned expense not found"
// @Failure 500 {object} map[string]string "Failed to delete planned expense"
// @Security BearerAuth
// @Router /planned-expenses/{id} [delete]
func (h *plannedExpenseHandler) deletePlannedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedExpenseID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.plannedService.DeletePlannedExpense(c.Request.Context(), plannedExpenseID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned expense not found"})
			return
		}
		logger.Error("Failed to delete planned expense", slog.String("planned_expense_id", plannedExpenseID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete planned expense"})
		return
	}

	c.Status(http.StatusNoContent)
}

// materializePlannedExpense godoc
// @Summary Materialize a planned expense
// @Description Converts a plan into a real expense transaction dated now and removes it from the planning list
// @Tags planned-expenses
// @Produce  json
// @Param   id path string true "Planned expense ID"
// @Success 201 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Planned expense not found"
// @Failure 500 {object} map[string]string "Failed to materialize planned expense"
// @Security BearerAuth
// @Router /planned-expenses/{id}/materialize [post]
func (h *plannedExpenseHandler) materializePlannedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedExpenseID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.plannedService.MaterializePlannedExpense(c.Request.Context(), plannedExpenseID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned expense not found"})
			return
		}
		logger.Error("Failed to materialize planned expense", slog.String("planned_expense_id", plannedExpenseID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to materialize planned expense"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}
