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

// ledgerHandler handles HTTP requests for the two-party shared-expense ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// RegisterLedgerRoutes registers all shared-ledger routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getOverview)
		ledger.POST("/records", h.createRecord)
		ledger.POST("/settle", h.settle)
		ledger.POST("/records/:id/mirror", h.mirrorToMain)
	}
}

// getOverview godoc
// @Summary Shared ledger overview
// @Description Lists ledger records and returns the lifetime totals plus the open debt of the current period
// @Tags ledger
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerOverviewResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) getOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.LedgerQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	overview, err := h.ledgerService.GetLedgerOverview(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to load ledger overview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ledger"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// createRecord godoc
// @Summary Create a ledger record
// @Description Appends a tagged expense to the shared ledger
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   record body dto.CreateLedgerRecordRequest true "Ledger record details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create ledger record"
// @Security BearerAuth
// @Router /ledger/records [post]
func (h *ledgerHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create ledger record request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.ledgerService.CreateLedgerRecord(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create ledger record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ledger record"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*created))
}

// settle godoc
// @Summary Settle the open debt
// @Description Closes the current debt period by appending a settlement record paid by the debtor. A zero balance is a no-op.
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.SettlementResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to settle"
// @Security BearerAuth
// @Router /ledger/settle [post]
func (h *ledgerHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.ledgerService.SettleDebts(c.Request.Context(), creatorUserID)
	if err != nil {
		logger.Error("Failed to settle debts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// mirrorToMain godoc
// @Summary Mirror a ledger record into the general list
// @Description Copies the personal share of a ledger record into the general transaction list: half the amount for a shared cost, the full amount for an explicit debt
// @Tags ledger
// @Produce  json
// @Param   id path string true "Ledger record ID"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Not a mirrorable ledger record"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 409 {object} map[string]string "Record already mirrored"
// @Failure 500 {object} map[string]string "Failed to mirror record"
// @Security BearerAuth
// @Router /ledger/records/{id}/mirror [post]
func (h *ledgerHandler) mirrorToMain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	mirror, err := h.ledgerService.MirrorToMain(c.Request.Context(), transactionID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Record already mirrored"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to mirror ledger record", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mirror record"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*mirror))
}
