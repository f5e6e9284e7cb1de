package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/middleware"
)

// transactionHandler handles HTTP requests for the transaction ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		// Registered before /:id so "overdue" is not captured as an ID.
		transactions.GET("/overdue", h.listOverdue)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/settle", h.settleTransaction)
		transactions.POST("/:id/cancel", h.cancelTransaction)
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Creates a completed transaction when payments sum to the net amount, or a pending one when no payments are given and a due date is set.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions filtered by type, status, category, counterparty, date range and free-text search, newest first.
// @Tags transactions
// @Produce json
// @Param type query string false "INCOME or EXPENSE"
// @Param status query string false "COMPLETED, PENDING or CANCELLED"
// @Param category_id query string false "Category ID"
// @Param company_id query string false "Company ID"
// @Param patient_id query string false "Patient ID"
// @Param date_from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param date_to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param search query string false "Matches reference code or description"
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}

// listOverdue godoc
// @Summary List overdue pending transactions
// @Description Pending transactions past their due date, oldest debt first, with debtor names resolved.
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.OverdueTransactionResponse
// @Security BearerAuth
// @Router /transactions/overdue [get]
func (h *transactionHandler) listOverdue(c *gin.Context) {
	overdue, err := h.transactionService.GetOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err, "Failed to list overdue transactions")
		return
	}

	c.JSON(http.StatusOK, overdue)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// settleTransaction godoc
// @Summary Settle a pending transaction
// @Description Posts the given payments, which must sum exactly to the net amount, and marks the transaction completed.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param settlement body dto.SettleTransactionRequest true "Settlement payments"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/settle [post]
func (h *transactionHandler) settleTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettleTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.SettlePending(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to settle transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// cancelTransaction godoc
// @Summary Cancel a transaction
// @Description Marks the transaction cancelled. A completed transaction gets offsetting movements posted; nothing is ever deleted.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/cancel [post]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.CancelTransaction(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to cancel transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
