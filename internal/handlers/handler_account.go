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

// accountHandler handles HTTP requests related to accounts, their movement
// log and transfers between them.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	transferService  portssvc.TransferSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransferSvcFacade, rs portssvc.ReportingSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:   as,
		transferService:  ts,
		reportingService: rs,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, ts portssvc.TransferSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newAccountHandler(as, ts, rs)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/movements", h.listMovements)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.POST("/:id/transfer", h.transfer)
		accounts.DELETE("/:id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a cash drawer, bank account or POS terminal. A nonzero opening balance posts the account's first movement.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param include_inactive query bool false "Include deactivated accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listMovements godoc
// @Summary List an account's movements
// @Description Returns the account's movement log, newest first, with cursor pagination.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/movements [get]
func (h *accountHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.accountService.ListMovements(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getBalance godoc
// @Summary Get an account balance as of an instant
// @Description Recomputes the balance from the movement log; with no as_of this equals the account's cached balance.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param as_of query string false "RFC 3339 instant"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	accountID := c.Param("id")

	var asOf *time.Time
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid as_of, expected RFC 3339"})
			return
		}
		asOf = &parsed
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_id": accountID, "bakiye": balance})
}

// transfer godoc
// @Summary Transfer funds to another account
// @Description Atomically debits this account and credits the destination, producing exactly two linked movements.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Source account ID"
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	transfer, out, in, err := h.transferService.Transfer(c.Request.Context(), c.Param("id"), req.ToAccountID, req.Amount, req.Note, userID)
	if err != nil {
		respondError(c, err, "Failed to execute transfer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer, out, in))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-deactivates an account. Refused while the balance is nonzero.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}
