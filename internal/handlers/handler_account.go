package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

var accountErrors = errorMessages{
	NotFound:  "Account not found",
	Duplicate: "Account number already exists",
	Fallback:  "Failed to process account request",
}

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/grouped", h.listAccountsByType)
		accounts.GET("/next-number", h.nextAccountNumber)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the chart of accounts of the logged-in user
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} domain.Account
// @Failure 400 {object} dto.ErrorResponse "Invalid input, unknown type or duplicate number"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	logger.Info("Received request to create account", slog.String("account_number", req.Number), slog.String("account_type", req.Type))

	account, err := h.accountService.CreateAccount(c.Request.Context(), ledger, req)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}

	logger.Info("Account created successfully", slog.Int64("account_id", account.ID))
	c.JSON(http.StatusCreated, account)
}

// listAccounts godoc
// @Summary List accounts
// @Description Returns the chart of accounts ordered by account number
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: accounts})
}

// listAccountsByType godoc
// @Summary List accounts grouped by type
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountGroupsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts/grouped [get]
func (h *accountHandler) listAccountsByType(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	groups, err := h.accountService.ListAccountsByType(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	c.JSON(http.StatusOK, dto.AccountGroupsResponse{Groups: groups})
}

// nextAccountNumber godoc
// @Summary Suggest the next free account number
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.NextAccountNumberResponse
// @Security BearerAuth
// @Router /accounts/next-number [get]
func (h *accountHandler) nextAccountNumber(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	number, err := h.accountService.NextAccountNumber(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	c.JSON(http.StatusOK, dto.NextAccountNumberResponse{Number: number})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 400 {object} dto.ErrorResponse "Invalid account id"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "account")
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), ledger, id)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes the number, name, type or description of an account. Omitted fields are kept.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} domain.Account
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate number"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "account")
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), ledger, id, req)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	logger.Info("Account updated successfully", slog.Int64("account_id", id))
	c.JSON(http.StatusOK, account)
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes the account and every journal entry that posts to it
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.DeleteAccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "account")
	if !ok {
		return
	}

	removed, err := h.accountService.DeleteAccount(c.Request.Context(), ledger, id)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	logger.Info("Account deleted", slog.Int64("account_id", id), slog.Int("deleted_entries", removed))
	c.JSON(http.StatusOK, dto.DeleteAccountResponse{
		Success:        true,
		Message:        fmt.Sprintf("Account deleted along with %d journal entries", removed),
		DeletedEntries: removed,
	})
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Returns total debits minus total credits posted to the account
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "account")
	if !ok {
		return
	}
	balance, err := h.accountService.CalculateAccountBalance(c.Request.Context(), ledger, id)
	if err != nil {
		respondWithError(c, err, accountErrors)
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: id, Balance: balance})
}
