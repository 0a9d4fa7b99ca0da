package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService  portssvc.AccountSvcFacade
	movementService portssvc.MovementSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, ms portssvc.MovementSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:  as,
		movementService: ms,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, movementService portssvc.MovementSvcFacade) {
	h := newAccountHandler(accountService, movementService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/movements", h.listAccountMovements)
		accounts.PUT("/:id", h.updateAccount)
		accounts.PUT("/:id/balance", h.setBalance)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Opens a new account for an owner with a zero balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Owner not found"
// @Failure 409 {object} ErrorResponse "Account number already in use"
// @Failure 500 {object} ErrorResponse
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

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.renderAccountError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists all accounts, optionally filtered by owner.
// @Tags accounts
// @Produce json
// @Param ownerID query string false "Filter by owner ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		accounts []domain.Account
		err      error
	)
	if ownerID := c.Query("ownerID"); ownerID != "" {
		accounts, err = h.accountService.ListAccountsByOwner(c.Request.Context(), ownerID)
	} else {
		accounts, err = h.accountService.ListAccounts(c.Request.Context())
	}
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves a single account with its current balance.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		h.renderAccountError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccountMovements godoc
// @Summary List movements of an account
// @Description Lists the ledger movements recorded against an account.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/movements [get]
func (h *accountHandler) listAccountMovements(c *gin.Context) {
	accountID := c.Param("id")

	// Resolve first so an unknown account is a 404, not an empty list.
	if _, err := h.accountService.GetAccountByID(c.Request.Context(), accountID); err != nil {
		h.renderAccountError(c, err, "Failed to retrieve account")
		return
	}

	movements, err := h.movementService.ListMovementsByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.renderAccountError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(movements))
}

// updateAccount godoc
// @Summary Update an account number
// @Description Changes the human-facing account number. Balance and owner are immutable here.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "New account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account number already in use"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccountNumber(c.Request.Context(), accountID, req)
	if err != nil {
		h.renderAccountError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// setBalance godoc
// @Summary Override an account balance
// @Description Administrative balance write that bypasses movement bookkeeping.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param balance body dto.SetBalanceRequest true "New balance"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/balance [put]
func (h *accountHandler) setBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	// The override is audited against whoever is logged in.
	if actorID, ok := middleware.GetOwnerIDFromContext(c); ok {
		logger.Info("Balance override requested",
			slog.String("actor_owner_id", actorID),
			slog.String("account_id", accountID))
	}

	account, err := h.accountService.SetBalance(c.Request.Context(), accountID, req.Balance)
	if err != nil {
		h.renderAccountError(c, err, "Failed to set balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account and its movement history.
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID := c.Param("id")

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		h.renderAccountError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// renderAccountError maps service errors to HTTP responses.
func (h *accountHandler) renderAccountError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
