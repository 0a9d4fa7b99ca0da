package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	OwnerID string `json:"ownerID" binding:"required"`
	Number  string `json:"number" binding:"required"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Only the account number is mutable; balance and owner are untouched by
// the update path.
type UpdateAccountRequest struct {
	Number string `json:"number" binding:"required"`
}

// SetBalanceRequest defines the administrative balance override payload.
// A pointer distinguishes an absent balance from an explicit zero.
type SetBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Number        string          `json:"number"`
	Balance       decimal.Decimal `json:"balance"`
	OwnerID       string          `json:"ownerID"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Number:        acc.Number,
		Balance:       acc.Balance,
		OwnerID:       acc.OwnerID,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
