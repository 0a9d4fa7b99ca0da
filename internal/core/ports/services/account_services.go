package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
)

// AccountSvcFacade exposes account operations to the HTTP layer and to the
// movement service.
type AccountSvcFacade interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccountNumber(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	// SetBalance is the administrative override. It bypasses movement
	// bookkeeping and therefore breaks the balance/movement invariant.
	SetBalance(ctx context.Context, accountID string, balance *decimal.Decimal) (*domain.Account, error)
}
