package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
)

// AccountRepository persists Account records.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
	// UpdateAccountNumber persists only the number field; balance and owner
	// are untouched by the account-update path.
	UpdateAccountNumber(ctx context.Context, accountID string, number string, now time.Time) error
	// UpdateAccountBalance is the administrative override write. It bypasses
	// movement bookkeeping entirely.
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error
	DeleteAccount(ctx context.Context, accountID string) error
	AccountExists(ctx context.Context, accountID string) (bool, error)
}
