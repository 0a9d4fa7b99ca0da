package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding record owned by exactly one Owner.
// Balance is mutated only through the movement service or the explicit
// administrative override; the account-update path touches Number only.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Number    string          `json:"number"`    // Unique across all accounts, trimmed, non-empty
	Balance   decimal.Decimal `json:"balance"`   // Never null, zero at creation
	OwnerID   string          `json:"ownerID"`   // FK -> owners.owner_id, immutable after creation
	AuditFields
}
