package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind indicates whether a movement credits or debits an account.
type MovementKind string

const (
	Deposit    MovementKind = "DEPOSIT"
	Withdrawal MovementKind = "WITHDRAWAL"
)

// Valid reports whether the kind is one of the known values.
func (k MovementKind) Valid() bool {
	return k == Deposit || k == Withdrawal
}

// BalanceDelta returns the signed effect of a movement of this kind and
// amount on an account balance.
func (k MovementKind) BalanceDelta(amount decimal.Decimal) decimal.Decimal {
	if k == Withdrawal {
		return amount.Neg()
	}
	return amount
}

// Movement is a ledger entry recording a single balance-affecting event.
// A movement that exists in the store has already had its effect applied to
// its account's balance exactly once; only Date is mutable after creation.
type Movement struct {
	MovementID string          `json:"movementID"` // Primary Key (UUID)
	AccountID  string          `json:"accountID"`  // FK -> accounts.account_id, immutable
	Kind       MovementKind    `json:"kind"`       // DEPOSIT or WITHDRAWAL
	Amount     decimal.Decimal `json:"amount"`     // Positive magnitude; sign is carried by Kind
	Date       time.Time       `json:"date"`       // Calendar date, no time component
	AuditFields
}
