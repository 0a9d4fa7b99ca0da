package repositories

import (
	"context"
	"time"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
)

// MovementRepository persists Movement records and owns the transactional
// balance-apply path. Apply and Reverse must be atomic: either both the
// balance write and the movement write take effect, or neither does, and
// concurrent calls against the same account must be serialized.
type MovementRepository interface {
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)
	ListMovements(ctx context.Context) ([]domain.Movement, error)
	ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error)
	// ApplyMovement locks the account row, re-checks the withdrawal guard
	// against the locked balance, updates the balance and inserts the
	// movement in a single transaction. Returns apperrors.ErrNotFound when
	// the account is absent and apperrors.ErrInsufficientFunds when a
	// withdrawal exceeds the locked balance.
	ApplyMovement(ctx context.Context, movement domain.Movement) error
	// ReverseMovement locks the account row, applies the reversal delta and
	// deletes the movement in a single transaction. When strict is true the
	// reversal fails with apperrors.ErrConflict instead of driving the
	// balance negative.
	ReverseMovement(ctx context.Context, movement domain.Movement, strict bool) error
	UpdateMovementDate(ctx context.Context, movementID string, date time.Time, now time.Time) error
}
