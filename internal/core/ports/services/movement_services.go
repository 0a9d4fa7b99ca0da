package services

import (
	"context"
	"time"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
)

// MovementSvcFacade exposes ledger movement operations to the HTTP layer.
type MovementSvcFacade interface {
	ListMovements(ctx context.Context) ([]domain.Movement, error)
	GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)
	ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error)
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error)
	UpdateMovementDate(ctx context.Context, movementID string, newDate time.Time) (*domain.Movement, error)
	// DeleteMovement reverses the movement's balance effect and removes the
	// record. Deleting an absent movement is a no-op, not an error.
	DeleteMovement(ctx context.Context, movementID string) error
}
