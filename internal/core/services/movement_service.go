package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portsrepo "github.com/ledgerhouse/banking-backoffice/internal/core/ports/repositories"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/middleware"
)

// movementService applies ledger movements to account balances. Every
// movement that exists in the store has had its effect applied exactly once;
// creation applies the effect and deletion reverses it, each as a single
// transactional unit in the repository.
type movementService struct {
	movementRepo   portsrepo.MovementRepository
	accountRepo    portsrepo.AccountRepository
	strictReversal bool
}

// MovementServiceOption is a functional option for configuring the movement
// service.
type MovementServiceOption func(*movementService)

// WithStrictReversal makes movement deletion fail instead of driving the
// account balance negative when reversing a deposit whose funds have since
// been withdrawn.
func WithStrictReversal(strict bool) MovementServiceOption {
	return func(s *movementService) {
		s.strictReversal = strict
	}
}

// NewMovementService creates a new movement service.
func NewMovementService(movementRepo portsrepo.MovementRepository, accountRepo portsrepo.AccountRepository, options ...MovementServiceOption) portssvc.MovementSvcFacade {
	svc := &movementService{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

func (s *movementService) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	movements, err := s.movementRepo.ListMovements(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list movements", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	if movements == nil {
		return []domain.Movement{}, nil
	}
	return movements, nil
}

func (s *movementService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	if movementID == "" {
		return nil, fmt.Errorf("%w: movement ID is required", apperrors.ErrValidation)
	}

	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find movement by ID",
				slog.String("movement_id", movementID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return movement, nil
}

func (s *movementService) ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	movements, err := s.movementRepo.ListMovementsByAccount(ctx, accountID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list movements by account",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movements for account %s: %w", accountID, err)
	}
	if movements == nil {
		return []domain.Movement{}, nil
	}
	return movements, nil
}

// CreateMovement records a movement and applies its effect to the account
// balance. The balance update and the movement insert commit together or not
// at all; the repository serializes concurrent movements on the same account
// by locking the account row, so the withdrawal guard it re-checks there is
// authoritative. The check here is a fast path that avoids opening a
// transaction for a request that cannot succeed.
func (s *movementService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.MovementKind(req.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be DEPOSIT or WITHDRAWAL", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := req.ParsedDate()
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		logger.Error("Failed to resolve account for movement",
			slog.String("account_id", req.AccountID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	if kind == domain.Withdrawal && account.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, account.Balance.String(), req.Amount.String())
	}

	now := time.Now().UTC()
	movement := domain.Movement{
		MovementID:  uuid.NewString(),
		AccountID:   account.AccountID,
		Kind:        kind,
		Amount:      req.Amount,
		Date:        date,
		AuditFields: domain.NewAuditFields(now),
	}

	if err := s.movementRepo.ApplyMovement(ctx, movement); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Failed to apply movement",
				slog.String("movement_id", movement.MovementID),
				slog.String("account_id", movement.AccountID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Movement created successfully",
		slog.String("movement_id", movement.MovementID),
		slog.String("account_id", movement.AccountID),
		slog.String("kind", string(kind)),
		slog.String("amount", movement.Amount.String()))
	return &movement, nil
}

// DeleteMovement reverses the movement's balance effect and removes the
// record in one transactional unit. Deleting an absent movement is a no-op.
// The reversal does not re-check for a negative result unless strict
// reversal is configured: deleting a deposit whose funds were since
// withdrawn can legitimately drive the balance negative in the default mode.
func (s *movementService) DeleteMovement(ctx context.Context, movementID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if movementID == "" {
		return fmt.Errorf("%w: movement ID is required", apperrors.ErrValidation)
	}

	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("Movement already absent, delete is a no-op", slog.String("movement_id", movementID))
			return nil
		}
		logger.Error("Failed to find movement for deletion",
			slog.String("movement_id", movementID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to find movement: %w", err)
	}

	if err := s.movementRepo.ReverseMovement(ctx, *movement, s.strictReversal); err != nil {
		logger.Error("Failed to reverse movement",
			slog.String("movement_id", movementID),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("Movement deleted and balance reversed",
		slog.String("movement_id", movementID),
		slog.String("account_id", movement.AccountID))
	return nil
}

// UpdateMovementDate mutates the date only. Amount, kind and account edits
// are not supported: a partial edit would desync the applied balance effect.
func (s *movementService) UpdateMovementDate(ctx context.Context, movementID string, newDate time.Time) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movement, err := s.GetMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.movementRepo.UpdateMovementDate(ctx, movementID, newDate, now); err != nil {
		logger.Error("Failed to update movement date",
			slog.String("movement_id", movementID),
			slog.String("error", err.Error()))
		return nil, err
	}

	movement.Date = newDate
	movement.LastUpdatedAt = now
	logger.Info("Movement date updated", slog.String("movement_id", movementID))
	return movement, nil
}
