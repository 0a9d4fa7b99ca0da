package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// accountService provides account CRUD and enforces the unique
// account-number invariant.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	ownerRepo   portsrepo.OwnerRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository, ownerRepo portsrepo.OwnerRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ownerRepo:   ownerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID",
				slog.String("account_id", accountID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner ID is required", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts by owner",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts for owner %s: %w", ownerID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner ID is required", apperrors.ErrValidation)
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}

	if _, err := s.ownerRepo.FindOwnerByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner %s", apperrors.ErrNotFound, req.OwnerID)
		}
		logger.Error("Failed to find owner for account creation",
			slog.String("owner_id", req.OwnerID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}

	if err := s.checkNumberUnique(ctx, number, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Number:      number,
		Balance:     decimal.Zero,
		OwnerID:     req.OwnerID,
		AuditFields: domain.NewAuditFields(now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("owner_id", account.OwnerID))
	return &account, nil
}

func (s *accountService) UpdateAccountNumber(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	newNumber := strings.TrimSpace(req.Number)
	if newNumber == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}

	if newNumber == account.Number {
		return account, nil
	}

	if err := s.checkNumberUnique(ctx, newNumber, account.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountNumber(ctx, accountID, newNumber, now); err != nil {
		logger.Error("Failed to update account number",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	account.Number = newNumber
	account.LastUpdatedAt = now
	logger.Info("Account number updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accountID == "" {
		return fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	// Existence probe first so an absent account surfaces as NotFound rather
	// than a silent no-op delete.
	exists, err := s.accountRepo.AccountExists(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check account existence",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("Account deleted successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) SetBalance(ctx context.Context, accountID string, balance *decimal.Decimal) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if balance == nil {
		return nil, fmt.Errorf("%w: balance is required", apperrors.ErrValidation)
	}

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountBalance(ctx, accountID, *balance, now); err != nil {
		logger.Error("Failed to override account balance",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Warn("Account balance overridden, movement bookkeeping bypassed",
		slog.String("account_id", accountID),
		slog.String("balance", balance.String()))

	account.Balance = *balance
	account.LastUpdatedAt = now
	return account, nil
}

// checkNumberUnique scans all accounts for a trimmed, case-sensitive number
// match, excluding excludeID when updating. O(n) per write; acceptable at
// back-office scale. A unique index on accounts.number backstops races.
func (s *accountService) checkNumberUnique(ctx context.Context, number string, excludeID string) error {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check account number uniqueness: %w", err)
	}
	for _, acc := range accounts {
		if acc.AccountID == excludeID {
			continue
		}
		if strings.TrimSpace(acc.Number) == number {
			return fmt.Errorf("%w: account number %s is already in use", apperrors.ErrConflict, number)
		}
	}
	return nil
}
