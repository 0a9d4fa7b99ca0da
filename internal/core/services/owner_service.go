package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portsrepo "github.com/ledgerhouse/banking-backoffice/internal/core/ports/repositories"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/middleware"
	"github.com/ledgerhouse/banking-backoffice/internal/utils"
)

type ownerService struct {
	ownerRepo   portsrepo.OwnerRepository
	accountRepo portsrepo.AccountRepository
}

// NewOwnerService creates a new owner service.
func NewOwnerService(ownerRepo portsrepo.OwnerRepository, accountRepo portsrepo.AccountRepository) portssvc.OwnerSvcFacade {
	return &ownerService{
		ownerRepo:   ownerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.OwnerSvcFacade = (*ownerService)(nil)

// Register creates a new owner with a bcrypt-hashed password. Email and tax
// ID must be unique; collisions surface as ErrConflict.
func (s *ownerService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Owner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.ownerRepo.FindOwnerByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check email uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	if _, err := s.ownerRepo.FindOwnerByTaxID(ctx, req.TaxID); err == nil {
		return nil, fmt.Errorf("%w: tax ID already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check tax ID uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check tax ID uniqueness: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	owner := domain.Owner{
		OwnerID:      uuid.NewString(),
		Name:         req.Name,
		TaxID:        req.TaxID,
		Address:      req.Address,
		Email:        email,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(now),
	}

	if err := s.ownerRepo.SaveOwner(ctx, owner); err != nil {
		// The database enforces the same uniqueness, so a concurrent
		// registration still comes back as a conflict.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Error("Failed to save owner", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save owner: %w", err)
	}

	logger.Info("Owner registered successfully",
		slog.String("owner_id", owner.OwnerID),
		slog.String("email", owner.Email))
	return &owner, nil
}

// Authenticate verifies credentials. A missing owner and a wrong password
// both return ErrUnauthorized so callers cannot probe which emails exist.
func (s *ownerService) Authenticate(ctx context.Context, email string, password string) (*domain.Owner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	owner, err := s.ownerRepo.FindOwnerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to find owner by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	if !utils.CheckPasswordHash(password, owner.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("owner_id", owner.OwnerID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return owner, nil
}

func (s *ownerService) ListOwners(ctx context.Context) ([]domain.Owner, error) {
	owners, err := s.ownerRepo.ListOwners(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list owners", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	if owners == nil {
		return []domain.Owner{}, nil
	}
	return owners, nil
}

func (s *ownerService) GetOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner ID is required", apperrors.ErrValidation)
	}

	owner, err := s.ownerRepo.FindOwnerByID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find owner by ID",
				slog.String("owner_id", ownerID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return owner, nil
}

func (s *ownerService) UpdateOwner(ctx context.Context, ownerID string, req dto.UpdateOwnerRequest) (*domain.Owner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	owner, err := s.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		owner.Name = *req.Name
	}
	if req.TaxID != nil && *req.TaxID != owner.TaxID {
		if _, err := s.ownerRepo.FindOwnerByTaxID(ctx, *req.TaxID); err == nil {
			return nil, fmt.Errorf("%w: tax ID already registered", apperrors.ErrConflict)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to check tax ID uniqueness", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check tax ID uniqueness: %w", err)
		}
		owner.TaxID = *req.TaxID
	}
	if req.Address != nil {
		owner.Address = *req.Address
	}
	owner.LastUpdatedAt = time.Now().UTC()

	if err := s.ownerRepo.UpdateOwner(ctx, *owner); err != nil {
		logger.Error("Failed to update owner",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	logger.Info("Owner updated successfully", slog.String("owner_id", ownerID))
	return owner, nil
}

// DeleteOwner removes an owner. Owners with accounts cannot be deleted; the
// accounts have to be removed first so no balance is orphaned.
func (s *ownerService) DeleteOwner(ctx context.Context, ownerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetOwnerByID(ctx, ownerID); err != nil {
		return err
	}

	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to list accounts for owner",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to list accounts for owner: %w", err)
	}
	if len(accounts) > 0 {
		return fmt.Errorf("%w: owner still has %d account(s)", apperrors.ErrConflict, len(accounts))
	}

	if err := s.ownerRepo.DeleteOwner(ctx, ownerID); err != nil {
		logger.Error("Failed to delete owner",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete owner: %w", err)
	}

	logger.Info("Owner deleted successfully", slog.String("owner_id", ownerID))
	return nil
}
