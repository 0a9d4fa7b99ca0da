package repositories

import (
	"context"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
)

// OwnerRepository persists Owner records.
type OwnerRepository interface {
	SaveOwner(ctx context.Context, owner domain.Owner) error
	FindOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error)
	FindOwnerByEmail(ctx context.Context, email string) (*domain.Owner, error)
	FindOwnerByTaxID(ctx context.Context, taxID string) (*domain.Owner, error)
	ListOwners(ctx context.Context) ([]domain.Owner, error)
	UpdateOwner(ctx context.Context, owner domain.Owner) error
	DeleteOwner(ctx context.Context, ownerID string) error
}
