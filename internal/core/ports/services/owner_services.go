package services

import (
	"context"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
)

// OwnerSvcFacade exposes owner registration, authentication and CRUD.
// Raw passwords cross this boundary exactly once, into the bcrypt hash.
type OwnerSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Owner, error)
	Authenticate(ctx context.Context, email string, password string) (*domain.Owner, error)
	ListOwners(ctx context.Context) ([]domain.Owner, error)
	GetOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error)
	UpdateOwner(ctx context.Context, ownerID string, req dto.UpdateOwnerRequest) (*domain.Owner, error)
	DeleteOwner(ctx context.Context, ownerID string) error
}
