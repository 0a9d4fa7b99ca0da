package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ledgerhouse/banking-backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ownerRepo := newPgxOwnerRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	movementRepo := newPgxMovementRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		OwnerRepo:    ownerRepo,
		AccountRepo:  accountRepo,
		MovementRepo: movementRepo,
	}
}
