package services

import (
	portsrepo "github.com/ledgerhouse/banking-backoffice/internal/core/ports/repositories"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Owner = NewOwnerService(repos.OwnerRepo, repos.AccountRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.OwnerRepo)
	container.Movement = NewMovementService(
		repos.MovementRepo,
		repos.AccountRepo,
		WithStrictReversal(cfg.StrictReversal),
	)

	return container
}
