package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	OwnerRepo    OwnerRepository
	AccountRepo  AccountRepository
	MovementRepo MovementRepository
}
