package services

// ServiceContainer bundles the service facades handed to the HTTP layer at
// startup.
type ServiceContainer struct {
	Owner    OwnerSvcFacade
	Account  AccountSvcFacade
	Movement MovementSvcFacade
}
