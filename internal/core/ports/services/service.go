package services

// ServiceContainer bundles all service implementations handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountService
	Ledger    LedgerService
	Statement StatementService
}
