package services

import (
	portsrepo "github.com/bizledger/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
)

// NewContainer wires every service against the repository provider.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo),
		Ledger:    NewLedgerService(repos.LedgerRepo),
		Statement: NewStatementService(repos.LedgerRepo),
	}
}
