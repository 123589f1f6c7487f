package services

import (
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Every ledger-backed service shares the ledger service so each user's ledger is loaded once
	container.Ledger = NewLedgerService(repos.LedgerStore, WithStorageTimeout(cfg.StorageTimeout), WithOwners(repos.UserRepo))
	container.Account = NewAccountService(container.Ledger, cfg.StorageTimeout)
	container.Journal = NewJournalService(container.Ledger, cfg.StorageTimeout)
	container.Reporting = NewReportingService(container.Ledger)

	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
)
