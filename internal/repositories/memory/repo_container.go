package memory

import portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"

func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerStore: NewLedgerStore(),
		UserRepo:    NewUserRepository(),
	}
}
