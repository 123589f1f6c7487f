package pgsql

import (
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerStore: newPgxLedgerRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
		Close: func() error {
			dbPool.Close()
			return nil
		},
	}
}
