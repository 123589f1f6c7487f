package sqlite

import (
	"log/slog"

	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/repositories/database/migrations"
	"github.com/SscSPs/general_ledger_app/pkg/database"
)

// NewRepositoryProvider opens the SQLite file at dbPath and migrates it.
func NewRepositoryProvider(dbPath string, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	db, err := database.OpenSQLite(dbPath)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	if err := migrations.RunSQLite(db, logger); err != nil {
		db.Close()
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{
		LedgerStore: &LedgerRepository{db: db},
		UserRepo:    &UserRepository{db: db},
		Close:       db.Close,
	}, nil
}
