package services

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/core/ledger"
)

// LedgerProviderSvc hands out the ledger owned by a user.
type LedgerProviderSvc interface {
	// Ledger returns the ledger identified by ledgerID, loading it from storage on first use.
	Ledger(ctx context.Context, ledgerID string) (*ledger.Ledger, error)
}

// LedgerMaintenanceSvc replaces or empties whole ledgers.
type LedgerMaintenanceSvc interface {
	// LoadDemoData replaces the ledger with the demo restaurant books.
	// It returns the number of accounts and entries loaded.
	LoadDemoData(ctx context.Context, ledgerID string) (int, int, error)

	// ClearLedger removes every account and entry and resets the id counters.
	// It returns the number of accounts and entries removed.
	ClearLedger(ctx context.Context, ledgerID string) (int, int, error)
}

// LedgerDataSvc exports and inspects the stored data of a ledger.
type LedgerDataSvc interface {
	// Backup returns a consistent copy of the ledger with its owner's details.
	Backup(ctx context.Context, ledgerID string) (*domain.LedgerBackup, error)

	// CheckIntegrity inspects the stored ledger for dangling account references,
	// unbalanced entries, duplicate ids and stale counters.
	CheckIntegrity(ctx context.Context, ledgerID string) (*domain.IntegrityReport, error)
}

// LedgerEventsSvc streams storage change events.
type LedgerEventsSvc interface {
	// SubscribeChanges calls fn for every change persisted to the ledger until the
	// returned cancel function is called. It fails with ErrUnsupported when the
	// storage backend cannot publish changes.
	SubscribeChanges(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error)

	// Ping checks that the storage backend is reachable.
	Ping(ctx context.Context) error
}

// LedgerSvcFacade combines all ledger-level service interfaces
type LedgerSvcFacade interface {
	LedgerProviderSvc
	LedgerMaintenanceSvc
	LedgerDataSvc
	LedgerEventsSvc
}
