package repositories

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// LedgerReader loads the persisted collections of a ledger.
// A ledger that was never written loads as empty collections and zero counters.
type LedgerReader interface {
	LoadAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error)
	LoadEntries(ctx context.Context, ledgerID string) ([]domain.JournalEntry, error)
	LoadCounter(ctx context.Context, ledgerID, name string) (int64, error)
}

// LedgerWriter replaces the persisted collections of a ledger. Each call overwrites
// the whole collection.
type LedgerWriter interface {
	SaveAccounts(ctx context.Context, ledgerID string, accounts []domain.Account) error
	SaveEntries(ctx context.Context, ledgerID string, entries []domain.JournalEntry) error
	SaveCounter(ctx context.Context, ledgerID, name string, value int64) error
}

// LedgerStore is the persistence collaborator a ledger is loaded from and written to.
type LedgerStore interface {
	LedgerReader
	LedgerWriter
}

// SnapshotWriter is implemented by stores that can persist every collection of a
// ledger in a single atomic write.
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, ledgerID string, snapshot domain.LedgerSnapshot) error
}

// ChangeSubscriber is implemented by stores that can notify about writes.
// The returned function cancels the subscription.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error)
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
