// Package ledger holds the in-memory state of one ledger and keeps it in step with
// its store. Every mutation is applied in memory first and then persisted; when the
// write fails the in-memory change is rolled back and the caller sees ErrStorage.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
)

type section uint8

const (
	sectionAccounts section = 1 << iota
	sectionEntries
	sectionAccountCounter
	sectionEntryCounter

	sectionAll = sectionAccounts | sectionEntries | sectionAccountCounter | sectionEntryCounter
)

// Ledger is one user's chart of accounts and journal.
type Ledger struct {
	id    string
	store portsrepo.LedgerStore
	now   func() time.Time

	mu            sync.RWMutex
	accounts      []domain.Account // sorted by number
	entries       []domain.JournalEntry
	nextAccountID int64
	nextEntryID   int64

	Registry *Registry
	Journal  *Journal
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Load reads the ledger identified by id from store.
func Load(ctx context.Context, id string, store portsrepo.LedgerStore, opts ...Option) (*Ledger, error) {
	accounts, err := store.LoadAccounts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: loading accounts of ledger %s: %w", apperrors.ErrStorage, id, err)
	}
	entries, err := store.LoadEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: loading entries of ledger %s: %w", apperrors.ErrStorage, id, err)
	}
	nextAccountID, err := store.LoadCounter(ctx, id, domain.CounterNextAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading account counter of ledger %s: %w", apperrors.ErrStorage, id, err)
	}
	nextEntryID, err := store.LoadCounter(ctx, id, domain.CounterNextEntryID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading entry counter of ledger %s: %w", apperrors.ErrStorage, id, err)
	}

	l := &Ledger{id: id, store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	l.Registry = &Registry{l: l}
	l.Journal = &Journal{l: l}
	l.restoreLocked(domain.LedgerSnapshot{
		Accounts:      accounts,
		Entries:       entries,
		NextAccountID: nextAccountID,
		NextEntryID:   nextEntryID,
	})
	return l, nil
}

// ID returns the ledger identifier.
func (l *Ledger) ID() string {
	return l.id
}

// Store returns the store the ledger persists to.
func (l *Ledger) Store() portsrepo.LedgerStore {
	return l.store
}

// Snapshot returns a consistent copy of the whole ledger.
func (l *Ledger) Snapshot() domain.LedgerSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Replace swaps the whole ledger for snapshot and persists it.
// Counters lower than what the snapshot's ids require are raised.
func (l *Ledger) Replace(ctx context.Context, snapshot domain.LedgerSnapshot) error {
	for _, acc := range snapshot.Accounts {
		if !acc.Type.IsValid() {
			return fmt.Errorf("%w: account %s has unknown type %q", apperrors.ErrValidation, acc.Number, acc.Type)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.snapshotLocked()
	l.restoreLocked(cloneSnapshot(snapshot))
	return l.commit(ctx, before, sectionAll)
}

// Clear removes every account and entry and resets both counters.
// It returns how many accounts and entries were removed.
func (l *Ledger) Clear(ctx context.Context) (int, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.snapshotLocked()
	l.restoreLocked(domain.LedgerSnapshot{})
	if err := l.commit(ctx, before, sectionAll); err != nil {
		return 0, 0, err
	}
	return len(before.Accounts), len(before.Entries), nil
}

func (l *Ledger) snapshotLocked() domain.LedgerSnapshot {
	return cloneSnapshot(domain.LedgerSnapshot{
		Accounts:      l.accounts,
		Entries:       l.entries,
		NextAccountID: l.nextAccountID,
		NextEntryID:   l.nextEntryID,
	})
}

// restoreLocked installs snapshot as the current state, taking ownership of its slices.
func (l *Ledger) restoreLocked(snapshot domain.LedgerSnapshot) {
	l.accounts = snapshot.Accounts
	if l.accounts == nil {
		l.accounts = []domain.Account{}
	}
	accounting.SortAccounts(l.accounts)

	l.entries = snapshot.Entries
	if l.entries == nil {
		l.entries = []domain.JournalEntry{}
	}
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].ID < l.entries[j].ID
	})

	l.nextAccountID = max(snapshot.NextAccountID, 1)
	for _, acc := range l.accounts {
		l.nextAccountID = max(l.nextAccountID, acc.ID+1)
	}
	l.nextEntryID = max(snapshot.NextEntryID, 1)
	for _, e := range l.entries {
		l.nextEntryID = max(l.nextEntryID, e.ID+1)
	}
}

// commit persists the given sections of the current state. On failure the state
// captured in before is restored and, when the store could have been left
// half-written, the previous state is written back on a best-effort basis.
func (l *Ledger) commit(ctx context.Context, before domain.LedgerSnapshot, sections section) error {
	err := l.write(ctx, l.snapshotLocked(), sections)
	if err == nil {
		return nil
	}
	l.restoreLocked(cloneSnapshot(before))
	if _, atomic := l.store.(portsrepo.SnapshotWriter); !atomic && !single(sections) {
		_ = l.write(context.WithoutCancel(ctx), before, sections)
	}
	return fmt.Errorf("%w: ledger %s: %w", apperrors.ErrStorage, l.id, err)
}

func (l *Ledger) write(ctx context.Context, snapshot domain.LedgerSnapshot, sections section) error {
	if !single(sections) {
		if sw, ok := l.store.(portsrepo.SnapshotWriter); ok {
			return sw.SaveSnapshot(ctx, l.id, snapshot)
		}
	}
	if sections&sectionEntries != 0 {
		if err := l.store.SaveEntries(ctx, l.id, snapshot.Entries); err != nil {
			return err
		}
	}
	if sections&sectionAccounts != 0 {
		if err := l.store.SaveAccounts(ctx, l.id, snapshot.Accounts); err != nil {
			return err
		}
	}
	if sections&sectionAccountCounter != 0 {
		if err := l.store.SaveCounter(ctx, l.id, domain.CounterNextAccountID, snapshot.NextAccountID); err != nil {
			return err
		}
	}
	if sections&sectionEntryCounter != 0 {
		if err := l.store.SaveCounter(ctx, l.id, domain.CounterNextEntryID, snapshot.NextEntryID); err != nil {
			return err
		}
	}
	return nil
}

func single(s section) bool {
	return s != 0 && s&(s-1) == 0
}

func cloneSnapshot(s domain.LedgerSnapshot) domain.LedgerSnapshot {
	out := domain.LedgerSnapshot{
		Accounts:      append([]domain.Account{}, s.Accounts...),
		Entries:       make([]domain.JournalEntry, len(s.Entries)),
		NextAccountID: s.NextAccountID,
		NextEntryID:   s.NextEntryID,
	}
	for i, e := range s.Entries {
		out.Entries[i] = e.Clone()
	}
	return out
}
