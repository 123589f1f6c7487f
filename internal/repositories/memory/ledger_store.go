// Package memory is a process-local ledger and user store, used for development
// and tests. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/repositories/changefeed"
)

type ledgerData struct {
	accounts []domain.Account
	entries  []domain.JournalEntry
	counters map[string]int64
}

// LedgerStore keeps ledgers in memory.
type LedgerStore struct {
	mu      sync.RWMutex
	ledgers map[string]*ledgerData
	feed    changefeed.Broadcaster
}

var (
	_ portsrepo.LedgerStore      = (*LedgerStore)(nil)
	_ portsrepo.SnapshotWriter   = (*LedgerStore)(nil)
	_ portsrepo.ChangeSubscriber = (*LedgerStore)(nil)
	_ portsrepo.Pinger           = (*LedgerStore)(nil)
)

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{ledgers: make(map[string]*ledgerData)}
}

func (s *LedgerStore) ledgerLocked(ledgerID string) *ledgerData {
	d, ok := s.ledgers[ledgerID]
	if !ok {
		d = &ledgerData{counters: make(map[string]int64)}
		s.ledgers[ledgerID] = d
	}
	return d
}

func (s *LedgerStore) LoadAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.ledgers[ledgerID]; ok {
		return append([]domain.Account{}, d.accounts...), nil
	}
	return []domain.Account{}, nil
}

func (s *LedgerStore) LoadEntries(ctx context.Context, ledgerID string) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.ledgers[ledgerID]; ok {
		return cloneEntries(d.entries), nil
	}
	return []domain.JournalEntry{}, nil
}

func (s *LedgerStore) LoadCounter(ctx context.Context, ledgerID, name string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.ledgers[ledgerID]; ok {
		return d.counters[name], nil
	}
	return 0, nil
}

func (s *LedgerStore) SaveAccounts(ctx context.Context, ledgerID string, accounts []domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.ledgerLocked(ledgerID).accounts = append([]domain.Account{}, accounts...)
	s.mu.Unlock()
	s.feed.Publish(ledgerID, domain.ChangeAccounts)
	return nil
}

func (s *LedgerStore) SaveEntries(ctx context.Context, ledgerID string, entries []domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.ledgerLocked(ledgerID).entries = cloneEntries(entries)
	s.mu.Unlock()
	s.feed.Publish(ledgerID, domain.ChangeEntries)
	return nil
}

func (s *LedgerStore) SaveCounter(ctx context.Context, ledgerID, name string, value int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.ledgerLocked(ledgerID).counters[name] = value
	s.mu.Unlock()
	s.feed.Publish(ledgerID, domain.ChangeCounter)
	return nil
}

// SaveSnapshot replaces the whole ledger under a single lock.
func (s *LedgerStore) SaveSnapshot(ctx context.Context, ledgerID string, snapshot domain.LedgerSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.ledgers[ledgerID] = &ledgerData{
		accounts: append([]domain.Account{}, snapshot.Accounts...),
		entries:  cloneEntries(snapshot.Entries),
		counters: map[string]int64{
			domain.CounterNextAccountID: snapshot.NextAccountID,
			domain.CounterNextEntryID:   snapshot.NextEntryID,
		},
	}
	s.mu.Unlock()
	s.feed.Publish(ledgerID, domain.ChangeSnapshot)
	return nil
}

func (s *LedgerStore) Subscribe(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error) {
	return s.feed.Subscribe(ledgerID, fn), nil
}

func (s *LedgerStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func cloneEntries(entries []domain.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
