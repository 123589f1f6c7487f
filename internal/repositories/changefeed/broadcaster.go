// Package changefeed fans ledger change events out to in-process subscribers.
package changefeed

import (
	"sync"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// Broadcaster delivers events synchronously to the subscribers of a ledger.
// The zero value is ready to use.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]func(domain.ChangeEvent)
}

// Subscribe registers fn for events of ledgerID and returns a function that removes it.
func (b *Broadcaster) Subscribe(ledgerID string, fn func(domain.ChangeEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[string]map[uint64]func(domain.ChangeEvent))
	}
	if b.subs[ledgerID] == nil {
		b.subs[ledgerID] = make(map[uint64]func(domain.ChangeEvent))
	}
	b.nextID++
	id := b.nextID
	b.subs[ledgerID][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[ledgerID], id)
			if len(b.subs[ledgerID]) == 0 {
				delete(b.subs, ledgerID)
			}
		})
	}
}

// Publish notifies the subscribers of ledgerID.
func (b *Broadcaster) Publish(ledgerID string, kind domain.ChangeKind) {
	b.Deliver(domain.ChangeEvent{LedgerID: ledgerID, Kind: kind, At: time.Now().UTC()})
}

// Deliver passes an already built event to the subscribers of its ledger.
func (b *Broadcaster) Deliver(event domain.ChangeEvent) {
	b.mu.RLock()
	fns := make([]func(domain.ChangeEvent), 0, len(b.subs[event.LedgerID]))
	for _, fn := range b.subs[event.LedgerID] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Subscribers returns the number of subscribers of ledgerID.
func (b *Broadcaster) Subscribers(ledgerID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ledgerID])
}
