package domain

import "time"

// Counter names under which a ledger's id counters are persisted.
const (
	CounterNextAccountID = "nextAccountId"
	CounterNextEntryID   = "nextEntryId"
)

// LedgerSnapshot is the full persisted state of one ledger.
type LedgerSnapshot struct {
	Accounts      []Account
	Entries       []JournalEntry
	NextAccountID int64
	NextEntryID   int64
}

// ChangeKind names the collection a change event refers to.
type ChangeKind string

const (
	ChangeAccounts ChangeKind = "accounts"
	ChangeEntries  ChangeKind = "entries"
	ChangeCounter  ChangeKind = "counter"
	ChangeSnapshot ChangeKind = "snapshot"
)

// ChangeEvent is published by stores that support change subscriptions.
type ChangeEvent struct {
	LedgerID string     `json:"ledgerId"`
	Kind     ChangeKind `json:"kind"`
	At       time.Time  `json:"at"`
}
