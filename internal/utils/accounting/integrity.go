package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// CheckIntegrity inspects a stored ledger for problems the write path would have
// rejected. Such data can only appear through imports or edits made outside the
// service, so every problem is reported instead of stopping at the first one.
func CheckIntegrity(snapshot domain.LedgerSnapshot) domain.IntegrityReport {
	report := domain.IntegrityReport{
		Errors:     []domain.IntegrityIssue{},
		Warnings:   []domain.IntegrityIssue{},
		Statistics: Statistics(snapshot),
	}
	fail := func(issue domain.IntegrityIssue) { report.Errors = append(report.Errors, issue) }
	warn := func(issue domain.IntegrityIssue) { report.Warnings = append(report.Warnings, issue) }

	if len(snapshot.Accounts) == 0 && len(snapshot.Entries) == 0 {
		warn(domain.IntegrityIssue{Message: "No accounting data found"})
	}

	known := make(map[int64]struct{}, len(snapshot.Accounts))
	numbers := make(map[string]int64, len(snapshot.Accounts))
	var maxAccountID int64
	for _, acc := range snapshot.Accounts {
		if acc.ID <= 0 || strings.TrimSpace(acc.Number) == "" || strings.TrimSpace(acc.Name) == "" || !acc.Type.IsValid() {
			fail(domain.IntegrityIssue{AccountID: acc.ID, Message: fmt.Sprintf("Account %d is missing required fields", acc.ID)})
		}
		if _, dup := known[acc.ID]; dup {
			fail(domain.IntegrityIssue{AccountID: acc.ID, Message: fmt.Sprintf("Account id %d is used more than once", acc.ID)})
		}
		known[acc.ID] = struct{}{}
		if other, dup := numbers[acc.Number]; dup && acc.Number != "" {
			fail(domain.IntegrityIssue{AccountID: acc.ID, Message: fmt.Sprintf("Account number %s is shared by accounts %d and %d", acc.Number, other, acc.ID)})
		} else {
			numbers[acc.Number] = acc.ID
		}
		maxAccountID = max(maxAccountID, acc.ID)
	}

	entryIDs := make(map[int64]struct{}, len(snapshot.Entries))
	var maxEntryID int64
	for _, entry := range snapshot.Entries {
		if entry.ID <= 0 || strings.TrimSpace(entry.Description) == "" || len(entry.Transactions) < domain.MinEntryLines {
			fail(domain.IntegrityIssue{EntryID: entry.ID, Message: fmt.Sprintf("Journal entry %d is missing required fields", entry.ID)})
		}
		if _, err := time.Parse(domain.DateLayout, entry.Date); err != nil {
			fail(domain.IntegrityIssue{EntryID: entry.ID, Message: fmt.Sprintf("Journal entry %d has invalid date %q", entry.ID, entry.Date)})
		}
		if _, dup := entryIDs[entry.ID]; dup {
			fail(domain.IntegrityIssue{EntryID: entry.ID, Message: fmt.Sprintf("Journal entry id %d is used more than once", entry.ID)})
		}
		entryIDs[entry.ID] = struct{}{}
		maxEntryID = max(maxEntryID, entry.ID)

		for i, line := range entry.Transactions {
			if err := line.Validate(); err != nil {
				fail(domain.IntegrityIssue{EntryID: entry.ID, Message: fmt.Sprintf("Journal entry %d line %d is invalid", entry.ID, i+1)})
			}
			if _, ok := known[line.AccountID]; !ok {
				fail(domain.IntegrityIssue{
					EntryID:   entry.ID,
					AccountID: line.AccountID,
					Message:   fmt.Sprintf("Journal entry %d references missing account %d", entry.ID, line.AccountID),
				})
			}
		}

		debits, credits := TotalDebitsCredits(entry.Transactions)
		switch {
		case !WithinTolerance(debits, credits):
			fail(domain.IntegrityIssue{EntryID: entry.ID, Message: fmt.Sprintf("Journal entry %d is unbalanced: debits %s, credits %s",
				entry.ID, debits.StringFixed(2), credits.StringFixed(2))})
		case !debits.Equal(credits):
			warn(domain.IntegrityIssue{EntryID: entry.ID, Message: fmt.Sprintf("Journal entry %d differs by %s between debits and credits",
				entry.ID, debits.Sub(credits).Abs().String())})
		}
	}

	if maxAccountID > 0 && snapshot.NextAccountID <= maxAccountID {
		fail(domain.IntegrityIssue{Message: fmt.Sprintf("Next account id %d does not exceed the highest account id %d", snapshot.NextAccountID, maxAccountID)})
	}
	if maxEntryID > 0 && snapshot.NextEntryID <= maxEntryID {
		fail(domain.IntegrityIssue{Message: fmt.Sprintf("Next entry id %d does not exceed the highest entry id %d", snapshot.NextEntryID, maxEntryID)})
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// Statistics counts the contents of a ledger and finds its latest modification.
func Statistics(snapshot domain.LedgerSnapshot) domain.DataStatistics {
	stats := domain.DataStatistics{
		AccountCount:   len(snapshot.Accounts),
		EntryCount:     len(snapshot.Entries),
		AccountsByType: make(map[domain.AccountType]int, len(domain.AccountTypeOrder)),
		NextAccountID:  snapshot.NextAccountID,
		NextEntryID:    snapshot.NextEntryID,
	}
	for _, t := range domain.AccountTypeOrder {
		stats.AccountsByType[t] = 0
	}

	var latest time.Time
	touch := func(t time.Time) {
		if t.After(latest) {
			latest = t
		}
	}
	for _, acc := range snapshot.Accounts {
		if acc.Type.IsValid() {
			stats.AccountsByType[acc.Type]++
		}
		touch(acc.CreatedAt)
		touch(acc.UpdatedAt)
	}
	for _, entry := range snapshot.Entries {
		stats.LineCount += len(entry.Transactions)
		touch(entry.CreatedAt)
		if entry.UpdatedAt != nil {
			touch(*entry.UpdatedAt)
		}
	}
	if !latest.IsZero() {
		stats.LastUpdated = &latest
	}
	return stats
}
