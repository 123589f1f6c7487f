package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(accounts []domain.Account, entries []domain.JournalEntry) domain.LedgerSnapshot {
	return domain.LedgerSnapshot{
		Accounts:      accounts,
		Entries:       entries,
		NextAccountID: int64(len(accounts) + 1),
		NextEntryID:   int64(len(entries) + 1),
	}
}

func messages(issues []domain.IntegrityIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Message
	}
	return out
}

func TestCheckIntegrity_Clean(t *testing.T) {
	report := accounting.CheckIntegrity(snapshotOf(sampleChart(), sampleEntries()))

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 5, report.Statistics.AccountCount)
	assert.Equal(t, 4, report.Statistics.EntryCount)
	assert.Equal(t, 8, report.Statistics.LineCount)
	assert.Equal(t, 1, report.Statistics.AccountsByType[domain.Revenue])
}

func TestCheckIntegrity_EmptyLedger(t *testing.T) {
	report := accounting.CheckIntegrity(domain.LedgerSnapshot{})

	assert.True(t, report.Valid)
	assert.Equal(t, []string{"No accounting data found"}, messages(report.Warnings))
	assert.Nil(t, report.Statistics.LastUpdated)
	assert.Len(t, report.Statistics.AccountsByType, len(domain.AccountTypeOrder))
}

func TestCheckIntegrity_DanglingAccount(t *testing.T) {
	entries := []domain.JournalEntry{entry(1, debit(1, "10"), credit(42, "10"))}
	report := accounting.CheckIntegrity(snapshotOf(sampleChart(), entries))

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, int64(1), report.Errors[0].EntryID)
	assert.Equal(t, int64(42), report.Errors[0].AccountID)
	assert.Equal(t, "Journal entry 1 references missing account 42", report.Errors[0].Message)
}

func TestCheckIntegrity_Balance(t *testing.T) {
	entries := []domain.JournalEntry{
		entry(1, debit(1, "100"), credit(3, "90")),
		entry(2, debit(1, "100.01"), credit(3, "100")),
	}
	report := accounting.CheckIntegrity(snapshotOf(sampleChart(), entries))

	assert.False(t, report.Valid)
	assert.Equal(t, []string{"Journal entry 1 is unbalanced: debits 100.00, credits 90.00"}, messages(report.Errors))
	assert.Equal(t, []string{"Journal entry 2 differs by 0.01 between debits and credits"}, messages(report.Warnings))
}

func TestCheckIntegrity_MalformedRecords(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, Number: "1000", Name: "Cash", Type: domain.Asset},
		{ID: 2, Number: "1000", Name: "Petty Cash", Type: domain.Asset},
		{ID: 3, Number: "9000", Name: "", Type: "Mystery"},
	}
	bothSides := debit(1, "5")
	bothSides.Credit = dec("5")
	entries := []domain.JournalEntry{
		{ID: 1, Date: "01/02/2024", Description: "bad date", Transactions: []domain.TransactionLine{debit(1, "5"), credit(2, "5")}},
		{ID: 1, Date: "2024-01-02", Description: "", Transactions: []domain.TransactionLine{bothSides, credit(2, "0")}},
	}
	report := accounting.CheckIntegrity(domain.LedgerSnapshot{Accounts: accounts, Entries: entries, NextAccountID: 3, NextEntryID: 2})

	assert.False(t, report.Valid)
	assert.ElementsMatch(t, []string{
		"Account number 1000 is shared by accounts 1 and 2",
		"Account 3 is missing required fields",
		"Journal entry 1 has invalid date \"01/02/2024\"",
		"Journal entry 1 is missing required fields",
		"Journal entry id 1 is used more than once",
		"Journal entry 1 line 1 is invalid",
		"Next account id 3 does not exceed the highest account id 3",
	}, messages(report.Errors))
}

func TestStatistics_LastUpdated(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	e := entry(1, debit(1, "1"), credit(3, "1"))
	e.CreatedAt = early
	e.UpdatedAt = &late
	accounts := sampleChart()
	accounts[0].CreatedAt = early

	stats := accounting.Statistics(snapshotOf(accounts, []domain.JournalEntry{e}))

	require.NotNil(t, stats.LastUpdated)
	assert.Equal(t, late, *stats.LastUpdated)
	assert.Equal(t, int64(6), stats.NextAccountID)
}
