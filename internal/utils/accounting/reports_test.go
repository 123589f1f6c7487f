package accounting_test

import (
	"testing"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialBalance(t *testing.T) {
	report := accounting.TrialBalance(sampleChart(), sampleEntries())

	require.Len(t, report.Rows, 5)
	cash := report.Rows[0]
	assert.Equal(t, "1000", cash.AccountNumber)
	assert.True(t, cash.DebitBalance.Equal(dec("1680.25")))
	assert.True(t, cash.CreditBalance.IsZero())

	loan := report.Rows[1]
	assert.True(t, loan.DebitBalance.IsZero())
	assert.True(t, loan.CreditBalance.Equal(dec("500")))

	assert.True(t, report.TotalDebits.Equal(report.TotalCredits))
	assert.True(t, report.IsBalanced)
}

func TestTrialBalance_SkipsZeroBalances(t *testing.T) {
	entries := []domain.JournalEntry{entry(1, debit(1, "50"), credit(3, "50"))}
	report := accounting.TrialBalance(sampleChart(), entries)
	assert.Len(t, report.Rows, 2)
}

func TestTrialBalance_DetectsUnbalancedLedger(t *testing.T) {
	entries := []domain.JournalEntry{entry(1, debit(1, "50"), credit(3, "40"))}
	report := accounting.TrialBalance(sampleChart(), entries)
	assert.False(t, report.IsBalanced)
}

func TestIncomeStatement(t *testing.T) {
	report := accounting.IncomeStatement(sampleChart(), sampleEntries())

	require.Len(t, report.Revenue, 1)
	assert.True(t, report.Revenue[0].Amount.Equal(dec("300.50")))
	require.Len(t, report.Expenses, 1)
	assert.True(t, report.Expenses[0].Amount.Equal(dec("120.25")))
	assert.True(t, report.TotalRevenue.Equal(dec("300.50")))
	assert.True(t, report.TotalExpenses.Equal(dec("120.25")))
	assert.True(t, report.NetIncome.Equal(dec("180.25")))
}

func TestBalanceSheet_IncludesNetIncome(t *testing.T) {
	report := accounting.BalanceSheet(sampleChart(), sampleEntries())

	require.Len(t, report.Assets, 1)
	require.Len(t, report.Liabilities, 1)
	require.Len(t, report.Equity, 2)
	netIncome := report.Equity[1]
	assert.Equal(t, domain.NetIncomeLabel, netIncome.Name)
	assert.Zero(t, netIncome.AccountID)
	assert.True(t, netIncome.Amount.Equal(dec("180.25")))

	assert.True(t, report.TotalAssets.Equal(dec("1680.25")))
	assert.True(t, report.TotalLiabilitiesAndEquity.Equal(dec("1680.25")))
	assert.True(t, report.IsBalanced)
}

func TestBalanceSheet_NetLossReducesEquity(t *testing.T) {
	entries := []domain.JournalEntry{
		entry(1, debit(1, "1000"), credit(3, "1000")),
		entry(2, debit(5, "200"), credit(1, "200")),
	}
	report := accounting.BalanceSheet(sampleChart(), entries)
	assert.True(t, report.NetIncome.Equal(dec("-200")))
	assert.True(t, report.TotalEquity.Equal(dec("800")))
	assert.True(t, report.IsBalanced)
}

func TestReports_EmptyInput(t *testing.T) {
	tb := accounting.TrialBalance(nil, nil)
	assert.Empty(t, tb.Rows)
	assert.NotNil(t, tb.Rows)
	assert.True(t, tb.TotalDebits.IsZero())

	bs := accounting.BalanceSheet(nil, nil)
	assert.Empty(t, bs.Assets)
	assert.Empty(t, bs.Equity)
	assert.True(t, bs.TotalAssets.IsZero())

	is := accounting.IncomeStatement(sampleChart(), nil)
	assert.Empty(t, is.Revenue)
	assert.True(t, is.NetIncome.IsZero())
}

func TestReports_Idempotent(t *testing.T) {
	accounts, entries := sampleChart(), sampleEntries()
	assert.Equal(t, accounting.TrialBalance(accounts, entries), accounting.TrialBalance(accounts, entries))
	assert.Equal(t, accounting.BalanceSheet(accounts, entries), accounting.BalanceSheet(accounts, entries))
	assert.Equal(t, accounting.IncomeStatement(accounts, entries), accounting.IncomeStatement(accounts, entries))
}

func TestDashboard(t *testing.T) {
	entries := append(sampleEntries(), entry(5, debit(5, "5000"), credit(1, "5000")))
	summary := accounting.Dashboard(sampleChart(), entries)

	assert.Equal(t, 5, summary.AccountCount)
	assert.Equal(t, 5, summary.EntryCount)
	require.Len(t, summary.RecentEntries, accounting.RecentEntriesLimit)
	assert.Equal(t, int64(5), summary.RecentEntries[0].ID, "newest first")
	assert.True(t, summary.TotalRevenue.Equal(dec("300.50")))

	require.Len(t, summary.Alerts, 1)
	assert.Equal(t, domain.AlertWarning, summary.Alerts[0].Level)
	assert.Equal(t, "Cash account has negative balance", summary.Alerts[0].Message)
}

func TestDashboard_OutOfBalanceAlert(t *testing.T) {
	entries := []domain.JournalEntry{entry(1, debit(1, "50"), credit(3, "10"))}
	summary := accounting.Dashboard(sampleChart(), entries)
	require.NotEmpty(t, summary.Alerts)
	assert.Equal(t, domain.AlertDanger, summary.Alerts[0].Level)
}
