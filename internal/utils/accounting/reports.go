package accounting

import (
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecentEntriesLimit is how many entries the dashboard shows.
const RecentEntriesLimit = 5

// TrialBalance splits each account balance into a debit or credit column.
// Only accounts with a nonzero balance produce a row.
func TrialBalance(accounts []domain.Account, entries []domain.JournalEntry) domain.TrialBalanceReport {
	balances := ComputeBalances(accounts, entries)

	report := domain.TrialBalanceReport{
		Rows:         []domain.TrialBalanceRow{},
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, acc := range accounts {
		balance := AccountBalance(balances, acc.ID)
		if balance.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:     acc.ID,
			AccountNumber: acc.Number,
			AccountName:   acc.Name,
			AccountType:   acc.Type,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}
		if balance.IsPositive() {
			row.DebitBalance = balance
		} else {
			row.CreditBalance = balance.Abs()
		}
		report.TotalDebits = report.TotalDebits.Add(row.DebitBalance)
		report.TotalCredits = report.TotalCredits.Add(row.CreditBalance)
		report.Rows = append(report.Rows, row)
	}
	report.IsBalanced = WithinTolerance(report.TotalDebits, report.TotalCredits)
	return report
}

// IncomeStatement reports revenue (shown as absolute balance) against expenses (raw balance).
func IncomeStatement(accounts []domain.Account, entries []domain.JournalEntry) domain.IncomeStatementReport {
	return incomeStatement(accounts, ComputeBalances(accounts, entries))
}

func incomeStatement(accounts []domain.Account, balances Balances) domain.IncomeStatementReport {
	report := domain.IncomeStatementReport{
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, acc := range accounts {
		balance := AccountBalance(balances, acc.ID)
		if balance.IsZero() {
			continue
		}
		switch acc.Type {
		case domain.Revenue:
			amount := balance.Abs()
			report.TotalRevenue = report.TotalRevenue.Add(amount)
			report.Revenue = append(report.Revenue, lineFor(acc, amount))
		case domain.Expense:
			report.TotalExpenses = report.TotalExpenses.Add(balance)
			report.Expenses = append(report.Expenses, lineFor(acc, balance))
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report
}

// BalanceSheet reports assets at their raw balance and liabilities and equity at their
// absolute balance. Current net income is appended to equity as a synthetic line.
func BalanceSheet(accounts []domain.Account, entries []domain.JournalEntry) domain.BalanceSheetReport {
	balances := ComputeBalances(accounts, entries)

	report := domain.BalanceSheetReport{
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, acc := range accounts {
		balance := AccountBalance(balances, acc.ID)
		if balance.IsZero() {
			continue
		}
		switch acc.Type {
		case domain.Asset:
			report.TotalAssets = report.TotalAssets.Add(balance)
			report.Assets = append(report.Assets, lineFor(acc, balance))
		case domain.Liability:
			report.TotalLiabilities = report.TotalLiabilities.Add(balance.Abs())
			report.Liabilities = append(report.Liabilities, lineFor(acc, balance.Abs()))
		case domain.Equity:
			report.TotalEquity = report.TotalEquity.Add(balance.Abs())
			report.Equity = append(report.Equity, lineFor(acc, balance.Abs()))
		}
	}

	report.NetIncome = incomeStatement(accounts, balances).NetIncome
	if !report.NetIncome.IsZero() {
		report.TotalEquity = report.TotalEquity.Add(report.NetIncome)
		report.Equity = append(report.Equity, domain.AccountAmount{Name: domain.NetIncomeLabel, Amount: report.NetIncome})
	}
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)
	report.IsBalanced = WithinTolerance(report.TotalAssets, report.TotalLiabilitiesAndEquity)
	return report
}

// Dashboard builds the headline summary. entries must be in insertion order.
func Dashboard(accounts []domain.Account, entries []domain.JournalEntry) domain.DashboardSummary {
	balances := ComputeBalances(accounts, entries)
	summary := domain.DashboardSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		AccountCount:     len(accounts),
		EntryCount:       len(entries),
		RecentEntries:    []domain.JournalEntry{},
		Alerts:           []domain.Alert{},
	}

	for _, acc := range accounts {
		balance := AccountBalance(balances, acc.ID)
		switch acc.Type {
		case domain.Asset:
			summary.TotalAssets = summary.TotalAssets.Add(balance)
		case domain.Liability:
			summary.TotalLiabilities = summary.TotalLiabilities.Add(balance.Abs())
		case domain.Equity:
			summary.TotalEquity = summary.TotalEquity.Add(balance.Abs())
		case domain.Revenue:
			summary.TotalRevenue = summary.TotalRevenue.Add(balance.Abs())
		case domain.Expense:
			summary.TotalExpenses = summary.TotalExpenses.Add(balance)
		}
	}
	summary.NetIncome = summary.TotalRevenue.Sub(summary.TotalExpenses)

	for i := len(entries) - 1; i >= 0 && len(summary.RecentEntries) < RecentEntriesLimit; i-- {
		summary.RecentEntries = append(summary.RecentEntries, entries[i].Clone())
	}

	if !TrialBalance(accounts, entries).IsBalanced {
		summary.Alerts = append(summary.Alerts, domain.Alert{Level: domain.AlertDanger, Message: "Trial balance is out of balance!"})
	}
	for _, acc := range accounts {
		if !strings.Contains(strings.ToLower(acc.Name), "cash") {
			continue
		}
		if AccountBalance(balances, acc.ID).IsNegative() {
			summary.Alerts = append(summary.Alerts, domain.Alert{Level: domain.AlertWarning, Message: "Cash account has negative balance"})
		}
		break
	}
	return summary
}

func lineFor(acc domain.Account, amount decimal.Decimal) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID:     acc.ID,
		AccountNumber: acc.Number,
		Name:          acc.Name,
		Amount:        amount,
	}
}
