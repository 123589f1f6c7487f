package domain

import (
	"github.com/shopspring/decimal"
)

// NetIncomeLabel names the synthetic equity line carrying current net income.
const NetIncomeLabel = "Net Income"

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceReport lists every account with a nonzero balance split into columns.
type TrialBalanceReport struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its display amount for financial reports.
// AccountID is 0 for synthetic lines such as net income.
type AccountAmount struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

// IncomeStatementReport represents revenue, expenses and the resulting net income.
type IncomeStatementReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	Assets                    []AccountAmount `json:"assets"`
	Liabilities               []AccountAmount `json:"liabilities"`
	Equity                    []AccountAmount `json:"equity"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"` // includes net income
	NetIncome                 decimal.Decimal `json:"netIncome"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool            `json:"isBalanced"`
}

// AlertLevel mirrors the severity shown on the dashboard.
type AlertLevel string

const (
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// Alert is a ledger health warning.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// DashboardSummary aggregates headline totals, recent activity and alerts.
type DashboardSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	AccountCount     int             `json:"accountCount"`
	EntryCount       int             `json:"entryCount"`
	RecentEntries    []JournalEntry  `json:"recentEntries"`
	Alerts           []Alert         `json:"alerts"`
}
