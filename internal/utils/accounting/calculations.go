package accounting

import (
	"fmt"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the largest difference treated as equal when comparing debit and credit totals.
var Tolerance = decimal.RequireFromString("0.01")

// Balances maps an account ID to its signed debit-minus-credit balance.
type Balances map[int64]decimal.Decimal

// ComputeBalances folds every transaction line into per-account balances.
// Every known account starts at zero. Lines pointing at unknown accounts still get a
// balance so a dangling reference never breaks the fold. The result does not depend on
// entry order.
func ComputeBalances(accounts []domain.Account, entries []domain.JournalEntry) Balances {
	balances := make(Balances, len(accounts))
	for _, acc := range accounts {
		balances[acc.ID] = decimal.Zero
	}
	for _, entry := range entries {
		for _, line := range entry.Transactions {
			balances[line.AccountID] = balances[line.AccountID].Add(line.Amount())
		}
	}
	return balances
}

// AccountBalance returns the balance of one account, zero when unknown.
func AccountBalance(balances Balances, accountID int64) decimal.Decimal {
	if b, ok := balances[accountID]; ok {
		return b
	}
	return decimal.Zero
}

// SumBalances adds all balances. A ledger of exactly balanced entries sums to zero.
// Entries accepted within Tolerance keep their residual, so the sum can be off by up
// to Tolerance per such entry.
func SumBalances(balances Balances) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}
	return sum
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// TotalDebitsCredits sums both sides of the given lines.
func TotalDebitsCredits(lines []domain.TransactionLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateJournalBalance checks that the lines of one entry balance within tolerance.
func ValidateJournalBalance(lines []domain.TransactionLine) error {
	debits, credits := TotalDebitsCredits(lines)
	if !WithinTolerance(debits, credits) {
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}
