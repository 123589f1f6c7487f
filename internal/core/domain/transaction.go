package domain

import (
	"fmt"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionLine is one debit or credit posting inside a journal entry.
// It has no identity of its own.
type TransactionLine struct {
	AccountID int64           `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// IsActive reports whether the line selects an account and carries an amount.
func (l TransactionLine) IsActive() bool {
	return l.AccountID != 0 && (l.Debit.IsPositive() || l.Credit.IsPositive())
}

// Validate checks a single line. Amounts must be non-negative and at most one side
// may be nonzero.
func (l TransactionLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: debit and credit must not be negative", apperrors.ErrValidation)
	}
	if l.Debit.IsPositive() && l.Credit.IsPositive() {
		return fmt.Errorf("%w: a line may carry a debit or a credit, not both", apperrors.ErrValidation)
	}
	if l.AccountID < 0 {
		return fmt.Errorf("%w: invalid account id %d", apperrors.ErrValidation, l.AccountID)
	}
	return nil
}

// Amount returns the signed effect of the line on its account balance.
func (l TransactionLine) Amount() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
