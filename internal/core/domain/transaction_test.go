package domain_test

import (
	"testing"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(accountID int64, debit, credit int64) domain.TransactionLine {
	return domain.TransactionLine{
		AccountID: accountID,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func TestTransactionLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.TransactionLine
		wantErr bool
	}{
		{name: "debit only", line: line(1, 100, 0)},
		{name: "credit only", line: line(1, 0, 100)},
		{name: "blank line", line: line(0, 0, 0)},
		{name: "both sides", line: line(1, 50, 50), wantErr: true},
		{name: "negative debit", line: line(1, -5, 0), wantErr: true},
		{name: "negative credit", line: line(1, 0, -5), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionLine_IsActive(t *testing.T) {
	assert.True(t, line(3, 10, 0).IsActive())
	assert.True(t, line(3, 0, 10).IsActive())
	assert.False(t, line(0, 10, 0).IsActive(), "no account selected")
	assert.False(t, line(3, 0, 0).IsActive(), "no amount")
}

func TestTransactionLine_Amount(t *testing.T) {
	assert.True(t, line(1, 100, 0).Amount().Equal(decimal.NewFromInt(100)))
	assert.True(t, line(1, 0, 40).Amount().Equal(decimal.NewFromInt(-40)))
}

func TestJournalEntryInput_Normalize(t *testing.T) {
	valid := []domain.TransactionLine{line(1, 1000, 0), line(2, 0, 1000)}

	t.Run("drops blank lines", func(t *testing.T) {
		in := domain.JournalEntryInput{
			Date:         "2024-01-01",
			Description:  "Investment",
			Transactions: append(append([]domain.TransactionLine{}, valid...), line(0, 0, 0)),
		}
		date, lines, err := in.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", date)
		assert.Len(t, lines, 2)
	})

	t.Run("accepts timestamps", func(t *testing.T) {
		in := domain.JournalEntryInput{Date: "2024-03-05T10:00:00Z", Description: "x", Transactions: valid}
		date, _, err := in.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "2024-03-05", date)
	})

	failures := map[string]domain.JournalEntryInput{
		"missing date":        {Description: "x", Transactions: valid},
		"bad date":            {Date: "01/02/2024", Description: "x", Transactions: valid},
		"missing description": {Date: "2024-01-01", Description: "  ", Transactions: valid},
		"one active line":     {Date: "2024-01-01", Description: "x", Transactions: []domain.TransactionLine{line(1, 10, 0), line(2, 0, 0)}},
		"both sides on line":  {Date: "2024-01-01", Description: "x", Transactions: []domain.TransactionLine{line(1, 10, 10), line(2, 0, 0)}},
	}
	for name, in := range failures {
		t.Run(name, func(t *testing.T) {
			_, _, err := in.Normalize()
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestJournalEntry_ReferencesAndClone(t *testing.T) {
	entry := domain.JournalEntry{ID: 1, Transactions: []domain.TransactionLine{line(1, 5, 0), line(2, 0, 5)}}
	assert.True(t, entry.References(2))
	assert.False(t, entry.References(3))

	clone := entry.Clone()
	clone.Transactions[0].AccountID = 9
	assert.Equal(t, int64(1), entry.Transactions[0].AccountID)
}

func TestParseAccountType(t *testing.T) {
	got, ok := domain.ParseAccountType(" revenue ")
	assert.True(t, ok)
	assert.Equal(t, domain.Revenue, got)

	_, ok = domain.ParseAccountType("Income")
	assert.False(t, ok)

	assert.True(t, domain.Expense.IsValid())
	assert.False(t, domain.AccountType("expense").IsValid())
}
