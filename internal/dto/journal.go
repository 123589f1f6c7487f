package dto

import (
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionLineRequest is one line of a journal entry request. Amounts may be sent
// as JSON numbers or strings.
type TransactionLineRequest struct {
	AccountID int64           `json:"accountId" binding:"gte=0"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryRequest is used to create or replace a journal entry.
// Blank lines (no account or no amount) are ignored.
type JournalEntryRequest struct {
	Date         string                   `json:"date" binding:"required,isodate"`
	Reference    string                   `json:"reference" binding:"max=50"`
	Description  string                   `json:"description" binding:"required"`
	Transactions []TransactionLineRequest `json:"transactions" binding:"required,dive"`
}

// ToInput converts the request into the domain input.
func (r JournalEntryRequest) ToInput() domain.JournalEntryInput {
	lines := make([]domain.TransactionLine, len(r.Transactions))
	for i, t := range r.Transactions {
		lines[i] = domain.TransactionLine{AccountID: t.AccountID, Debit: t.Debit, Credit: t.Credit}
	}
	return domain.JournalEntryInput{
		Date:         r.Date,
		Reference:    strings.TrimSpace(r.Reference),
		Description:  strings.TrimSpace(r.Description),
		Transactions: lines,
	}
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
// Without a limit every entry is returned.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps journal entries, newest first.
type ListJournalEntriesResponse struct {
	Entries   []domain.JournalEntry `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
