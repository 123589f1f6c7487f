package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
)

// DateLayout is the calendar date format entries are stored with.
const DateLayout = "2006-01-02"

// MinEntryLines is the minimum number of active lines a journal entry needs.
const MinEntryLines = 2

// JournalEntry is a dated, described group of transaction lines recorded together.
type JournalEntry struct {
	ID           int64             `json:"id"`
	Date         string            `json:"date"`
	Reference    string            `json:"reference"`
	Description  string            `json:"description"`
	Transactions []TransactionLine `json:"transactions"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    *time.Time        `json:"updatedAt,omitempty"`
}

// References reports whether any line of the entry posts to accountID.
func (e JournalEntry) References(accountID int64) bool {
	for _, line := range e.Transactions {
		if line.AccountID == accountID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with e.
func (e JournalEntry) Clone() JournalEntry {
	c := e
	c.Transactions = append([]TransactionLine(nil), e.Transactions...)
	if e.UpdatedAt != nil {
		t := *e.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}

// JournalEntryInput is the user-supplied part of a journal entry, used for create and update.
type JournalEntryInput struct {
	Date         string
	Reference    string
	Description  string
	Transactions []TransactionLine
}

// Normalize validates the input and returns the canonical date and the active lines.
// Lines without an account or without an amount are dropped, matching how the entry
// form ignores blank rows. Balance is not checked here.
func (in JournalEntryInput) Normalize() (string, []TransactionLine, error) {
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return "", nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	active := make([]TransactionLine, 0, len(in.Transactions))
	for i, line := range in.Transactions {
		if err := line.Validate(); err != nil {
			return "", nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if line.IsActive() {
			active = append(active, line)
		}
	}
	if len(active) < MinEntryLines {
		return "", nil, fmt.Errorf("%w: at least %d transaction lines with an account and an amount are required", apperrors.ErrValidation, MinEntryLines)
	}
	return date, active, nil
}

// NormalizeDate accepts a calendar date or an RFC 3339 timestamp and returns YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("%w: date %q is not an ISO 8601 date", apperrors.ErrValidation, s)
}
