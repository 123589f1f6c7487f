package dto

import (
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by actions that have nothing else to report.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LedgerResetResponse reports how much a demo load or clear replaced.
type LedgerResetResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Accounts int    `json:"accounts"`
	Entries  int    `json:"entries"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// LedgerBackupData holds the collections of a backup.
type LedgerBackupData struct {
	Accounts       []domain.Account      `json:"accounts"`
	JournalEntries []domain.JournalEntry `json:"journalEntries"`
	NextAccountID  int64                 `json:"nextAccountId"`
	NextEntryID    int64                 `json:"nextEntryId"`
}

// LedgerBackupResponse is a downloadable copy of the caller's ledger.
type LedgerBackupResponse struct {
	CreatedAt    time.Time        `json:"createdAt"`
	UserID       string           `json:"userId"`
	UserEmail    string           `json:"userEmail,omitempty"`
	BusinessName string           `json:"businessName,omitempty"`
	Data         LedgerBackupData `json:"data"`
}

// ToLedgerBackupResponse converts a domain backup to its wire shape.
func ToLedgerBackupResponse(b *domain.LedgerBackup) LedgerBackupResponse {
	data := LedgerBackupData{
		Accounts:       b.Data.Accounts,
		JournalEntries: b.Data.Entries,
		NextAccountID:  b.Data.NextAccountID,
		NextEntryID:    b.Data.NextEntryID,
	}
	if data.Accounts == nil {
		data.Accounts = []domain.Account{}
	}
	if data.JournalEntries == nil {
		data.JournalEntries = []domain.JournalEntry{}
	}
	return LedgerBackupResponse{
		CreatedAt:    b.CreatedAt,
		UserID:       b.UserID,
		UserEmail:    b.UserEmail,
		BusinessName: b.BusinessName,
		Data:         data,
	}
}
