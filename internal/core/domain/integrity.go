package domain

import "time"

// IntegrityIssue is one finding of a ledger integrity check.
type IntegrityIssue struct {
	AccountID int64  `json:"accountId,omitempty"`
	EntryID   int64  `json:"entryId,omitempty"`
	Message   string `json:"message"`
}

// DataStatistics summarizes the size of a ledger.
type DataStatistics struct {
	AccountCount   int                 `json:"accountCount"`
	EntryCount     int                 `json:"entryCount"`
	LineCount      int                 `json:"lineCount"`
	AccountsByType map[AccountType]int `json:"accountsByType"`
	NextAccountID  int64               `json:"nextAccountId"`
	NextEntryID    int64               `json:"nextEntryId"`
	LastUpdated    *time.Time          `json:"lastUpdated"`
}

// IntegrityReport is the result of checking a stored ledger. Valid is false when
// Errors is not empty; warnings never invalidate a ledger.
type IntegrityReport struct {
	Valid      bool             `json:"valid"`
	Errors     []IntegrityIssue `json:"errors"`
	Warnings   []IntegrityIssue `json:"warnings"`
	Statistics DataStatistics   `json:"statistics"`
}

// LedgerBackup is a point-in-time copy of a ledger with its owner.
type LedgerBackup struct {
	CreatedAt    time.Time
	UserID       string
	UserEmail    string
	BusinessName string
	Data         LedgerSnapshot
}
