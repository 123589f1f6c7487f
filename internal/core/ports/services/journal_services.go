package services

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetJournalEntryByID(ctx context.Context, ledgerID string, entryID int64) (*domain.JournalEntry, error)

	// ListJournalEntries returns entries newest first, optionally one page at a time.
	ListJournalEntries(ctx context.Context, ledgerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	CreateJournalEntry(ctx context.Context, ledgerID string, req dto.JournalEntryRequest) (*domain.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, ledgerID string, entryID int64, req dto.JournalEntryRequest) (*domain.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, ledgerID string, entryID int64) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
