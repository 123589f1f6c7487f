package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/utils/pagination"
)

type journalService struct {
	BaseService
	ledgers portssvc.LedgerProviderSvc
}

// NewJournalService creates a new journal service working on the ledgers handed out by ledgers.
func NewJournalService(ledgers portssvc.LedgerProviderSvc, storageTimeout time.Duration) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{StorageTimeout: storageTimeout},
		ledgers:     ledgers,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournalEntry(ctx context.Context, ledgerID string, req dto.JournalEntryRequest) (*domain.JournalEntry, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	entry, err := l.Journal.Create(writeCtx, req.ToInput())
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create journal entry",
			slog.String("ledger_id", ledgerID),
			slog.String("reference", req.Reference))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.Int64("journal_id", entry.ID),
		slog.Int("lines", len(entry.Transactions)))
	return &entry, nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, ledgerID string, entryID int64) (*domain.JournalEntry, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	entry, err := l.Journal.Get(entryID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, ledgerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	before, err := pagination.DecodeCursor(params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	entries, hasMore := l.Journal.ListPage(params.Limit, before)
	resp := &dto.ListJournalEntriesResponse{Entries: entries}
	if hasMore && len(entries) > 0 {
		token := pagination.EncodeCursor(entries[len(entries)-1].ID)
		resp.NextToken = &token
	}
	return resp, nil
}

func (s *journalService) UpdateJournalEntry(ctx context.Context, ledgerID string, entryID int64, req dto.JournalEntryRequest) (*domain.JournalEntry, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	entry, err := l.Journal.Update(writeCtx, entryID, req.ToInput())
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update journal entry", slog.Int64("journal_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated successfully", slog.Int64("journal_id", entryID))
	return &entry, nil
}

func (s *journalService) DeleteJournalEntry(ctx context.Context, ledgerID string, entryID int64) error {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return err
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	if err := l.Journal.Delete(writeCtx, entryID); err != nil {
		s.LogFailure(ctx, err, "Failed to delete journal entry", slog.Int64("journal_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted successfully", slog.Int64("journal_id", entryID))
	return nil
}
