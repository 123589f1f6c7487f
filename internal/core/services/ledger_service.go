package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/seed"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
)

// ledgerService keeps one loaded ledger per user.
type ledgerService struct {
	BaseService
	store  portsrepo.LedgerStore
	owners portsrepo.UserReader
	now    func() time.Time

	mu    sync.Mutex
	slots map[string]*ledgerSlot
}

type ledgerSlot struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerClock overrides the clock used for timestamps.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithStorageTimeout bounds every persistence call of the ledger service.
func WithStorageTimeout(d time.Duration) LedgerServiceOption {
	return func(s *ledgerService) {
		s.StorageTimeout = d
	}
}

// WithOwners lets backups carry the owner's email and business name.
func WithOwners(users portsrepo.UserReader) LedgerServiceOption {
	return func(s *ledgerService) {
		s.owners = users
	}
}

// NewLedgerService creates a ledger service backed by store.
func NewLedgerService(store portsrepo.LedgerStore, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		store: store,
		now:   time.Now,
		slots: make(map[string]*ledgerSlot),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Ledger(ctx context.Context, ledgerID string) (*ledger.Ledger, error) {
	if ledgerID == "" {
		return nil, fmt.Errorf("%w: ledger id is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	slot, ok := s.slots[ledgerID]
	if !ok {
		slot = &ledgerSlot{}
		s.slots[ledgerID] = slot
	}
	s.mu.Unlock()

	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.ledger != nil {
		return slot.ledger, nil
	}

	loadCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	l, err := ledger.Load(loadCtx, ledgerID, s.store, ledger.WithClock(s.now))
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger", slog.String("ledger_id", ledgerID))
		return nil, err
	}
	slot.ledger = l
	s.LogDebug(ctx, "Ledger loaded", slog.String("ledger_id", ledgerID))
	return l, nil
}

func (s *ledgerService) LoadDemoData(ctx context.Context, ledgerID string) (int, int, error) {
	l, err := s.Ledger(ctx, ledgerID)
	if err != nil {
		return 0, 0, err
	}
	snapshot, err := seed.Restaurant(s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to build demo data")
		return 0, 0, fmt.Errorf("failed to build demo data: %w", err)
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	if err := l.Replace(writeCtx, snapshot); err != nil {
		s.LogFailure(ctx, err, "Failed to load demo data", slog.String("ledger_id", ledgerID))
		return 0, 0, err
	}
	s.LogInfo(ctx, "Demo data loaded",
		slog.String("ledger_id", ledgerID),
		slog.Int("accounts", len(snapshot.Accounts)),
		slog.Int("entries", len(snapshot.Entries)))
	return len(snapshot.Accounts), len(snapshot.Entries), nil
}

func (s *ledgerService) ClearLedger(ctx context.Context, ledgerID string) (int, int, error) {
	l, err := s.Ledger(ctx, ledgerID)
	if err != nil {
		return 0, 0, err
	}
	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	accounts, entries, err := l.Clear(writeCtx)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to clear ledger", slog.String("ledger_id", ledgerID))
		return 0, 0, err
	}
	s.LogInfo(ctx, "Ledger cleared",
		slog.String("ledger_id", ledgerID),
		slog.Int("accounts", accounts),
		slog.Int("entries", entries))
	return accounts, entries, nil
}

func (s *ledgerService) Backup(ctx context.Context, ledgerID string) (*domain.LedgerBackup, error) {
	l, err := s.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	backup := &domain.LedgerBackup{
		CreatedAt: s.now().UTC(),
		UserID:    ledgerID,
		Data:      l.Snapshot(),
	}
	if s.owners != nil {
		owner, err := s.owners.FindUserByID(ctx, ledgerID)
		if err != nil {
			s.LogFailure(ctx, err, "Failed to look up ledger owner for backup", slog.String("ledger_id", ledgerID))
			return nil, err
		}
		backup.UserEmail = owner.Email
		backup.BusinessName = owner.BusinessName
	}
	s.LogInfo(ctx, "Ledger backup created",
		slog.String("ledger_id", ledgerID),
		slog.Int("accounts", len(backup.Data.Accounts)),
		slog.Int("entries", len(backup.Data.Entries)))
	return backup, nil
}

// CheckIntegrity reads the stored collections directly, since a loaded ledger has
// already repaired its counters.
func (s *ledgerService) CheckIntegrity(ctx context.Context, ledgerID string) (*domain.IntegrityReport, error) {
	if ledgerID == "" {
		return nil, fmt.Errorf("%w: ledger id is required", apperrors.ErrValidation)
	}
	readCtx, cancel := s.StorageCtx(ctx)
	defer cancel()

	var (
		snapshot domain.LedgerSnapshot
		err      error
	)
	if snapshot.Accounts, err = s.store.LoadAccounts(readCtx, ledgerID); err != nil {
		return nil, s.storageFailure(ctx, ledgerID, "accounts", err)
	}
	if snapshot.Entries, err = s.store.LoadEntries(readCtx, ledgerID); err != nil {
		return nil, s.storageFailure(ctx, ledgerID, "entries", err)
	}
	if snapshot.NextAccountID, err = s.store.LoadCounter(readCtx, ledgerID, domain.CounterNextAccountID); err != nil {
		return nil, s.storageFailure(ctx, ledgerID, "account counter", err)
	}
	if snapshot.NextEntryID, err = s.store.LoadCounter(readCtx, ledgerID, domain.CounterNextEntryID); err != nil {
		return nil, s.storageFailure(ctx, ledgerID, "entry counter", err)
	}

	report := accounting.CheckIntegrity(snapshot)
	s.LogInfo(ctx, "Ledger integrity checked",
		slog.String("ledger_id", ledgerID),
		slog.Bool("valid", report.Valid),
		slog.Int("errors", len(report.Errors)),
		slog.Int("warnings", len(report.Warnings)))
	return &report, nil
}

func (s *ledgerService) storageFailure(ctx context.Context, ledgerID, what string, err error) error {
	s.LogError(ctx, err, "Failed to read ledger "+what, slog.String("ledger_id", ledgerID))
	return fmt.Errorf("%w: loading %s of ledger %s: %w", apperrors.ErrStorage, what, ledgerID, err)
}

func (s *ledgerService) SubscribeChanges(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error) {
	subscriber, ok := s.store.(portsrepo.ChangeSubscriber)
	if !ok {
		return nil, fmt.Errorf("%w: change events", apperrors.ErrUnsupported)
	}
	cancel, err := subscriber.Subscribe(ctx, ledgerID, fn)
	if err != nil {
		s.LogError(ctx, err, "Failed to subscribe to ledger changes", slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("%w: subscribing to ledger %s: %w", apperrors.ErrStorage, ledgerID, err)
	}
	return cancel, nil
}

func (s *ledgerService) Ping(ctx context.Context) error {
	pinger, ok := s.store.(portsrepo.Pinger)
	if !ok {
		return nil
	}
	pingCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	return pinger.Ping(pingCtx)
}
