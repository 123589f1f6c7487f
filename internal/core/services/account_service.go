package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	ledgers portssvc.LedgerProviderSvc
}

// NewAccountService creates a new account service working on the ledgers handed out by ledgers.
func NewAccountService(ledgers portssvc.LedgerProviderSvc, storageTimeout time.Duration) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{StorageTimeout: storageTimeout},
		ledgers:     ledgers,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	account, err := l.Registry.Create(writeCtx, req.Number, req.Name, req.Type, req.Description)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create account",
			slog.String("ledger_id", ledgerID),
			slog.String("number", req.Number))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", account.ID),
		slog.String("number", account.Number))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, ledgerID string, accountID int64) (*domain.Account, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	account, err := l.Registry.Get(accountID)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return l.Registry.List(), nil
}

func (s *accountService) ListAccountsByType(ctx context.Context, ledgerID string) ([]domain.AccountGroup, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return l.Registry.ListByType(), nil
}

func (s *accountService) NextAccountNumber(ctx context.Context, ledgerID string) (string, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return "", err
	}
	return l.Registry.NextAccountNumber(), nil
}

func (s *accountService) UpdateAccount(ctx context.Context, ledgerID string, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	account, err := l.Registry.Update(writeCtx, accountID, req.ToAccountUpdate())
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.Int64("account_id", accountID))
	return &account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, ledgerID string, accountID int64) (int, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return 0, err
	}

	writeCtx, cancel := s.StorageCtx(ctx)
	defer cancel()
	removed, err := l.Registry.Delete(writeCtx, accountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return 0, err
	}

	s.LogInfo(ctx, "Account deleted successfully",
		slog.Int64("account_id", accountID),
		slog.Int("deleted_entries", removed))
	return removed, nil
}

func (s *accountService) CalculateAccountBalance(ctx context.Context, ledgerID string, accountID int64) (decimal.Decimal, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return decimal.Zero, err
	}
	if _, err := l.Registry.Get(accountID); err != nil {
		return decimal.Zero, err
	}
	snapshot := l.Snapshot()
	balances := accounting.ComputeBalances(snapshot.Accounts, snapshot.Entries)
	return accounting.AccountBalance(balances, accountID), nil
}
