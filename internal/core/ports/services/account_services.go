package services

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its id.
	GetAccountByID(ctx context.Context, ledgerID string, accountID int64) (*domain.Account, error)

	// ListAccounts returns the chart of accounts ordered by number.
	ListAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error)

	// ListAccountsByType returns the chart grouped by account type.
	ListAccountsByType(ctx context.Context, ledgerID string) ([]domain.AccountGroup, error)

	// NextAccountNumber suggests an unused account number.
	NextAccountNumber(ctx context.Context, ledgerID string) (string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, ledgerID string, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account together with every journal entry that uses it.
	// It returns the number of journal entries removed.
	DeleteAccount(ctx context.Context, ledgerID string, accountID int64) (int, error)
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// CalculateAccountBalance calculates the current debit minus credit balance of an account.
	CalculateAccountBalance(ctx context.Context, ledgerID string, accountID int64) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
