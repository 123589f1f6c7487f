package sqlite_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/repositories/database/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SQLiteTestSuite struct {
	suite.Suite
	ctx      context.Context
	path     string
	provider portsrepo.RepositoryProvider
}

func (s *SQLiteTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "data", "ledger.sqlite")
	s.open()
}

func (s *SQLiteTestSuite) TearDownTest() {
	_ = s.provider.Close()
}

func (s *SQLiteTestSuite) open() {
	provider, err := sqlite.NewRepositoryProvider(s.path, slog.Default())
	s.Require().NoError(err)
	s.provider = provider
}

func (s *SQLiteTestSuite) TestLedgerSurvivesReopen() {
	l, err := ledger.Load(s.ctx, "user-1", s.provider.LedgerStore)
	s.Require().NoError(err)
	cash, err := l.Registry.Create(s.ctx, "1000", "Cash", "Asset", "")
	s.Require().NoError(err)
	sales, err := l.Registry.Create(s.ctx, "4000", "Food Sales", "Revenue", "")
	s.Require().NoError(err)
	entry, err := l.Journal.Create(s.ctx, domain.JournalEntryInput{
		Date:        "2024-01-15",
		Reference:   "SALES001",
		Description: "Daily sales",
		Transactions: []domain.TransactionLine{
			{AccountID: cash.ID, Debit: decimal.RequireFromString("2850.50")},
			{AccountID: sales.ID, Credit: decimal.RequireFromString("2850.50")},
		},
	})
	s.Require().NoError(err)
	_, err = l.Journal.Update(s.ctx, entry.ID, domain.JournalEntryInput{
		Date:        "2024-01-15",
		Reference:   "SALES001",
		Description: "Daily sales (corrected)",
		Transactions: []domain.TransactionLine{
			{AccountID: cash.ID, Debit: decimal.RequireFromString("2850.75")},
			{AccountID: sales.ID, Credit: decimal.RequireFromString("2850.75")},
		},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.provider.Close())
	s.open()

	reloaded, err := ledger.Load(s.ctx, "user-1", s.provider.LedgerStore)
	s.Require().NoError(err)
	s.Len(reloaded.Registry.List(), 2)
	got, err := reloaded.Journal.Get(entry.ID)
	s.Require().NoError(err)
	s.Equal("Daily sales (corrected)", got.Description)
	s.Require().NotNil(got.UpdatedAt)
	s.True(got.Transactions[0].Debit.Equal(decimal.RequireFromString("2850.75")))
	s.True(got.Transactions[0].Credit.IsZero())

	s.NoError(s.provider.Ping(s.ctx))
}

func (s *SQLiteTestSuite) TestEmptyLedger() {
	entries, err := s.provider.LedgerStore.LoadEntries(s.ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(entries)
	s.Empty(entries)
}

func (s *SQLiteTestSuite) TestUsers() {
	now := time.Now().UTC()
	repo := s.provider.UserRepo
	user := domain.User{
		UserID: "u1", Username: "alice", Email: "alice@example.com", Currency: "USD",
		AuthProvider: domain.ProviderLocal, CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(repo.SaveUser(s.ctx, user))
	s.ErrorIs(repo.SaveUser(s.ctx, domain.User{UserID: "u2", Username: "ALICE", CreatedAt: now, UpdatedAt: now}), apperrors.ErrDuplicate)

	found, err := repo.FindUserByUsernameOrEmail(s.ctx, "Alice@Example.com")
	s.Require().NoError(err)
	s.Equal("u1", found.UserID)

	found.Currency = "EUR"
	s.Require().NoError(repo.UpdateUser(s.ctx, *found))
	again, err := repo.FindUserByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("EUR", again.Currency)

	s.ErrorIs(repo.UpdateUser(s.ctx, domain.User{UserID: "missing"}), apperrors.ErrNotFound)
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}
