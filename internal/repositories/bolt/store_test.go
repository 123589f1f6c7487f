package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/core/ledger"
	"github.com/SscSPs/general_ledger_app/internal/repositories/bolt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BoltStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	path  string
	store *bolt.Store
}

func (s *BoltStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "ledger.db")
	store, err := bolt.New(s.path)
	s.Require().NoError(err)
	s.store = store
}

func (s *BoltStoreTestSuite) TearDownTest() {
	_ = s.store.Close()
}

func (s *BoltStoreTestSuite) reopen() {
	s.Require().NoError(s.store.Close())
	store, err := bolt.New(s.path)
	s.Require().NoError(err)
	s.store = store
}

func (s *BoltStoreTestSuite) TestUnknownLedgerIsEmpty() {
	accounts, err := s.store.LoadAccounts(s.ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)

	n, err := s.store.LoadCounter(s.ctx, "nobody", domain.CounterNextAccountID)
	s.Require().NoError(err)
	s.Zero(n)
	s.NoError(s.store.Ping(s.ctx))
}

func (s *BoltStoreTestSuite) TestLedgerSurvivesReopen() {
	l, err := ledger.Load(s.ctx, "user-1", s.store)
	s.Require().NoError(err)
	cash, err := l.Registry.Create(s.ctx, "1000", "Cash", "Asset", "Till")
	s.Require().NoError(err)
	equity, err := l.Registry.Create(s.ctx, "3000", "Owner's Equity", "Equity", "")
	s.Require().NoError(err)
	_, err = l.Journal.Create(s.ctx, domain.JournalEntryInput{
		Date:        "2024-01-01",
		Description: "Owner investment",
		Transactions: []domain.TransactionLine{
			{AccountID: cash.ID, Debit: decimal.RequireFromString("1000.50")},
			{AccountID: equity.ID, Credit: decimal.RequireFromString("1000.50")},
		},
	})
	s.Require().NoError(err)

	s.reopen()

	reloaded, err := ledger.Load(s.ctx, "user-1", s.store)
	s.Require().NoError(err)
	accounts := reloaded.Registry.List()
	s.Require().Len(accounts, 2)
	s.Equal("Till", accounts[0].Description)
	s.WithinDuration(cash.CreatedAt, accounts[0].CreatedAt, time.Second)

	entries := reloaded.Journal.List()
	s.Require().Len(entries, 1)
	s.True(entries[0].Transactions[0].Debit.Equal(decimal.RequireFromString("1000.50")))

	next, err := s.store.LoadCounter(s.ctx, "user-1", domain.CounterNextEntryID)
	s.Require().NoError(err)
	s.Equal(int64(2), next)
}

func (s *BoltStoreTestSuite) TestSnapshotPublishesOneEvent() {
	var events []domain.ChangeEvent
	cancel, err := s.store.Subscribe(s.ctx, "user-1", func(e domain.ChangeEvent) { events = append(events, e) })
	s.Require().NoError(err)
	defer cancel()

	err = s.store.SaveSnapshot(s.ctx, "user-1", domain.LedgerSnapshot{
		Accounts:      []domain.Account{{ID: 1, Number: "1000", Name: "Cash", Type: domain.Asset}},
		NextAccountID: 2,
		NextEntryID:   1,
	})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(domain.ChangeSnapshot, events[0].Kind)

	accounts, err := s.store.LoadAccounts(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(accounts, 1)
}

func (s *BoltStoreTestSuite) TestUserRepository() {
	provider, err := bolt.NewRepositoryProvider(filepath.Join(s.T().TempDir(), "users.db"))
	s.Require().NoError(err)
	defer provider.Close()
	repo := provider.UserRepo

	user := domain.User{
		UserID:         "u1",
		Username:       "alice",
		Email:          "alice@example.com",
		PasswordHash:   "hash",
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: "google-123",
	}
	s.Require().NoError(repo.SaveUser(s.ctx, user))
	s.ErrorIs(repo.SaveUser(s.ctx, domain.User{UserID: "u2", Email: "ALICE@example.com"}), apperrors.ErrDuplicate)

	found, err := repo.FindUserByProvider(s.ctx, domain.ProviderGoogle, "google-123")
	s.Require().NoError(err)
	s.Equal("hash", found.PasswordHash)

	found.FullName = "Alice Smith"
	s.Require().NoError(repo.UpdateUser(s.ctx, *found))
	byName, err := repo.FindUserByUsernameOrEmail(s.ctx, "ALICE")
	s.Require().NoError(err)
	s.Equal("Alice Smith", byName.FullName)

	_, err = repo.FindUserByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBoltStoreTestSuite(t *testing.T) {
	suite.Run(t, new(BoltStoreTestSuite))
}
