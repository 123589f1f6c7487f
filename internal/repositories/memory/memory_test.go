package memory_test

import (
	"context"
	"testing"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStore_EmptyLedgerLoadsEmpty(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	accounts, err := store.LoadAccounts(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)

	n, err := store.LoadCounter(ctx, "nobody", domain.CounterNextEntryID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLedgerStore_SaveIsolatesCallerSlices(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	accounts := []domain.Account{{ID: 1, Number: "1000", Name: "Cash", Type: domain.Asset}}
	require.NoError(t, store.SaveAccounts(ctx, "u1", accounts))
	accounts[0].Name = "mutated"

	loaded, err := store.LoadAccounts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Cash", loaded[0].Name)

	other, err := store.LoadAccounts(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedgerStore_SnapshotAndSubscribe(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	var kinds []domain.ChangeKind
	cancel, err := store.Subscribe(ctx, "u1", func(e domain.ChangeEvent) { kinds = append(kinds, e.Kind) })
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, store.SaveSnapshot(ctx, "u1", domain.LedgerSnapshot{NextAccountID: 4, NextEntryID: 9}))
	n, err := store.LoadCounter(ctx, "u1", domain.CounterNextEntryID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, []domain.ChangeKind{domain.ChangeSnapshot}, kinds)
}

func TestUserRepository(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	user := domain.User{UserID: "u1", Username: "alice", Email: "alice@example.com", AuthProvider: domain.ProviderLocal}
	require.NoError(t, repo.SaveUser(ctx, user))

	err := repo.SaveUser(ctx, domain.User{UserID: "u2", Username: "ALICE", Email: "other@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	found, err := repo.FindUserByUsernameOrEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	_, err = repo.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.UpdateUser(ctx, domain.User{UserID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
