// Package sqlite stores ledgers and users in a local SQLite file through database/sql
// and the go-sqlite3 driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/repositories/changefeed"
	"github.com/shopspring/decimal"
)

type LedgerRepository struct {
	db   *sql.DB
	feed changefeed.Broadcaster
}

var (
	_ portsrepo.LedgerStore      = (*LedgerRepository)(nil)
	_ portsrepo.SnapshotWriter   = (*LedgerRepository)(nil)
	_ portsrepo.ChangeSubscriber = (*LedgerRepository)(nil)
	_ portsrepo.Pinger           = (*LedgerRepository)(nil)
)

func (r *LedgerRepository) LoadAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_id, number, name, account_type, description, created_at, updated_at
		FROM ledger_accounts WHERE ledger_id = ? ORDER BY number`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		var accountType string
		if err := rows.Scan(&acc.ID, &acc.Number, &acc.Name, &accountType, &acc.Description, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		acc.Type = domain.AccountType(accountType)
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *LedgerRepository) LoadEntries(ctx context.Context, ledgerID string) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT entry_id, entry_date, reference, description, created_at, updated_at
		FROM ledger_entries WHERE ledger_id = ? ORDER BY entry_id`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	index := make(map[int64]int)
	for rows.Next() {
		var e domain.JournalEntry
		var updatedAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.Date, &e.Reference, &e.Description, &e.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			e.UpdatedAt = &t
		}
		e.Transactions = []domain.TransactionLine{}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT entry_id, account_id, debit, credit
		FROM ledger_entry_lines WHERE ledger_id = ? ORDER BY entry_id, line_no`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var entryID int64
		var line domain.TransactionLine
		// decimal.Decimal implements sql.Scanner for the TEXT amounts.
		if err := lineRows.Scan(&entryID, &line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line row: %w", err)
		}
		if i, ok := index[entryID]; ok {
			entries[i].Transactions = append(entries[i].Transactions, line)
		}
	}
	return entries, lineRows.Err()
}

func (r *LedgerRepository) LoadCounter(ctx context.Context, ledgerID, name string) (int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM ledger_counters WHERE ledger_id = ? AND name = ?`, ledgerID, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load counter %s: %w", name, err)
	}
	return value, nil
}

func (r *LedgerRepository) SaveAccounts(ctx context.Context, ledgerID string, accounts []domain.Account) error {
	return r.write(ctx, ledgerID, domain.ChangeAccounts, func(tx *sql.Tx) error {
		return replaceAccounts(ctx, tx, ledgerID, accounts)
	})
}

func (r *LedgerRepository) SaveEntries(ctx context.Context, ledgerID string, entries []domain.JournalEntry) error {
	return r.write(ctx, ledgerID, domain.ChangeEntries, func(tx *sql.Tx) error {
		return replaceEntries(ctx, tx, ledgerID, entries)
	})
}

func (r *LedgerRepository) SaveCounter(ctx context.Context, ledgerID, name string, value int64) error {
	return r.write(ctx, ledgerID, domain.ChangeCounter, func(tx *sql.Tx) error {
		return upsertCounter(ctx, tx, ledgerID, name, value)
	})
}

// SaveSnapshot replaces every collection of the ledger in one transaction.
func (r *LedgerRepository) SaveSnapshot(ctx context.Context, ledgerID string, snapshot domain.LedgerSnapshot) error {
	return r.write(ctx, ledgerID, domain.ChangeSnapshot, func(tx *sql.Tx) error {
		if err := replaceAccounts(ctx, tx, ledgerID, snapshot.Accounts); err != nil {
			return err
		}
		if err := replaceEntries(ctx, tx, ledgerID, snapshot.Entries); err != nil {
			return err
		}
		if err := upsertCounter(ctx, tx, ledgerID, domain.CounterNextAccountID, snapshot.NextAccountID); err != nil {
			return err
		}
		return upsertCounter(ctx, tx, ledgerID, domain.CounterNextEntryID, snapshot.NextEntryID)
	})
}

func (r *LedgerRepository) Subscribe(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error) {
	return r.feed.Subscribe(ledgerID, fn), nil
}

func (r *LedgerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// write executes fn within a transaction and publishes kind after a successful commit.
func (r *LedgerRepository) write(ctx context.Context, ledgerID string, kind domain.ChangeKind, fn func(*sql.Tx) error) error {
	if err := transaction(ctx, r.db, fn); err != nil {
		return err
	}
	r.feed.Publish(ledgerID, kind)
	return nil
}

func transaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func replaceAccounts(ctx context.Context, tx *sql.Tx, ledgerID string, accounts []domain.Account) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_accounts WHERE ledger_id = ?`, ledgerID); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_accounts (ledger_id, account_id, number, name, account_type, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, acc := range accounts {
		if _, err := stmt.ExecContext(ctx, ledgerID, acc.ID, acc.Number, acc.Name, string(acc.Type), acc.Description, acc.CreatedAt, acc.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert account %s: %w", acc.Number, err)
		}
	}
	return nil
}

func replaceEntries(ctx context.Context, tx *sql.Tx, ledgerID string, entries []domain.JournalEntry) error {
	// Lines go with their entries through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE ledger_id = ?`, ledgerID); err != nil {
		return fmt.Errorf("failed to clear journal entries: %w", err)
	}
	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_entries (ledger_id, entry_id, entry_date, reference, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()
	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_entry_lines (ledger_id, entry_id, line_no, account_id, debit, credit)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer lineStmt.Close()

	for _, e := range entries {
		var updatedAt sql.NullTime
		if e.UpdatedAt != nil {
			updatedAt = sql.NullTime{Time: *e.UpdatedAt, Valid: true}
		}
		if _, err := entryStmt.ExecContext(ctx, ledgerID, e.ID, e.Date, e.Reference, e.Description, e.CreatedAt, updatedAt); err != nil {
			return fmt.Errorf("failed to insert journal entry %d: %w", e.ID, err)
		}
		for i, line := range e.Transactions {
			if _, err := lineStmt.ExecContext(ctx, ledgerID, e.ID, i+1, line.AccountID, amountText(line.Debit), amountText(line.Credit)); err != nil {
				return fmt.Errorf("failed to insert line %d of journal entry %d: %w", i+1, e.ID, err)
			}
		}
	}
	return nil
}

func upsertCounter(ctx context.Context, tx *sql.Tx, ledgerID, name string, value int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_counters (ledger_id, name, value) VALUES (?, ?, ?)
		ON CONFLICT (ledger_id, name) DO UPDATE SET value = excluded.value`, ledgerID, name, value)
	if err != nil {
		return fmt.Errorf("failed to save counter %s: %w", name, err)
	}
	return nil
}

// amountText stores amounts as exact decimal text; SQLite has no decimal type.
func amountText(d decimal.Decimal) string {
	return d.String()
}
