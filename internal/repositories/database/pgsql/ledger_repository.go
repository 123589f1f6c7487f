package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ChangeChannel is the NOTIFY channel ledger writes are announced on.
const ChangeChannel = "ledger_changes"

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.LedgerStore      = (*PgxLedgerRepository)(nil)
	_ portsrepo.SnapshotWriter   = (*PgxLedgerRepository)(nil)
	_ portsrepo.ChangeSubscriber = (*PgxLedgerRepository)(nil)
	_ portsrepo.Pinger           = (*PgxLedgerRepository)(nil)
)

func (r *PgxLedgerRepository) LoadAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, number, name, account_type, description, created_at, updated_at
		FROM ledger_accounts
		WHERE ledger_id = $1
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, ledgerID)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxLedgerRepository) LoadEntries(ctx context.Context, ledgerID string) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, reference, description, created_at, updated_at
		FROM ledger_entries
		WHERE ledger_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	index := make(map[int64]int)
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Reference, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		e.Transactions = []domain.TransactionLine{}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	lineQuery := `
		SELECT entry_id, account_id, debit, credit
		FROM ledger_entry_lines
		WHERE ledger_id = $1
		ORDER BY entry_id, line_no;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var entryID int64
		var line domain.TransactionLine
		var debit, credit pgtype.Numeric
		if err := lineRows.Scan(&entryID, &line.AccountID, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line row: %w", err)
		}
		line.Debit = fromNumeric(debit)
		line.Credit = fromNumeric(credit)
		if i, ok := index[entryID]; ok {
			entries[i].Transactions = append(entries[i].Transactions, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction line rows: %w", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) LoadCounter(ctx context.Context, ledgerID, name string) (int64, error) {
	var value int64
	err := r.Pool.QueryRow(ctx, `SELECT value FROM ledger_counters WHERE ledger_id = $1 AND name = $2;`, ledgerID, name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load counter %s: %w", name, err)
	}
	return value, nil
}

func (r *PgxLedgerRepository) SaveAccounts(ctx context.Context, ledgerID string, accounts []domain.Account) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := replaceAccounts(ctx, tx, ledgerID, accounts); err != nil {
			return err
		}
		return notify(ctx, tx, ledgerID, domain.ChangeAccounts)
	})
}

func (r *PgxLedgerRepository) SaveEntries(ctx context.Context, ledgerID string, entries []domain.JournalEntry) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := replaceEntries(ctx, tx, ledgerID, entries); err != nil {
			return err
		}
		return notify(ctx, tx, ledgerID, domain.ChangeEntries)
	})
}

func (r *PgxLedgerRepository) SaveCounter(ctx context.Context, ledgerID, name string, value int64) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := upsertCounter(ctx, tx, ledgerID, name, value); err != nil {
			return err
		}
		return notify(ctx, tx, ledgerID, domain.ChangeCounter)
	})
}

// SaveSnapshot replaces every collection of the ledger in one transaction.
func (r *PgxLedgerRepository) SaveSnapshot(ctx context.Context, ledgerID string, snapshot domain.LedgerSnapshot) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := replaceAccounts(ctx, tx, ledgerID, snapshot.Accounts); err != nil {
			return err
		}
		if err := replaceEntries(ctx, tx, ledgerID, snapshot.Entries); err != nil {
			return err
		}
		if err := upsertCounter(ctx, tx, ledgerID, domain.CounterNextAccountID, snapshot.NextAccountID); err != nil {
			return err
		}
		if err := upsertCounter(ctx, tx, ledgerID, domain.CounterNextEntryID, snapshot.NextEntryID); err != nil {
			return err
		}
		return notify(ctx, tx, ledgerID, domain.ChangeSnapshot)
	})
}

// Subscribe listens on ChangeChannel with a dedicated connection until the
// returned function is called. Writes from every process sharing the database
// are reported.
func (r *PgxLedgerRepository) Subscribe(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error) {
	conn, err := r.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", ChangeChannel, err)
	}

	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			n, err := conn.Conn().WaitForNotification(listenCtx)
			if err != nil {
				return
			}
			var event domain.ChangeEvent
			if err := json.Unmarshal([]byte(n.Payload), &event); err != nil {
				slog.Default().Warn("Ignoring malformed ledger notification", slog.String("error", err.Error()))
				continue
			}
			if event.LedgerID == ledgerID {
				fn(event)
			}
		}
	}()

	return func() {
		cancel()
		<-done
		// The connection may be mid-wait; closing it is simpler than draining.
		_ = conn.Conn().Close(context.Background())
		conn.Release()
	}, nil
}

func (r *PgxLedgerRepository) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}

func replaceAccounts(ctx context.Context, tx pgx.Tx, ledgerID string, accounts []domain.Account) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ledger_accounts WHERE ledger_id = $1;`, ledgerID); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil
	}
	rows := make([][]any, len(accounts))
	for i, acc := range accounts {
		rows[i] = []any{ledgerID, acc.ID, acc.Number, acc.Name, string(acc.Type), acc.Description, acc.CreatedAt, acc.UpdatedAt}
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"ledger_accounts"},
		[]string{"ledger_id", "account_id", "number", "name", "account_type", "description", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert accounts: %w", err)
	}
	return nil
}

func replaceEntries(ctx context.Context, tx pgx.Tx, ledgerID string, entries []domain.JournalEntry) error {
	// Lines go with their entries through ON DELETE CASCADE.
	if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE ledger_id = $1;`, ledgerID); err != nil {
		return fmt.Errorf("failed to clear journal entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	entryRows := make([][]any, 0, len(entries))
	lineRows := make([][]any, 0, len(entries)*2)
	for _, e := range entries {
		entryRows = append(entryRows, []any{ledgerID, e.ID, e.Date, e.Reference, e.Description, e.CreatedAt, e.UpdatedAt})
		for i, line := range e.Transactions {
			lineRows = append(lineRows, []any{ledgerID, e.ID, i + 1, line.AccountID, numeric(line.Debit), numeric(line.Credit)})
		}
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"ledger_entries"},
		[]string{"ledger_id", "entry_id", "entry_date", "reference", "description", "created_at", "updated_at"},
		pgx.CopyFromRows(entryRows),
	); err != nil {
		return fmt.Errorf("failed to insert journal entries: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"ledger_entry_lines"},
		[]string{"ledger_id", "entry_id", "line_no", "account_id", "debit", "credit"},
		pgx.CopyFromRows(lineRows),
	); err != nil {
		return fmt.Errorf("failed to insert transaction lines: %w", err)
	}
	return nil
}

func upsertCounter(ctx context.Context, tx pgx.Tx, ledgerID, name string, value int64) error {
	query := `
		INSERT INTO ledger_counters (ledger_id, name, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (ledger_id, name) DO UPDATE SET value = EXCLUDED.value;
	`
	if _, err := tx.Exec(ctx, query, ledgerID, name, value); err != nil {
		return fmt.Errorf("failed to save counter %s: %w", name, err)
	}
	return nil
}

// notify queues a change notification; Postgres delivers it on commit.
func notify(ctx context.Context, tx pgx.Tx, ledgerID string, kind domain.ChangeKind) error {
	payload, err := json.Marshal(domain.ChangeEvent{LedgerID: ledgerID, Kind: kind, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2);`, ChangeChannel, string(payload)); err != nil {
		return fmt.Errorf("failed to queue change notification: %w", err)
	}
	return nil
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
