// Package seed builds ledger snapshots from YAML fixtures. The embedded
// restaurant fixture backs the "load demo data" action.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed restaurant.yaml
var restaurantYAML []byte

type fixture struct {
	Accounts []accountSpec `yaml:"accounts"`
	Entries  []entrySpec   `yaml:"entries"`
}

type accountSpec struct {
	Number      string `yaml:"number"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type entrySpec struct {
	Date        string     `yaml:"date"`
	Reference   string     `yaml:"reference"`
	Description string     `yaml:"description"`
	CreatedAt   string     `yaml:"createdAt"`
	Lines       []lineSpec `yaml:"lines"`
}

type lineSpec struct {
	Account string `yaml:"account"`
	Debit   string `yaml:"debit"`
	Credit  string `yaml:"credit"`
}

// Restaurant returns the demo restaurant ledger. Accounts get ids 1..n in file
// order and now as their timestamps.
func Restaurant(now time.Time) (domain.LedgerSnapshot, error) {
	return Parse(restaurantYAML, now)
}

// Parse builds a snapshot from a YAML fixture, validating every account and entry.
func Parse(data []byte, now time.Time) (domain.LedgerSnapshot, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.LedgerSnapshot{}, fmt.Errorf("%w: parsing fixture: %v", apperrors.ErrValidation, err)
	}

	now = now.UTC()
	snapshot := domain.LedgerSnapshot{
		Accounts: make([]domain.Account, 0, len(f.Accounts)),
		Entries:  make([]domain.JournalEntry, 0, len(f.Entries)),
	}
	ids := make(map[string]int64, len(f.Accounts))
	for i, spec := range f.Accounts {
		t, ok := domain.ParseAccountType(spec.Type)
		if !ok {
			return domain.LedgerSnapshot{}, fmt.Errorf("%w: account %s: unrecognized type %q", apperrors.ErrValidation, spec.Number, spec.Type)
		}
		if _, dup := ids[spec.Number]; dup {
			return domain.LedgerSnapshot{}, fmt.Errorf("%w: account number %s appears twice", apperrors.ErrDuplicate, spec.Number)
		}
		id := int64(i + 1)
		ids[spec.Number] = id
		snapshot.Accounts = append(snapshot.Accounts, domain.Account{
			ID:          id,
			Number:      spec.Number,
			Name:        spec.Name,
			Type:        t,
			Description: spec.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	for i, spec := range f.Entries {
		entry, err := buildEntry(int64(i+1), spec, ids, now)
		if err != nil {
			return domain.LedgerSnapshot{}, fmt.Errorf("entry %d (%s): %w", i+1, spec.Reference, err)
		}
		snapshot.Entries = append(snapshot.Entries, entry)
	}

	snapshot.NextAccountID = int64(len(snapshot.Accounts) + 1)
	snapshot.NextEntryID = int64(len(snapshot.Entries) + 1)
	return snapshot, nil
}

func buildEntry(id int64, spec entrySpec, ids map[string]int64, now time.Time) (domain.JournalEntry, error) {
	lines := make([]domain.TransactionLine, 0, len(spec.Lines))
	for _, l := range spec.Lines {
		accountID, ok := ids[l.Account]
		if !ok {
			return domain.JournalEntry{}, fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, l.Account)
		}
		debit, err := amount(l.Debit)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		credit, err := amount(l.Credit)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		lines = append(lines, domain.TransactionLine{AccountID: accountID, Debit: debit, Credit: credit})
	}

	date, active, err := domain.JournalEntryInput{
		Date:         spec.Date,
		Reference:    spec.Reference,
		Description:  spec.Description,
		Transactions: lines,
	}.Normalize()
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if err := accounting.ValidateJournalBalance(active); err != nil {
		return domain.JournalEntry{}, err
	}

	createdAt := now
	if spec.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, spec.CreatedAt)
		if err != nil {
			return domain.JournalEntry{}, fmt.Errorf("%w: createdAt %q: %v", apperrors.ErrValidation, spec.CreatedAt, err)
		}
	}
	return domain.JournalEntry{
		ID:           id,
		Date:         date,
		Reference:    spec.Reference,
		Description:  spec.Description,
		Transactions: active,
		CreatedAt:    createdAt.UTC(),
	}, nil
}

func amount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", apperrors.ErrValidation, s)
	}
	return d, nil
}
