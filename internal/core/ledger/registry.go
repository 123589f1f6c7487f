package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
)

// Registry manages the chart of accounts of a ledger.
type Registry struct {
	l *Ledger
}

// Create adds an account. The number must be unique within the ledger.
func (r *Registry) Create(ctx context.Context, number, name, accountType, description string) (domain.Account, error) {
	number = strings.TrimSpace(number)
	name = strings.TrimSpace(name)
	if number == "" {
		return domain.Account{}, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}
	if name == "" {
		return domain.Account{}, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	t, ok := domain.ParseAccountType(accountType)
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: unrecognized account type %q", apperrors.ErrValidation, accountType)
	}

	l := r.l
	l.mu.Lock()
	defer l.mu.Unlock()

	if r.numberTakenLocked(number, 0) {
		return domain.Account{}, fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, number)
	}

	before := l.snapshotLocked()
	now := l.now().UTC()
	acc := domain.Account{
		ID:          l.nextAccountID,
		Number:      number,
		Name:        name,
		Type:        t,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l.nextAccountID++
	l.accounts = append(l.accounts, acc)
	accounting.SortAccounts(l.accounts)

	if err := l.commit(ctx, before, sectionAccounts|sectionAccountCounter); err != nil {
		return domain.Account{}, err
	}
	return acc, nil
}

// Update applies the non-nil fields of upd to the account.
func (r *Registry) Update(ctx context.Context, id int64, upd domain.AccountUpdate) (domain.Account, error) {
	l := r.l
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return domain.Account{}, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	acc := l.accounts[idx]

	if upd.Number != nil {
		number := strings.TrimSpace(*upd.Number)
		if number == "" {
			return domain.Account{}, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
		}
		if r.numberTakenLocked(number, id) {
			return domain.Account{}, fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, number)
		}
		acc.Number = number
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return domain.Account{}, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
		}
		acc.Name = name
	}
	if upd.Type != nil {
		t, ok := domain.ParseAccountType(*upd.Type)
		if !ok {
			return domain.Account{}, fmt.Errorf("%w: unrecognized account type %q", apperrors.ErrValidation, *upd.Type)
		}
		acc.Type = t
	}
	if upd.Description != nil {
		acc.Description = strings.TrimSpace(*upd.Description)
	}
	acc.UpdatedAt = l.now().UTC()

	before := l.snapshotLocked()
	l.accounts[idx] = acc
	accounting.SortAccounts(l.accounts)

	if err := l.commit(ctx, before, sectionAccounts); err != nil {
		return domain.Account{}, err
	}
	return acc, nil
}

// Delete removes the account together with every journal entry that posts to it.
// It returns the number of entries removed.
func (r *Registry) Delete(ctx context.Context, id int64) (int, error) {
	l := r.l
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}

	before := l.snapshotLocked()
	l.accounts = append(l.accounts[:idx], l.accounts[idx+1:]...)
	removed := l.Journal.deleteByAccountLocked(id)

	sections := sectionAccounts
	if removed > 0 {
		sections |= sectionEntries
	}
	if err := l.commit(ctx, before, sections); err != nil {
		return 0, err
	}
	return removed, nil
}

// Get returns the account with the given id.
func (r *Registry) Get(id int64) (domain.Account, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return domain.Account{}, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	return r.l.accounts[idx], nil
}

// List returns all accounts ordered by number.
func (r *Registry) List() []domain.Account {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	return append([]domain.Account{}, r.l.accounts...)
}

// ListByType returns every account type in fixed order with its accounts.
func (r *Registry) ListByType() []domain.AccountGroup {
	return accounting.GroupByType(r.List())
}

// NextAccountNumber suggests an unused account number.
func (r *Registry) NextAccountNumber() string {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	return accounting.NextAccountNumber(r.l.accounts)
}

func (r *Registry) indexLocked(id int64) int {
	for i, acc := range r.l.accounts {
		if acc.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) numberTakenLocked(number string, exceptID int64) bool {
	for _, acc := range r.l.accounts {
		if acc.Number == number && acc.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *Registry) existsLocked(id int64) bool {
	return r.indexLocked(id) >= 0
}
