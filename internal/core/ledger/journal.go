package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
)

// Journal manages the journal entries of a ledger.
type Journal struct {
	l *Ledger
}

// Create records a new balanced entry.
func (j *Journal) Create(ctx context.Context, in domain.JournalEntryInput) (domain.JournalEntry, error) {
	date, lines, err := prepare(in)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	l := j.l
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := j.checkAccountsLocked(lines); err != nil {
		return domain.JournalEntry{}, err
	}

	before := l.snapshotLocked()
	entry := domain.JournalEntry{
		ID:           l.nextEntryID,
		Date:         date,
		Reference:    strings.TrimSpace(in.Reference),
		Description:  strings.TrimSpace(in.Description),
		Transactions: lines,
		CreatedAt:    l.now().UTC(),
	}
	l.nextEntryID++
	l.entries = append(l.entries, entry)

	if err := l.commit(ctx, before, sectionEntries|sectionEntryCounter); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry.Clone(), nil
}

// Update replaces the date, reference, description and lines of an entry.
// An unknown id is reported as not found before the body is validated.
func (j *Journal) Update(ctx context.Context, id int64, in domain.JournalEntryInput) (domain.JournalEntry, error) {
	l := j.l
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := j.indexLocked(id)
	if idx < 0 {
		return domain.JournalEntry{}, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, id)
	}
	date, lines, err := prepare(in)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if err := j.checkAccountsLocked(lines); err != nil {
		return domain.JournalEntry{}, err
	}

	before := l.snapshotLocked()
	updatedAt := l.now().UTC()
	entry := l.entries[idx]
	entry.Date = date
	entry.Reference = strings.TrimSpace(in.Reference)
	entry.Description = strings.TrimSpace(in.Description)
	entry.Transactions = lines
	entry.UpdatedAt = &updatedAt
	l.entries[idx] = entry

	if err := l.commit(ctx, before, sectionEntries); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry.Clone(), nil
}

// Delete removes an entry.
func (j *Journal) Delete(ctx context.Context, id int64) error {
	l := j.l
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := j.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, id)
	}
	before := l.snapshotLocked()
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	return l.commit(ctx, before, sectionEntries)
}

// DeleteByAccount removes every entry with a line posting to accountID and returns
// how many were removed.
func (j *Journal) DeleteByAccount(ctx context.Context, accountID int64) (int, error) {
	l := j.l
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.snapshotLocked()
	removed := j.deleteByAccountLocked(accountID)
	if removed == 0 {
		return 0, nil
	}
	if err := l.commit(ctx, before, sectionEntries); err != nil {
		return 0, err
	}
	return removed, nil
}

// Get returns the entry with the given id.
func (j *Journal) Get(id int64) (domain.JournalEntry, error) {
	j.l.mu.RLock()
	defer j.l.mu.RUnlock()

	idx := j.indexLocked(id)
	if idx < 0 {
		return domain.JournalEntry{}, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, id)
	}
	return j.l.entries[idx].Clone(), nil
}

// List returns every entry, newest first.
func (j *Journal) List() []domain.JournalEntry {
	entries, _ := j.ListPage(0, 0)
	return entries
}

// Recent returns at most n entries, newest first.
func (j *Journal) Recent(n int) []domain.JournalEntry {
	if n <= 0 {
		return []domain.JournalEntry{}
	}
	entries, _ := j.ListPage(n, 0)
	return entries
}

// ListPage returns entries newest first. When before is positive only entries with a
// smaller id are considered. A limit of zero or less returns everything. hasMore
// reports whether older entries remain after the page.
func (j *Journal) ListPage(limit int, before int64) (entries []domain.JournalEntry, hasMore bool) {
	j.l.mu.RLock()
	defer j.l.mu.RUnlock()

	entries = []domain.JournalEntry{}
	for i := len(j.l.entries) - 1; i >= 0; i-- {
		e := j.l.entries[i]
		if before > 0 && e.ID >= before {
			continue
		}
		if limit > 0 && len(entries) == limit {
			return entries, true
		}
		entries = append(entries, e.Clone())
	}
	return entries, false
}

// Count returns the number of entries.
func (j *Journal) Count() int {
	j.l.mu.RLock()
	defer j.l.mu.RUnlock()
	return len(j.l.entries)
}

func (j *Journal) deleteByAccountLocked(accountID int64) int {
	kept := j.l.entries[:0]
	removed := 0
	for _, e := range j.l.entries {
		if e.References(accountID) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	j.l.entries = kept
	return removed
}

func (j *Journal) indexLocked(id int64) int {
	for i, e := range j.l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (j *Journal) checkAccountsLocked(lines []domain.TransactionLine) error {
	for i, line := range lines {
		if !j.l.Registry.existsLocked(line.AccountID) {
			return fmt.Errorf("%w: line %d: account %d does not exist", apperrors.ErrValidation, i+1, line.AccountID)
		}
	}
	return nil
}

func prepare(in domain.JournalEntryInput) (string, []domain.TransactionLine, error) {
	date, lines, err := in.Normalize()
	if err != nil {
		return "", nil, err
	}
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return "", nil, err
	}
	return date, lines, nil
}
