package accounting_test

import (
	"testing"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(numbers ...string) []domain.Account {
	accounts := make([]domain.Account, len(numbers))
	for i, n := range numbers {
		accounts[i] = domain.Account{ID: int64(i + 1), Number: n, Name: n, Type: domain.Asset}
	}
	return accounts
}

func TestNextAccountNumber(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		want    string
	}{
		{name: "empty chart", want: "1000"},
		{name: "contiguous", numbers: []string{"1000", "1100", "1200"}, want: "1300"},
		{name: "gap", numbers: []string{"1000", "1200"}, want: "1100"},
		{name: "ignores non numeric", numbers: []string{"CASH", "1000"}, want: "1100"},
		{name: "off-step numbers do not block", numbers: []string{"1050", "1000"}, want: "1100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.NextAccountNumber(numbered(tt.numbers...)))
		})
	}
}

func TestSortAccounts_Lexicographic(t *testing.T) {
	accounts := numbered("2000", "10000", "1000")
	accounts = append(accounts, domain.Account{ID: 9, Number: "1500"})
	accounting.SortAccounts(accounts)
	got := []string{}
	for _, a := range accounts {
		got = append(got, a.Number)
	}
	assert.Equal(t, []string{"1000", "10000", "1500", "2000"}, got)
}

func TestGroupByType(t *testing.T) {
	groups := accounting.GroupByType(sampleChart())
	require.Len(t, groups, len(domain.AccountTypeOrder))
	for i, g := range groups {
		assert.Equal(t, domain.AccountTypeOrder[i], g.Type)
		assert.Len(t, g.Accounts, 1)
	}

	empty := accounting.GroupByType(nil)
	require.Len(t, empty, 5)
	assert.NotNil(t, empty[0].Accounts)
}
