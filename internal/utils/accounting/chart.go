package accounting

import (
	"sort"
	"strconv"
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

const (
	firstAccountNumber = 1000
	accountNumberStep  = 100
)

// NextAccountNumber suggests the first unused number scanning from 1000 in steps of 100.
// Numbers that are not integers are ignored.
func NextAccountNumber(accounts []domain.Account) string {
	used := make(map[int]struct{}, len(accounts))
	for _, acc := range accounts {
		n, err := strconv.Atoi(strings.TrimSpace(acc.Number))
		if err != nil {
			continue
		}
		used[n] = struct{}{}
	}
	next := firstAccountNumber
	for {
		if _, taken := used[next]; !taken {
			return strconv.Itoa(next)
		}
		next += accountNumberStep
	}
}

// SortAccounts orders accounts by number using plain string comparison.
func SortAccounts(accounts []domain.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Number < accounts[j].Number
	})
}

// GroupByType groups accounts in the fixed type order, keeping their relative order.
// Every type is present, possibly with no accounts.
func GroupByType(accounts []domain.Account) []domain.AccountGroup {
	groups := make([]domain.AccountGroup, len(domain.AccountTypeOrder))
	index := make(map[domain.AccountType]int, len(domain.AccountTypeOrder))
	for i, t := range domain.AccountTypeOrder {
		groups[i] = domain.AccountGroup{Type: t, Accounts: []domain.Account{}}
		index[t] = i
	}
	for _, acc := range accounts {
		if i, ok := index[acc.Type]; ok {
			groups[i].Accounts = append(groups[i].Accounts, acc)
		}
	}
	return groups
}
