package domain

import (
	"strings"
	"time"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Revenue   AccountType = "Revenue"
	Expense   AccountType = "Expense"
)

// AccountTypeOrder is the fixed order used when accounts are grouped by type.
var AccountTypeOrder = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// ParseAccountType resolves a type name case-insensitively.
func ParseAccountType(s string) (AccountType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AccountTypeOrder {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypeOrder {
		if t == known {
			return true
		}
	}
	return false
}

// Account is one line of the chart of accounts.
type Account struct {
	ID          int64       `json:"id"`          // assigned by the registry counter, immutable
	Number      string      `json:"number"`      // unique, lexicographic sort key
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// AccountGroup is a set of accounts sharing one type.
type AccountGroup struct {
	Type     AccountType `json:"type"`
	Accounts []Account   `json:"accounts"`
}

// AccountUpdate holds a partial account update. Nil fields are left unchanged.
type AccountUpdate struct {
	Number      *string
	Name        *string
	Type        *string
	Description *string
}
