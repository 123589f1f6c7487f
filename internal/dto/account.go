package dto

import (
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Number      string `json:"number" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,max=100"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"max=255"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Number      *string `json:"number" binding:"omitempty,max=20"`
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Type        *string `json:"type"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// ToAccountUpdate converts the request into a domain update.
func (r UpdateAccountRequest) ToAccountUpdate() domain.AccountUpdate {
	return domain.AccountUpdate{
		Number:      r.Number,
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
	}
}

// ListAccountsResponse wraps the chart of accounts, ordered by number.
type ListAccountsResponse struct {
	Accounts []domain.Account `json:"accounts"`
}

// AccountGroupsResponse lists accounts grouped by type.
type AccountGroupsResponse struct {
	Groups []domain.AccountGroup `json:"groups"`
}

// NextAccountNumberResponse carries a suggested unused account number.
type NextAccountNumberResponse struct {
	Number string `json:"number"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID int64           `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

// DeleteAccountResponse reports a delete together with the journal entries removed with it.
type DeleteAccountResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	DeletedEntries int    `json:"deletedEntries"`
}
