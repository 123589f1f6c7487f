package domain

import "time"

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// SupportedCurrencies are the display currencies a profile may select.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "CAD", "AUD"}

// User represents a user of the application in the domain.
// Each user owns exactly one ledger, keyed by UserID.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	FullName       string       `json:"fullName"`
	BusinessName   string       `json:"businessName"`
	Phone          string       `json:"phone"`
	Address        string       `json:"address"`
	TaxID          string       `json:"taxId"`
	Currency       string       `json:"currency"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ProfileUpdate holds optional profile changes.
type ProfileUpdate struct {
	FullName     *string
	BusinessName *string
	Phone        *string
	Address      *string
	TaxID        *string
	Currency     *string
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.BusinessName == nil && p.Phone == nil &&
		p.Address == nil && p.TaxID == nil && p.Currency == nil
}

// GoogleIdentity is the verified identity taken from a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}
