package services

import (
	"context"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCode trades an authorization code for Google tokens and returns the
	// identity from the validated ID token.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error)
}
