package repositories

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByUsernameOrEmail matches either the username or the email, case-insensitively.
	FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository operations.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
