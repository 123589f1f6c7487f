package services

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateProfile applies the given profile changes. It fails with ErrValidation when
	// the update is empty.
	UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error)

	// ChangePassword replaces the password after checking the current one. A wrong
	// current password fails with ErrUnauthorized, a weak new one with ErrValidation.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Register creates a user with a password. Duplicate usernames or emails fail with ErrDuplicate.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser checks a password against the user found by username or email.
	AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error)

	// FindOrCreateOAuthUser returns the user linked to a Google identity, linking or
	// creating one as needed.
	FindOrCreateOAuthUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
