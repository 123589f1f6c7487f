package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.UserID]; exists {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrDuplicate)
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("username or email already registered: %w", apperrors.ErrDuplicate)
		}
	}
	r.users[user.UserID] = user
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.UserID]; !exists {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	r.users[user.UserID] = user
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.AuthProvider == provider && u.ProviderUserID == providerUserID {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
