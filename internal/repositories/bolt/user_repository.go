package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

// userRecord carries the fields domain.User hides from JSON.
type userRecord struct {
	domain.User
	PasswordHash   string `json:"passwordHash"`
	ProviderUserID string `json:"providerUserId"`
}

func toRecord(u domain.User) userRecord {
	return userRecord{User: u, PasswordHash: u.PasswordHash, ProviderUserID: u.ProviderUserID}
}

func (r userRecord) toDomain() domain.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	u.ProviderUserID = r.ProviderUserID
	return u
}

var errStop = errors.New("stop")

// UserRepository stores users as JSON in BucketUsers keyed by user id.
type UserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketUsers))
		if b.Get([]byte(user.UserID)) != nil {
			return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrDuplicate)
		}
		clash, err := findUser(b, func(u domain.User) bool {
			return (user.Username != "" && strings.EqualFold(u.Username, user.Username)) ||
				(user.Email != "" && strings.EqualFold(u.Email, user.Email))
		})
		if err != nil {
			return err
		}
		if clash != nil {
			return fmt.Errorf("username or email already registered: %w", apperrors.ErrDuplicate)
		}
		return putUser(b, user)
	})
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketUsers))
		if b.Get([]byte(user.UserID)) == nil {
			return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
		}
		return putUser(b, user)
	})
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user *domain.User
	err := r.store.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(BucketUsers)).Get([]byte(userID))
		if data == nil {
			return apperrors.ErrNotFound
		}
		var rec userRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal user %s: %w", userID, err)
		}
		u := rec.toDomain()
		user = &u
		return nil
	})
	return user, err
}

func (r *UserRepository) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return r.find(func(u domain.User) bool {
		return strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier)
	})
}

func (r *UserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.find(func(u domain.User) bool {
		return u.AuthProvider == provider && u.ProviderUserID == providerUserID
	})
}

func (r *UserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	var user *domain.User
	err := r.store.db.View(func(tx *bolt.Tx) error {
		var err error
		user, err = findUser(tx.Bucket([]byte(BucketUsers)), match)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func findUser(b *bolt.Bucket, match func(domain.User) bool) (*domain.User, error) {
	var found *domain.User
	err := b.ForEach(func(k, v []byte) error {
		var rec userRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal user %s: %w", k, err)
		}
		if u := rec.toDomain(); match(u) {
			found = &u
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	return found, nil
}

func putUser(b *bolt.Bucket, user domain.User) error {
	data, err := json.Marshal(toRecord(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return b.Put([]byte(user.UserID), data)
}
