package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	sqlite3 "github.com/mattn/go-sqlite3"
)

const userColumns = `user_id, username, email, password_hash, full_name, business_name, phone, address,
	tax_id, currency, auth_provider, provider_user_id, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.UserID, user.Username, user.Email, user.PasswordHash, user.FullName, user.BusinessName,
		user.Phone, user.Address, user.TaxID, user.Currency, string(user.AuthProvider), user.ProviderUserID,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("username or email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, password_hash = ?, full_name = ?, business_name = ?, phone = ?, address = ?,
		    tax_id = ?, currency = ?, auth_provider = ?, provider_user_id = ?, updated_at = ?
		WHERE user_id = ?`,
		user.Email, user.PasswordHash, user.FullName, user.BusinessName, user.Phone, user.Address,
		user.TaxID, user.Currency, string(user.AuthProvider), user.ProviderUserID, user.UpdatedAt, user.UserID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
}

func (r *UserRepository) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users
		WHERE username = ? COLLATE NOCASE OR (email <> '' AND email = ? COLLATE NOCASE) LIMIT 1`, identifier, identifier)
}

func (r *UserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE auth_provider = ? AND provider_user_id = ?`, string(provider), providerUserID)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	var provider string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.BusinessName,
		&u.Phone, &u.Address, &u.TaxID, &u.Currency, &provider, &u.ProviderUserID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u.AuthProvider = domain.AuthProvider(provider)
	return &u, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
