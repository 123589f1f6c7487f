package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, email, password_hash, full_name, business_name, phone, address,
		tax_id, currency, auth_provider, provider_user_id, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.BusinessName,
		user.Phone,
		user.Address,
		user.TaxID,
		user.Currency,
		string(user.AuthProvider),
		user.ProviderUserID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET email = $1, password_hash = $2, full_name = $3, business_name = $4, phone = $5,
            address = $6, tax_id = $7, currency = $8, auth_provider = $9, provider_user_id = $10, updated_at = $11
        WHERE user_id = $12;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.BusinessName,
		user.Phone,
		user.Address,
		user.TaxID,
		user.Currency,
		string(user.AuthProvider),
		user.ProviderUserID,
		user.UpdatedAt,
		user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID)
}

func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE LOWER(username) = LOWER($1) OR (email <> '' AND LOWER(email) = LOWER($1))
		LIMIT 1;`
	return r.findOne(ctx, query, identifier)
}

func (r *PgxUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`
	return r.findOne(ctx, query, string(provider), providerUserID)
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	var provider string
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&u.UserID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.BusinessName,
		&u.Phone,
		&u.Address,
		&u.TaxID,
		&u.Currency,
		&provider,
		&u.ProviderUserID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u.AuthProvider = domain.AuthProvider(provider)
	return &u, nil
}
