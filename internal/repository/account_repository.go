package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// AccountRepository handles login credential storage. Every lookup is a
// bound-parameter query; usernames are never spliced into SQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByUsername retrieves an account by its unique username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at
		 FROM accounts WHERE username = $1`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return a, nil
}

// Create inserts a new account. A taken username surfaces as a conflict.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		a.Username, a.PasswordHash, a.Role,
	).Scan(&a.ID, &a.CreatedAt)
	return apperrors.Classify(err)
}

// UpdatePassword replaces an account's password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $1 WHERE username = $2`,
		passwordHash, username)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an account by username. Used as the compensating action
// when profile creation fails after the credential was already created.
func (r *AccountRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE username = $1`, username)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
