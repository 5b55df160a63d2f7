package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/repository"
)

// compile-time check that *DB implements repository.AccountRepository
var _ repository.AccountRepository = (*DB)(nil)

// CreateAccount inserts a new account. The identity bridge is the only
// caller; it looks up by email first, so a UNIQUE failure here means
// two requests raced on the same email. The loser gets
// apperror.ErrConflict and can retry the lookup.
func (db *DB) CreateAccount(ctx context.Context, acct *model.Account) error {
	acct.ID = xid.New().String()
	now := time.Now().UTC()
	acct.CreatedAt = now
	acct.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO accounts (id, email, first_name, last_name, password_usable, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		acct.ID,
		acct.Email,
		acct.FirstName,
		acct.LastName,
		acct.PasswordUsable,
		acct.CreatedAt,
		acct.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("account", acct.Email)
		}
		return fmt.Errorf("sqlite: inserting account (email=%s): %w", acct.Email, err)
	}

	return nil
}

// GetAccountByEmail returns the account whose handle is the given
// normalized email. Returns apperror.ErrNotFound when none exists.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	acct, err := db.getAccount(ctx, "email", email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("account", email)
		}
		return nil, fmt.Errorf("sqlite: getting account by email %s: %w", email, err)
	}
	return acct, nil
}

// GetAccountByID returns the account with the given internal ID.
func (db *DB) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	acct, err := db.getAccount(ctx, "id", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("account", id)
		}
		return nil, fmt.Errorf("sqlite: getting account %s: %w", id, err)
	}
	return acct, nil
}

func (db *DB) getAccount(ctx context.Context, column, value string) (*model.Account, error) {
	var a model.Account
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, password_usable, created_at, updated_at
		 FROM accounts WHERE `+column+` = ?`,
		value,
	).Scan(
		&a.ID,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&a.PasswordUsable,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
