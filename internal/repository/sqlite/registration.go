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

// compile-time check that *DB implements repository.RegistrationRepository
var _ repository.RegistrationRepository = (*DB)(nil)

// CreateRegistration inserts a new registration, generating its ID and
// timestamp.
//
// The email must already be normalized by the caller; the UNIQUE
// constraint on registrations.email backstops it. Two concurrent
// submissions with the same email race on that constraint, and the
// loser gets apperror.ErrConflict, never a silent duplicate.
func (db *DB) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	reg.ID = xid.New().String()
	reg.CreatedAt = time.Now().UTC()

	var dob any
	if reg.DateOfBirth != nil {
		dob = *reg.DateOfBirth
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO registrations
			(id, first_name, last_name, email, cohort, campus, date_of_birth, motivation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID,
		reg.FirstName,
		reg.LastName,
		reg.Email,
		reg.Cohort,
		reg.Campus,
		dob,
		reg.Motivation,
		reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("registration", reg.Email)
		}
		return fmt.Errorf("sqlite: inserting registration (email=%s): %w", reg.Email, err)
	}

	return nil
}

// GetRegistrationByEmail returns the registration with the given
// normalized email. Returns apperror.ErrNotFound when none exists.
func (db *DB) GetRegistrationByEmail(ctx context.Context, email string) (*model.Registration, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, cohort, campus, date_of_birth, motivation, created_at
		 FROM registrations WHERE email = ?`,
		email,
	)

	reg, err := scanRegistration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("registration", email)
		}
		return nil, fmt.Errorf("sqlite: getting registration %s: %w", email, err)
	}
	return reg, nil
}

// ListRegistrations returns all registrations in creation order. The
// leaderboard depends on this ordering for its stable-sort tie-break;
// xid values are time-ordered, so (created_at, id) reproduces insertion
// order even for rows created within the same clock tick.
func (db *DB) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, cohort, campus, date_of_birth, motivation, created_at
		 FROM registrations ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing registrations: %w", err)
	}
	return regs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(s scanner) (*model.Registration, error) {
	var (
		reg model.Registration
		dob sql.NullTime
	)
	err := s.Scan(
		&reg.ID,
		&reg.FirstName,
		&reg.LastName,
		&reg.Email,
		&reg.Cohort,
		&reg.Campus,
		&dob,
		&reg.Motivation,
		&reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		reg.DateOfBirth = &dob.Time
	}
	return &reg, nil
}
