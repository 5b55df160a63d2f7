package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/repository"
	"github.com/sakif/campushub/internal/session"
)

// IdentityService maps registrations (or bare emails) onto accounts
// and establishes sessions. It is the only part of the system that
// creates or looks up accounts: given a normalized email it produces
// exactly one login-capable account and binds the session to it, with
// no password ever required or stored.
type IdentityService struct {
	accounts repository.AccountRepository
	regs     repository.RegistrationRepository
	sessions *session.Manager
	logger   *slog.Logger
}

func NewIdentityService(
	accounts repository.AccountRepository,
	regs repository.RegistrationRepository,
	sessions *session.Manager,
	logger *slog.Logger,
) *IdentityService {
	return &IdentityService{
		accounts: accounts,
		regs:     regs,
		sessions: sessions,
		logger:   logger,
	}
}

// BridgeFromRegistration turns a registration into a login-capable
// account and signs the session in as it.
//
// If an account already exists for the registration's email it is
// reused as-is: the names on the account are first-write-wins and are
// never overwritten from a later registration. Otherwise a new
// passwordless account is created with the registration's names.
// Registration validation happens upstream, so this path only fails on
// storage errors.
func (s *IdentityService) BridgeFromRegistration(ctx context.Context, reg *model.Registration) (*model.Account, error) {
	acct, err := s.ensureAccount(ctx, model.NormalizeEmail(reg.Email), reg.FirstName, reg.LastName)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SignIn(ctx, acct.ID); err != nil {
		return nil, fmt.Errorf("bridging registration %s: %w", reg.ID, err)
	}
	return acct, nil
}

// BridgeFromEmail is the direct login path: normalize the email, reuse
// the account if one exists, fall back to bridging the registration if
// only that exists, and fail with apperror.ErrNotFound when neither
// does (the caller redirects to the registration form).
func (s *IdentityService) BridgeFromEmail(ctx context.Context, rawEmail string) (*model.Account, error) {
	email := model.NormalizeEmail(rawEmail)
	if email == "" {
		ve := apperror.ValidationErrors{}
		ve.Add("email", "email is required")
		return nil, ve
	}

	acct, err := s.accounts.GetAccountByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.sessions.SignIn(ctx, acct.ID); err != nil {
			return nil, fmt.Errorf("logging in %s: %w", email, err)
		}
		s.logger.Info("login", slog.String("accountID", acct.ID))
		return acct, nil
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("looking up account %s: %w", email, err)
	}

	reg, err := s.regs.GetRegistrationByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("member", email)
		}
		return nil, fmt.Errorf("looking up registration %s: %w", email, err)
	}

	return s.BridgeFromRegistration(ctx, reg)
}

// CurrentAccount resolves the session identity. It is the single
// answer to "who is acting": apperror.ErrUnauthorized when no session
// is established, or when the session references an account that no
// longer exists.
func (s *IdentityService) CurrentAccount(ctx context.Context) (*model.Account, error) {
	id := s.sessions.AccountID(ctx)
	if id == "" {
		return nil, apperror.Unauthorized("you need to log in to do that")
	}

	acct, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("your session is no longer valid, log in again")
		}
		return nil, fmt.Errorf("resolving session account %s: %w", id, err)
	}
	return acct, nil
}

// Logout clears the session. A no-op when no session exists.
func (s *IdentityService) Logout(ctx context.Context) error {
	return s.sessions.SignOut(ctx)
}

// ensureAccount looks up the account for email, creating a
// passwordless one with the given names if none exists. A concurrent
// create racing on the email UNIQUE constraint loses with ErrConflict,
// in which case the winner's account is fetched and reused.
func (s *IdentityService) ensureAccount(ctx context.Context, email, firstName, lastName string) (*model.Account, error) {
	acct, err := s.accounts.GetAccountByEmail(ctx, email)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("looking up account %s: %w", email, err)
	}

	acct = &model.Account{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		PasswordUsable: false,
	}
	err = s.accounts.CreateAccount(ctx, acct)
	if err == nil {
		s.logger.Info("account created",
			slog.String("accountID", acct.ID),
			slog.String("email", email),
		)
		return acct, nil
	}
	if errors.Is(err, apperror.ErrConflict) {
		return s.accounts.GetAccountByEmail(ctx, email)
	}
	return nil, fmt.Errorf("creating account %s: %w", email, err)
}
