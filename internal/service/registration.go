// Package service contains the business logic layer: registration
// validation, the identity bridge, forum authoring, and the members
// leaderboard. Services accept plain values and context, return domain
// models and apperror values, and know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/repository"
)

// Field length limits for registration submissions.
const (
	MaxNameLength       = 100
	MaxEmailLength      = 254
	MaxCohortLength     = 100
	MaxCampusLength     = 100
	MaxMotivationLength = 4000

	dateOfBirthLayout = "2006-01-02" // HTML <input type="date"> format
)

// RegistrationInput is the raw form submission, all fields as entered.
type RegistrationInput struct {
	FirstName   string
	LastName    string
	Email       string
	Cohort      string
	Campus      string
	DateOfBirth string // optional, "YYYY-MM-DD"
	Motivation  string // optional
}

// RegistrationService validates and persists membership applications.
type RegistrationService struct {
	regs   repository.RegistrationRepository
	logger *slog.Logger
}

func NewRegistrationService(regs repository.RegistrationRepository, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		regs:   regs,
		logger: logger,
	}
}

// Register validates the submission and persists it.
//
// All failures surface as apperror.ValidationErrors keyed by field
// name. A duplicate email is caught by the UNIQUE constraint, so two
// racing submissions for the same email cannot both win. The caller
// re-renders the form with the messages; nothing is persisted on
// failure.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput) (*model.Registration, error) {
	reg, ve := s.clean(input)
	if len(ve) > 0 {
		return nil, ve
	}

	if err := s.regs.CreateRegistration(ctx, reg); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			ve := apperror.ValidationErrors{}
			ve.Add("email", "a registration with this email already exists")
			return nil, ve
		}
		s.logger.Error("failed to create registration",
			slog.String("email", reg.Email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating registration: %w", err)
	}

	s.logger.Info("registration created",
		slog.String("id", reg.ID),
		slog.String("email", reg.Email),
	)

	return reg, nil
}

// clean normalizes and validates the raw input. The returned
// registration is only meaningful when the error map is empty.
func (s *RegistrationService) clean(input RegistrationInput) (*model.Registration, apperror.ValidationErrors) {
	ve := apperror.ValidationErrors{}

	reg := &model.Registration{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      model.NormalizeEmail(input.Email),
		Cohort:     strings.TrimSpace(input.Cohort),
		Campus:     strings.TrimSpace(input.Campus),
		Motivation: strings.TrimSpace(input.Motivation),
	}

	if reg.FirstName == "" {
		ve.Add("first_name", "first name is required")
	} else if len(reg.FirstName) > MaxNameLength {
		ve.Add("first_name", fmt.Sprintf("first name must be %d characters or less", MaxNameLength))
	}

	if reg.LastName == "" {
		ve.Add("last_name", "last name is required")
	} else if len(reg.LastName) > MaxNameLength {
		ve.Add("last_name", fmt.Sprintf("last name must be %d characters or less", MaxNameLength))
	}

	switch {
	case reg.Email == "":
		ve.Add("email", "email is required")
	case len(reg.Email) > MaxEmailLength:
		ve.Add("email", fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	case !validEmail(reg.Email):
		ve.Add("email", "enter a valid email address")
	}

	if len(reg.Cohort) > MaxCohortLength {
		ve.Add("cohort", fmt.Sprintf("cohort must be %d characters or less", MaxCohortLength))
	}
	if len(reg.Campus) > MaxCampusLength {
		ve.Add("campus", fmt.Sprintf("campus must be %d characters or less", MaxCampusLength))
	}
	if len(reg.Motivation) > MaxMotivationLength {
		ve.Add("motivation", fmt.Sprintf("motivation must be %d characters or less", MaxMotivationLength))
	}

	if dob := strings.TrimSpace(input.DateOfBirth); dob != "" {
		t, err := time.Parse(dateOfBirthLayout, dob)
		if err != nil {
			ve.Add("date_of_birth", "enter a valid date (YYYY-MM-DD)")
		} else {
			reg.DateOfBirth = &t
		}
	}

	return reg, ve
}

// validEmail checks email syntax. ParseAddress accepts the RFC 5322
// name-addr form ("Name <a@b>"), which is not a bare address, so the
// parsed address must round-trip to the input.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
