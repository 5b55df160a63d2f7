package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/campushub/internal/apperror"
)

func newTestRegistrationService(repo *fakeRegistrationRepo) *RegistrationService {
	return NewRegistrationService(repo, testLogger())
}

func validInput() RegistrationInput {
	return RegistrationInput{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		Cohort:    "2026",
		Campus:    "North",
	}
}

func TestRegister_Valid(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	reg, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.ID == "" {
		t.Error("Register() did not set an ID")
	}
	if reg.Email != "ann@example.com" {
		t.Errorf("Email = %q, want %q", reg.Email, "ann@example.com")
	}
	if len(repo.regs) != 1 {
		t.Errorf("stored registrations = %d, want 1", len(repo.regs))
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	input := validInput()
	input.Email = "  Foo@BAR.com "

	reg, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.Email != "foo@bar.com" {
		t.Errorf("Email = %q, want %q", reg.Email, "foo@bar.com")
	}
}

func TestRegister_RequiredFields(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	_, err := svc.Register(context.Background(), RegistrationInput{})

	var ve apperror.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("Register() error = %v, want ValidationErrors", err)
	}
	for _, field := range []string{"first_name", "last_name", "email"} {
		if len(ve[field]) == 0 {
			t.Errorf("expected a message for field %q, got none", field)
		}
	}
	if len(repo.regs) != 0 {
		t.Error("nothing should be persisted on validation failure")
	}
}

func TestRegister_WhitespaceOnlyNamesRejected(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	input := validInput()
	input.FirstName = "   "

	_, err := svc.Register(context.Background(), input)

	var ve apperror.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("Register() error = %v, want ValidationErrors", err)
	}
	if len(ve["first_name"]) == 0 {
		t.Error("whitespace-only first name should fail validation")
	}
}

func TestRegister_InvalidEmailSyntax(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	for _, bad := range []string{"not-an-email", "a@", "@b.com", "Ann Lee <ann@example.com>"} {
		input := validInput()
		input.Email = bad

		_, err := svc.Register(context.Background(), input)

		var ve apperror.ValidationErrors
		if !errors.As(err, &ve) || len(ve["email"]) == 0 {
			t.Errorf("email %q should fail validation, got err = %v", bad, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	// Same email, different casing: still a duplicate after normalization.
	input := validInput()
	input.Email = "ANN@example.com"

	_, err := svc.Register(context.Background(), input)

	var ve apperror.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("duplicate Register() error = %v, want ValidationErrors", err)
	}
	if len(ve["email"]) == 0 {
		t.Error("duplicate email should be reported on the email field")
	}
	if len(repo.regs) != 1 {
		t.Errorf("stored registrations = %d, want 1 (duplicate persisted nothing)", len(repo.regs))
	}
}

func TestRegister_DateOfBirth(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	input := validInput()
	input.DateOfBirth = "2001-05-17"

	reg, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.DateOfBirth == nil {
		t.Fatal("DateOfBirth should be set")
	}
	if got := reg.DateOfBirth.Format("2006-01-02"); got != "2001-05-17" {
		t.Errorf("DateOfBirth = %s, want 2001-05-17", got)
	}
}

func TestRegister_InvalidDateOfBirth(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	input := validInput()
	input.DateOfBirth = "17/05/2001"

	_, err := svc.Register(context.Background(), input)

	var ve apperror.ValidationErrors
	if !errors.As(err, &ve) || len(ve["date_of_birth"]) == 0 {
		t.Errorf("malformed date should fail validation, got err = %v", err)
	}
}

func TestRegister_OptionalFieldsMayBeEmpty(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo)

	input := RegistrationInput{
		FirstName: "Bo",
		LastName:  "Roe",
		Email:     "bo@example.com",
	}

	reg, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.DateOfBirth != nil {
		t.Error("empty date of birth should stay nil")
	}
}

func TestRegister_RepositoryError(t *testing.T) {
	repo := newFakeRegistrationRepo()
	repo.createErr = errors.New("disk full")
	svc := newTestRegistrationService(repo)

	_, err := svc.Register(context.Background(), validInput())
	if err == nil {
		t.Fatal("Register() should propagate repository errors")
	}
	var ve apperror.ValidationErrors
	if errors.As(err, &ve) {
		t.Error("a storage failure must not be reported as a validation error")
	}
}
