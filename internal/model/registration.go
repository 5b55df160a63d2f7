// Package model defines the data structures used throughout the application.
package model

import (
	"strings"
	"time"
)

// Registration is a submitted membership application.
//
// Email is stored lowercased and trimmed; the registrations table
// carries a UNIQUE constraint on it. Registrations are append-only:
// the application never updates or deletes them, it only reads them
// back for the identity bridge and the members leaderboard.
type Registration struct {
	ID          string     `json:"id"          db:"id"`
	FirstName   string     `json:"firstName"   db:"first_name"`
	LastName    string     `json:"lastName"    db:"last_name"`
	Email       string     `json:"email"       db:"email"`
	Cohort      string     `json:"cohort"      db:"cohort"`
	Campus      string     `json:"campus"      db:"campus"`
	DateOfBirth *time.Time `json:"dateOfBirth" db:"date_of_birth"` // optional
	Motivation  string     `json:"motivation"  db:"motivation"`    // optional free text
	CreatedAt   time.Time  `json:"createdAt"   db:"created_at"`
}

// FullName returns "FirstName LastName" with surrounding whitespace
// stripped. It is empty when both name fields are blank.
func (r *Registration) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// DisplayName is the name shown on the members page: the full name,
// falling back to the email address when both names are blank.
func (r *Registration) DisplayName() string {
	if name := r.FullName(); name != "" {
		return name
	}
	return r.Email
}

// NormalizeEmail applies the canonical email normalization used at
// every write and lookup: trim surrounding whitespace, lowercase.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
