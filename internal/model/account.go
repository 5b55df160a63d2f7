package model

import (
	"strings"
	"time"
)

// Account is a login-capable identity keyed by its normalized email.
//
// Accounts are created exclusively by the identity bridge, never by a
// signup form, and never carry a usable password: PasswordUsable is
// always false here. The explicit flag (rather than a nullable hash
// column) distinguishes "passwordless by design" from "password
// forgotten": any credential-based login attempt against such an
// account must fail outright.
//
// First/last name are copied from the registration that created the
// account and are never overwritten on reuse (first-write-wins).
type Account struct {
	ID             string    `json:"id"             db:"id"`
	Email          string    `json:"email"          db:"email"` // unique handle, normalized
	FirstName      string    `json:"firstName"      db:"first_name"`
	LastName       string    `json:"lastName"       db:"last_name"`
	PasswordUsable bool      `json:"passwordUsable" db:"password_usable"`
	CreatedAt      time.Time `json:"createdAt"      db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt"      db:"updated_at"`
}

// DisplayName is the name stamped onto topics and posts authored by
// this account: "First Last" stripped, falling back to the email when
// both names are blank.
func (a *Account) DisplayName() string {
	if name := strings.TrimSpace(a.FirstName + " " + a.LastName); name != "" {
		return name
	}
	return a.Email
}
