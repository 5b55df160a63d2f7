// Package session wraps the scs session manager with the two things
// this application keeps in a session: the acting account's ID, and a
// queue of one-time notice messages drained by the next rendered page.
//
// Every request passes through Manager.LoadAndSave (wired in the
// server), which loads session data into the request context. All
// methods here operate on that context, so "who is acting" travels the
// call path explicitly rather than through ambient globals.
package session

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// scs gob-encodes session values held as interface{}; the flash queue
// type must be registered for that to round-trip.
func init() {
	gob.Register([]string{})
}

const (
	accountIDKey = "accountID"
	flashKey     = "flash"
)

// Manager owns the session lifecycle. Session data lives in scs's
// in-memory store; this is a single-process application and sessions
// are intentionally ephemeral.
type Manager struct {
	scs *scs.SessionManager
}

// NewManager creates a session manager with the given lifetime.
func NewManager(lifetime time.Duration) *Manager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.Name = "campushub_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return &Manager{scs: sm}
}

// LoadAndSave is the middleware that loads session data before the
// handler runs and commits it afterwards. It must wrap the whole
// router.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(next)
}

// SignIn binds the session to the given account. The session token is
// renewed first so a pre-login session ID can't be fixated onto the
// authenticated session. Calling SignIn again for the same account is
// harmless; establishing a session is idempotent per request.
func (m *Manager) SignIn(ctx context.Context, accountID string) error {
	if err := m.scs.RenewToken(ctx); err != nil {
		return fmt.Errorf("session: renewing token: %w", err)
	}
	m.scs.Put(ctx, accountIDKey, accountID)
	return nil
}

// SignOut destroys the session. Safe to call with no session present.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.scs.Destroy(ctx); err != nil {
		return fmt.Errorf("session: destroying session: %w", err)
	}
	return nil
}

// AccountID returns the acting account's ID, or "" when no identity
// has been established.
func (m *Manager) AccountID(ctx context.Context) string {
	return m.scs.GetString(ctx, accountIDKey)
}

// Flash appends a one-time notice to the session's message queue.
func (m *Manager) Flash(ctx context.Context, message string) {
	queue, _ := m.scs.Get(ctx, flashKey).([]string)
	m.scs.Put(ctx, flashKey, append(queue, message))
}

// PopFlashes drains the notice queue: the messages are returned once
// and removed from the session.
func (m *Manager) PopFlashes(ctx context.Context) []string {
	queue, _ := m.scs.Pop(ctx, flashKey).([]string)
	return queue
}

// Load attaches empty session data for the given token to ctx. Tests
// use it to exercise session-dependent code without an HTTP round
// trip; request handling goes through LoadAndSave instead.
func (m *Manager) Load(ctx context.Context, token string) (context.Context, error) {
	return m.scs.Load(ctx, token)
}
