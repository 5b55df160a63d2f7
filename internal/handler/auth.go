package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/service"
	"github.com/sakif/campushub/internal/session"
)

// AuthHandler serves the email-only login flow and logout.
//
// There is no password form anywhere: login is the identity bridge
// keyed by email. An email that matches neither an account nor a
// registration redirects to the registration form with a notice.
type AuthHandler struct {
	identity *service.IdentityService
	sessions *session.Manager
	render   *Renderer
	logger   *slog.Logger
}

func NewAuthHandler(
	identity *service.IdentityService,
	sessions *session.Manager,
	render *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

type loginPage struct {
	basePage
	Email  string
	Errors apperror.ValidationErrors
}

// HandleForm serves the login form.
//
// HTTP: GET /login/
func (h *AuthHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, "login.html", loginPage{
		basePage: h.render.base(r.Context(), "Log in", "login"),
	})
}

// HandleLogin bridges the submitted email to an account and signs in.
//
// HTTP: POST /login/
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")

	acct, err := h.identity.BridgeFromEmail(r.Context(), email)
	if err != nil {
		var ve apperror.ValidationErrors
		switch {
		case errors.As(err, &ve):
			h.render.render(w, "login.html", loginPage{
				basePage: h.render.base(r.Context(), "Log in", "login"),
				Email:    email,
				Errors:   ve,
			})
		case errors.Is(err, apperror.ErrNotFound):
			h.sessions.Flash(r.Context(), "We don't know that email yet. Register first.")
			http.Redirect(w, r, "/register/", http.StatusSeeOther)
		default:
			h.logger.Error("login failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	h.sessions.Flash(r.Context(), "Welcome back, "+acct.DisplayName()+"!")
	http.Redirect(w, r, "/forum/", http.StatusSeeOther)
}

// HandleLogout clears the session. A no-op when not logged in.
//
// HTTP: POST /logout/
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", slog.String("error", err.Error()))
	}
	h.sessions.Flash(r.Context(), "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
