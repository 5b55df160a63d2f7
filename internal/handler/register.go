package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/service"
	"github.com/sakif/campushub/internal/session"
)

// RegisterHandler serves the registration form and processes
// submissions. A successful submission persists the registration,
// bridges it to a login-capable account, establishes the session, and
// redirects to the forum.
type RegisterHandler struct {
	registrations *service.RegistrationService
	identity      *service.IdentityService
	sessions      *session.Manager
	render        *Renderer
	logger        *slog.Logger
}

func NewRegisterHandler(
	registrations *service.RegistrationService,
	identity *service.IdentityService,
	sessions *session.Manager,
	render *Renderer,
	logger *slog.Logger,
) *RegisterHandler {
	return &RegisterHandler{
		registrations: registrations,
		identity:      identity,
		sessions:      sessions,
		render:        render,
		logger:        logger,
	}
}

type registerPage struct {
	basePage
	Form   service.RegistrationInput
	Errors apperror.ValidationErrors
}

// HandleForm serves the empty registration form.
//
// HTTP: GET /register/
func (h *RegisterHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, "register.html", registerPage{
		basePage: h.render.base(r.Context(), "Register", "register"),
	})
}

// HandleSubmit validates and persists a registration.
//
// HTTP: POST /register/
//
// Validation failures (including a duplicate email) re-render the form
// with field-tagged messages and the submitted values. On success the
// identity bridge signs the session in and the browser is redirected
// to the forum.
func (h *RegisterHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	input := service.RegistrationInput{
		FirstName:   r.PostFormValue("first_name"),
		LastName:    r.PostFormValue("last_name"),
		Email:       r.PostFormValue("email"),
		Cohort:      r.PostFormValue("cohort"),
		Campus:      r.PostFormValue("campus"),
		DateOfBirth: r.PostFormValue("date_of_birth"),
		Motivation:  r.PostFormValue("motivation"),
	}

	reg, err := h.registrations.Register(r.Context(), input)
	if err != nil {
		var ve apperror.ValidationErrors
		if errors.As(err, &ve) {
			h.render.render(w, "register.html", registerPage{
				basePage: h.render.base(r.Context(), "Register", "register"),
				Form:     input,
				Errors:   ve,
			})
			return
		}
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.identity.BridgeFromRegistration(r.Context(), reg); err != nil {
		h.logger.Error("identity bridge failed",
			slog.String("registrationID", reg.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(r.Context(), "Welcome! Your registration is complete and you are logged in.")
	http.Redirect(w, r, "/forum/", http.StatusSeeOther)
}
