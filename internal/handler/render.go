// Package handler contains the HTTP handlers for all server-rendered
// pages. Handlers parse forms, call services, and translate apperror
// values into the page behaviour the user sees: validation failures
// re-render the originating form with field-tagged messages, missing
// sessions redirect to the login page with a notice, and missing
// records redirect to the nearest recovery page. Mutations always
// redirect after POST.
package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/service"
	"github.com/sakif/campushub/internal/session"
)

// pages rendered from base.html + their own content template.
var pageTemplates = []string{
	"home.html",
	"about.html",
	"contact.html",
	"register.html",
	"login.html",
	"forum.html",
	"topic.html",
	"members.html",
}

// basePage carries the fields every template expects. Page structs
// embed it so templates can reach {{.Title}}, {{.Flashes}} and
// {{.Account}} uniformly.
type basePage struct {
	Title   string
	Active  string // nav highlight: "home", "forum", ...
	Flashes []string
	Account *model.Account // nil when not logged in
}

// Renderer parses the templates once at startup and assembles the
// per-request base page data (drained flash notices, current account).
type Renderer struct {
	templates map[string]*template.Template
	sessions  *session.Manager
	identity  *service.IdentityService
	logger    *slog.Logger
}

func NewRenderer(
	templateDir string,
	sessions *session.Manager,
	identity *service.IdentityService,
	logger *slog.Logger,
) (*Renderer, error) {
	funcs := template.FuncMap{
		"categoryLabel": model.CategoryLabel,
	}

	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
		if err != nil {
			return nil, err
		}
		templates[page] = tmpl
	}

	return &Renderer{
		templates: templates,
		sessions:  sessions,
		identity:  identity,
		logger:    logger,
	}, nil
}

// base builds the shared page data. This drains the flash queue, so
// call it exactly once per rendered response.
func (r *Renderer) base(ctx context.Context, title, active string) basePage {
	bp := basePage{
		Title:   title,
		Active:  active,
		Flashes: r.sessions.PopFlashes(ctx),
	}
	// A page renders the same whether or not someone is logged in,
	// except for the nav; an unauthorized result just leaves Account nil.
	if acct, err := r.identity.CurrentAccount(ctx); err == nil {
		bp.Account = acct
	}
	return bp
}

// render executes the named page template. data must embed basePage.
func (r *Renderer) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := r.templates[page]
	if !ok {
		r.logger.Error("unknown template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		r.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

// redirectUnauthorized sends the user to the login page with a notice.
func redirectUnauthorized(w http.ResponseWriter, req *http.Request, sessions *session.Manager, err error) {
	msg := "you need to log in to do that"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	sessions.Flash(req.Context(), msg)
	http.Redirect(w, req, "/login/", http.StatusSeeOther)
}
