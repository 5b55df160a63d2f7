// Package server wires the application together: database, session
// manager, services, handlers, routes, and the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/campushub/internal/handler"
	"github.com/sakif/campushub/internal/middleware"
	sqliteRepo "github.com/sakif/campushub/internal/repository/sqlite"
	"github.com/sakif/campushub/internal/service"
	"github.com/sakif/campushub/internal/session"
)

// Config holds server configuration, loaded from the environment in
// cmd/server.
type Config struct {
	Port            int
	TemplateDir     string
	StaticDir       string
	DBPath          string
	SessionLifetime time.Duration
}

// Server owns the router, the database connection, and the session
// manager. The database is closed during graceful shutdown.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	sessions *session.Manager
}

// New assembles the dependency graph:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// The session manager sits alongside: its LoadAndSave middleware wraps
// the whole router, and the identity service writes into it.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: session.NewManager(cfg.SessionLifetime),
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, services, handlers, and the route
// table.
//
// ROUTES:
//
//	GET       /              landing page
//	GET       /about/        static page
//	GET       /members/      contribution leaderboard
//	GET       /contact/      static page
//	GET,POST  /register/     registration form; bridges identity on success
//	GET,POST  /forum/        topic list; inline topic creation (session)
//	GET,POST  /topic/{id}/   topic thread; inline reply (session)
//	GET,POST  /login/        email-only login
//	POST      /logout/       clear session
//	GET       /static/*      css and assets
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Services. *sqliteRepo.DB implements all three repository
	// interfaces, so it is passed wherever one is needed.
	registrations := service.NewRegistrationService(s.db, s.logger)
	identity := service.NewIdentityService(s.db, s.db, s.sessions, s.logger)
	forum := service.NewForumService(s.db, s.logger)
	leaderboard := service.NewLeaderboardService(s.db, s.db, s.logger)

	render, err := handler.NewRenderer(s.config.TemplateDir, s.sessions, identity, s.logger)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	pages := handler.NewPageHandler(render)
	register := handler.NewRegisterHandler(registrations, identity, s.sessions, render, s.logger)
	auth := handler.NewAuthHandler(identity, s.sessions, render, s.logger)
	forumHandler := handler.NewForumHandler(forum, identity, s.sessions, render, s.logger)
	members := handler.NewMembersHandler(leaderboard, render, s.logger)

	s.router.Get("/", pages.HandleHome)
	s.router.Get("/about/", pages.HandleAbout)
	s.router.Get("/contact/", pages.HandleContact)
	s.router.Get("/members/", members.HandleMembers)

	s.router.Get("/register/", register.HandleForm)
	s.router.Post("/register/", register.HandleSubmit)

	s.router.Get("/forum/", forumHandler.HandleForum)
	s.router.Post("/forum/", forumHandler.HandleCreateTopic)
	s.router.Get("/topic/{id}/", forumHandler.HandleTopic)
	s.router.Post("/topic/{id}/", forumHandler.HandleCreatePost)

	s.router.Get("/login/", auth.HandleForm)
	s.router.Post("/login/", auth.HandleLogin)
	s.router.Post("/logout/", auth.HandleLogout)

	return nil
}

// Handler returns the complete HTTP handler: the router wrapped in the
// session middleware. Start uses it, and tests can serve it directly.
func (s *Server) Handler() http.Handler {
	return s.sessions.LoadAndSave(s.router)
}

// Close releases the server's database connection. Start closes it on
// shutdown; only callers that never call Start (tests) need this.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests,
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
