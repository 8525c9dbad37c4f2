// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "composition root" — the one place where the whole
// dependency chain is assembled:
//
//	sqlite.DB → services (auth/todo/profile) → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below this package knows
// how anything else is constructed.
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

	"github.com/sakif/todo-api/internal/auth"
	"github.com/sakif/todo-api/internal/handler"
	"github.com/sakif/todo-api/internal/middleware"
	sqliteRepo "github.com/sakif/todo-api/internal/repository/sqlite"
	"github.com/sakif/todo-api/internal/service"
)

// Config holds server configuration, loaded from the environment in
// cmd/server/main.go.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string // required — NewTokenService rejects short/empty secrets
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown to flush the WAL and release the file
// lock.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, wires the dependency chain, and
// registers all routes. Returns an error (rather than continuing with a
// weaker setup) if the JWT secret is unusable — an unauthenticated todo API
// is not a degraded mode worth having.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, handlers, and the route tree.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register         → register + token     (no auth)
//	POST   /api/auth/login            → login + token        (no auth)
//	GET    /api/auth/me               → current user         (bearer)
//	GET    /api/todo                  → list caller's items  (bearer)
//	GET    /api/todo/{id}             → one item             (bearer)
//	POST   /api/todo                  → create item          (bearer)
//	PUT    /api/todo/{id}             → replace item         (bearer)
//	DELETE /api/todo/{id}             → delete item          (bearer)
//	GET    /api/userprofiles          → list profiles        (no auth)
//	GET    /api/userprofiles/{id}     → one profile          (no auth)
//	POST   /api/userprofiles          → create profile       (no auth)
//	PUT    /api/userprofiles/{id}     → replace profile      (no auth)
//	DELETE /api/userprofiles/{id}     → delete profile       (no auth)
//
// MIDDLEWARE ORDER MATTERS:
// TraceID runs first so every later stage (logging, recovery, error bodies)
// can read the ID; Recover wraps everything below it as the last-resort
// translator for panics.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return err
	}
	passwords := auth.NewPasswordService()

	s.router.Use(middleware.TraceID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Recover(s.logger))

	// Unmatched paths (including non-numeric {id} segments) get the same
	// error body as everything else.
	s.router.NotFound(handler.NotFoundHandler)

	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	todoService := service.NewTodoService(s.db.Todos(), s.logger)
	profileService := service.NewProfileService(s.db.Profiles(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	todoHandler := handler.NewTodoHandler(todoService, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)

	requireAuth := auth.RequireAuth(tokens, handler.WriteError)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.With(requireAuth).Get("/me", authHandler.HandleMe)
		})

		r.Route("/todo", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", todoHandler.HandleList)
			r.Get("/{id:[0-9]+}", todoHandler.HandleGet)
			r.Post("/", todoHandler.HandleCreate)
			r.Put("/{id:[0-9]+}", todoHandler.HandleUpdate)
			r.Delete("/{id:[0-9]+}", todoHandler.HandleDelete)
		})

		r.Route("/userprofiles", func(r chi.Router) {
			r.Get("/", profileHandler.HandleList)
			r.Get("/{id:[0-9]+}", profileHandler.HandleGet)
			r.Post("/", profileHandler.HandleCreate)
			r.Put("/{id:[0-9]+}", profileHandler.HandleUpdate)
			r.Delete("/{id:[0-9]+}", profileHandler.HandleDelete)
		})
	})

	return nil
}

// Handler exposes the assembled router — used by the HTTP-level tests with
// net/http/httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without serving. Start does this
// itself; Close exists for tests and callers that never call Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server and blocks until shutdown (SIGINT/SIGTERM).
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait up to 30s for in-flight requests to finish
// 3. Close the database (deferred — runs even on a panic)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
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
