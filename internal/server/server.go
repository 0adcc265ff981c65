// Package server wires handlers, middleware, and routes together and owns
// the HTTP server lifecycle.
//
// This is the composition root: New assembles the whole dependency chain
// (DB → repositories → services → handlers) in one place, so nothing else
// in the codebase constructs its own dependencies.
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
	"github.com/go-chi/cors"

	"github.com/sakif/todo-backend/internal/auth"
	"github.com/sakif/todo-backend/internal/config"
	"github.com/sakif/todo-backend/internal/handler"
	"github.com/sakif/todo-backend/internal/middleware"
	sqliteRepo "github.com/sakif/todo-backend/internal/repository/sqlite"
	"github.com/sakif/todo-backend/internal/service"
)

// Server holds the router and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server from the given configuration, assembling the full
// dependency chain:
//
//	sqlite.DB → UserDB/TodoDB → AuthService/TodoService → handlers
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler layer
// ever sees HTTP.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
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

// setupRoutes configures middleware and all route handlers.
//
// Routes:
//
//	GET  /auth/github          → redirect to GitHub consent
//	GET  /auth/github/callback → complete OAuth, redirect with token
//	GET  /todo                 → list own todos          (auth)
//	POST /todo                 → create todo             (auth)
//	PUT  /todo                 → toggle todo completion  (auth)
//	GET  /me                   → current user or null    (optional auth)
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The frontend is an editor extension served from an arbitrary
	// origin, so the API allows all origins.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	github := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	authService := service.NewAuthService(s.db.Users(), tokens, s.logger)
	todoService := service.NewTodoService(s.db.Todos(), s.logger)

	authHandler := handler.NewAuthHandler(github, authService, s.config.TokenRedirectURL, s.logger)
	todoHandler := handler.NewTodoHandler(todoService, s.logger)

	s.router.Get("/auth/github", authHandler.HandleGitHubLogin)
	s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)

	s.router.Route("/todo", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/", todoHandler.HandleList)
		r.Post("/", todoHandler.HandleCreate)
		r.Put("/", todoHandler.HandleToggle)
	})

	s.router.With(auth.OptionalAuth(tokens)).Get("/me", authHandler.HandleMe)

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database last.
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
