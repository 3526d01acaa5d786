// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the
// database, services, handlers, and middleware are assembled and mapped to
// routes. Keeping it out of main.go means a test can build the exact
// production router without starting a process or binding a port.
//
// DEPENDENCY FLOW:
//
//	config.Config → Server.New() → sqlite.DB → stores → services → handlers
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler layer
// knows HTTP exists.
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
	"github.com/go-chi/httprate"

	"github.com/pawhaus/dog-adoption/internal/auth"
	"github.com/pawhaus/dog-adoption/internal/config"
	"github.com/pawhaus/dog-adoption/internal/handler"
	"github.com/pawhaus/dog-adoption/internal/middleware"
	sqliteRepo "github.com/pawhaus/dog-adoption/internal/repository/sqlite"
	"github.com/pawhaus/dog-adoption/internal/service"
)

// Server owns the router and every resource with a lifecycle — today just
// the database connection, which Start() closes during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain and mounts all routes.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler returns the fully-wired router. Tests mount this on an
// httptest.Server to exercise the API end to end.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start()'s
// signal handling. Start() does this itself; tests call Close directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE MAP:
//
//	GET    /api/                  → welcome banner (public)
//	POST   /api/register          → create account (public)
//	POST   /api/login             → obtain bearer token (public)
//	GET    /api/dogs              → list available dogs        (auth)
//	POST   /api/dogs/register     → create a listing           (auth)
//	POST   /api/dogs/{id}/adopt   → adopt a dog                (auth)
//	DELETE /api/dogs/{id}         → remove own listing         (auth)
//	GET    /api/dogs/registered   → own listings, ?status=     (auth)
//	GET    /api/dogs/adopted      → dogs the caller adopted    (auth)
//
// MIDDLEWARE ORDER MATTERS — it runs top to bottom:
// RequestID first so the logger can include it, RealIP before the rate
// limiter so limits key on the real client address, Recoverer innermost of
// the globals so a panic in any handler still produces a logged 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.RequestLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders)

	// The API is consumed by browsers on other origins, so CORS is wide
	// open. Credentials ride in the Authorization header, never cookies,
	// which is why AllowCredentials stays false.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Per-IP rate limit across the whole API (default 100 requests per
	// 15 minutes). httprate answers 429 with a plain text body once the
	// window is exhausted.
	s.router.Use(httprate.LimitByIP(s.cfg.RateLimit.Requests, s.cfg.RateLimit.Window))

	tokens, err := auth.NewTokenService(s.cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.cfg.Auth.BcryptCost)

	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	dogService := service.NewDogService(s.db.Dogs(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	dogHandler := handler.NewDogHandler(dogService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("Welcome to the Dog Adoption API!"))
		})

		// Public: the only way in without a token.
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)

		// Everything under /api/dogs requires a valid bearer token.
		r.Route("/dogs", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/", dogHandler.HandleListAvailable)
			r.Post("/register", dogHandler.HandleRegister)
			r.Get("/registered", dogHandler.HandleListRegistered)
			r.Get("/adopted", dogHandler.HandleListAdopted)
			r.Post("/{id}/adopt", dogHandler.HandleAdopt)
			r.Delete("/{id}", dogHandler.HandleRemove)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, and finally close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
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
			slog.String("addr", s.cfg.Server.Addr),
			slog.String("database", s.cfg.Database.Path),
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
