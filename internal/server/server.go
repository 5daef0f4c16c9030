// Package server wires the organizer together and runs the HTTP server.
//
// This is the composition root: New assembles
//
//	sqlite.DB → services → handlers → chi routes
//
// and nothing else in the tree constructs its own dependencies. Keeping the
// wiring here means tests can build the full application with an in-memory
// database and drive it through Handler().
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/study-organizer/internal/config"
	"github.com/sakif/study-organizer/internal/handler"
	"github.com/sakif/study-organizer/internal/middleware"
	sqliteRepo "github.com/sakif/study-organizer/internal/repository/sqlite"
	"github.com/sakif/study-organizer/internal/service"
	"github.com/sakif/study-organizer/web"
)

const shutdownTimeout = 30 * time.Second

// Server owns the router and the database connection. The connection is
// closed by Start on shutdown, or by Close.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, seeds it, and registers all routes.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it is not confused with
// the modernc driver.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := service.Initialize(context.Background(), db, cfg.Seed.Subjects, logger); err != nil {
		db.Close()
		return nil, err
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

// setupRoutes configures middleware and handlers.
//
// ROUTES:
// GET       /                        → home (profile summary, search box)
// GET/POST  /profile                 → profile form / update
// GET       /calendar?y&m            → event month view
// POST      /calendar/add            → create event
// POST      /calendar/delete/{id}    → delete event
// GET       /checkin?y&m             → check-in month view
// POST      /checkin/toggle          → set check-in (JSON)
// GET/POST  /questions               → list / ask
// POST      /questions/answer/{id}   → set or clear answer
// GET/POST  /notebook?d              → bullets for a day / save
// GET/POST  /grades                  → list / add subject or grade
// POST      /grades/delete/{id}      → delete grade
// GET       /search?q                → keyword lookup (JSON)
// GET       /static/*                → embedded assets
//
// MIDDLEWARE ORDER:
// RequestID runs first so the logger and every handler see the id.
func (s *Server) setupRoutes() error {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	views, err := handler.NewViews(web.Templates())
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	flasher := handler.NewFlasher([]byte(s.config.Session.Secret), s.logger)
	rd := handler.NewRenderer(views, flasher, s.logger)

	// The services receive the store interface, the handlers receive the
	// services. Handlers never touch the database.
	home := handler.NewHomeHandler(service.NewProfileService(s.db, s.logger), rd)
	cal := handler.NewCalendarHandler(
		service.NewCalendarService(s.db, s.logger),
		service.NewCheckinService(s.db, s.logger),
		rd,
	)
	questions := handler.NewQuestionHandler(service.NewQuestionService(s.db, s.logger), rd)
	notebook := handler.NewNotebookHandler(service.NewNotebookService(s.db, s.logger), rd)
	grades := handler.NewGradeHandler(service.NewGradeService(s.db, s.logger), rd)

	s.router.Get("/", home.HandleIndex)
	s.router.Get("/profile", home.HandleProfile)
	s.router.Post("/profile", home.HandleProfileUpdate)
	s.router.Get("/search", home.HandleSearch)

	s.router.Route("/calendar", func(r chi.Router) {
		r.Get("/", cal.HandleCalendar)
		r.Post("/add", cal.HandleAddEvent)
		r.Post("/delete/{id:[0-9]+}", cal.HandleDeleteEvent)
	})
	s.router.Route("/checkin", func(r chi.Router) {
		r.Get("/", cal.HandleCheckin)
		r.Post("/toggle", cal.HandleToggleCheckin)
	})
	s.router.Route("/questions", func(r chi.Router) {
		r.Get("/", questions.HandleList)
		r.Post("/", questions.HandleAsk)
		r.Post("/answer/{id:[0-9]+}", questions.HandleAnswer)
	})
	s.router.Get("/notebook", notebook.HandlePage)
	s.router.Post("/notebook", notebook.HandleSave)
	s.router.Route("/grades", func(r chi.Router) {
		r.Get("/", grades.HandlePage)
		r.Post("/", grades.HandleCreate)
		r.Post("/delete/{id:[0-9]+}", grades.HandleDelete)
	})

	return nil
}

// Handler exposes the router, for tests and for embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully:
//  1. stop accepting connections
//  2. wait up to 30s for in-flight requests
//  3. close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.HTTP.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.HTTP.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.HTTP.Port)),
			slog.String("database", s.config.DB.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
