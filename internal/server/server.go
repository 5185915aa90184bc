// Package server exposes projects, tasks, the month calendar and the
// activity feed over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/task"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Options configures the calendar endpoints.
type Options struct {
	OverflowLimit int
	WeekStart     time.Weekday
}

func (o Options) layout() calendar.Options {
	return calendar.Options{OverflowLimit: o.OverflowLimit, WeekStart: o.WeekStart}
}

// Server serves the HTTP API.
type Server struct {
	repo     task.Repository
	feed     activity.Source
	opts     Options
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates a Server. feed may be nil, in which case activity is read
// from repo when it also implements activity.Store.
func New(repo task.Repository, feed activity.Source, opts Options, logger *slog.Logger) *Server {
	if feed == nil {
		if store, ok := repo.(activity.Store); ok {
			feed = activity.NewStoreSource(store)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		repo:     repo,
		feed:     feed,
		opts:     opts,
		logger:   logger,
		validate: validator.New(),
	}
}

// Routes builds the router with all routes and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(serverActor)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", s.listProjects)
		r.Post("/", s.createProject)

		r.Route("/{project}", func(r chi.Router) {
			r.Get("/tasks", s.listTasks)
			r.Post("/tasks", s.createTask)
			r.Patch("/tasks/{id}/status", s.setTaskStatus)
			r.Delete("/tasks/{id}", s.deleteTask)

			r.Get("/calendar", s.monthCalendar)
			r.Get("/calendar/day", s.dayDetail)

			r.Get("/activity", s.listActivity)
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
