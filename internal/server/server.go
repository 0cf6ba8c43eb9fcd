// Package server exposes one wizard session over HTTP: the document operations as a
// JSON API, live preview updates as Server-Sent Events and the Prometheus collectors.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonathan/resuexpress/internal/export"
	"github.com/jonathan/resuexpress/internal/server/ratelimit"
	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds how long in-flight requests may take once shutdown starts.
const DefaultShutdownTimeout = 10 * time.Second

// sweepInterval is how often idle rate limit buckets are dropped.
const sweepInterval = 5 * time.Minute

// Config holds server configuration
type Config struct {
	Addr            string
	Logger          *slog.Logger
	Gatherer        prometheus.Gatherer // nil serves the default registry
	Stylesheet      *export.Stylesheet  // watched for changes when file-backed
	RateLimit       ratelimit.Config
	ShutdownTimeout time.Duration
}

// Server serves a single wizard session.
type Server struct {
	session         *wizard.Session
	broker          *Broker
	logger          *slog.Logger
	limiter         *ratelimit.Limiter
	sheet           *export.Stylesheet
	shutdownTimeout time.Duration
	handler         http.Handler
	httpServer      *http.Server
}

// New creates a server for session. broker must be the Observer the session was
// opened with so that edits reach the event stream.
func New(session *wizard.Session, broker *Broker, cfg Config) *Server {
	s := &Server{
		session:         session,
		broker:          broker,
		logger:          cfg.Logger,
		limiter:         ratelimit.NewLimiter(cfg.RateLimit, nil),
		sheet:           cfg.Stylesheet,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = DefaultShutdownTimeout
	}

	metrics := promhttp.Handler()
	if cfg.Gatherer != nil {
		metrics = promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})
	}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(withCORS)
	r.Use(s.withRateLimit)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/document", s.handleGetDocument)
		r.Put("/document/fields/{field}", s.handleSetField)
		r.Post("/document/{section}", s.handleAddRecord)
		r.Delete("/document/{section}/{index}", s.handleRemoveRecord)
		r.Put("/document/{section}/{index}/{field}", s.handleUpdateRecordField)

		r.Get("/steps", s.handleGetStep)
		r.Post("/steps/advance", s.handleAdvance)

		r.Get("/templates", s.handleListTemplates)
		r.Put("/templates/selected", s.handleSelectTemplate)
	})

	r.Get("/preview", s.handlePreview)
	r.Get("/export", s.handleExport)
	r.Get("/export.pdf", s.handleExportPDF)
	r.Get("/events", s.handleEvents)

	s.handler = r
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or the listener fails, then shuts down: the
// event stream is closed, in-flight requests drain and the session flushes its
// pending autosave. The store is left open for the caller to close.
func (s *Server) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.sheet != nil {
		g.Go(func() error {
			err := s.sheet.Watch(gCtx, func() {
				s.logger.Info("stylesheet reloaded", slog.String("path", s.sheet.Path()))
				s.broker.Publish(EventStylesheet, map[string]string{"path": s.sheet.Path()})
			})
			if err != nil {
				s.logger.Warn("stylesheet watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	if s.limiter.Enabled() {
		g.Go(func() error {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gCtx.Done():
					return nil
				case <-ticker.C:
					if n := s.limiter.Sweep(); n > 0 {
						s.logger.Debug("rate limit buckets swept", slog.Int("count", n))
					}
				}
			}
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")

		// Streams only end when their channel closes, so the broker goes first.
		s.broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown", slog.String("error", err.Error()))
		}
		return s.session.Close()
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", slog.String("error", err.Error()))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, errorBody{Error: code, Message: message})
}
