// Package api exposes the orchestrator over HTTP for local tooling and the
// web frontend.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"adforge/internal/campaign"
	"adforge/internal/metrics"
)

// Server is the HTTP API server.
type Server struct {
	router       *chi.Mux
	httpServer   *http.Server
	orchestrator *campaign.Orchestrator
	metrics      *metrics.Metrics
	logger       *zap.Logger
	listenAddr   string
	startTime    time.Time
}

// NewServer creates the API server and wires its routes.
func NewServer(o *campaign.Orchestrator, m *metrics.Metrics, listenAddr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:       chi.NewRouter(),
		orchestrator: o,
		metrics:      m,
		logger:       logger,
		listenAddr:   listenAddr,
		startTime:    time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(chimiddleware.Recoverer)

	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/credential", s.handleSetCredential)
		r.Delete("/credential", s.handleClearCredential)

		r.Post("/generate", s.handleGenerate)
		r.Post("/generate/reformat", s.handleReformat)
		r.Get("/variants", s.handleVariants)
		r.Post("/variants/{id}/score", s.handleScore)
		r.Post("/variants/{id}/remix", s.handleRemix)
		r.Post("/variants/{id}/apply-tip", s.handleApplyTip)
		r.Post("/variants/{id}/remix-tip", s.handleRemixTip)

		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites", s.handleSaveFavorite)
		r.Delete("/favorites/{id}", s.handleRemoveFavorite)
		r.Get("/favorites/export", s.handleExportFavorites)

		r.Post("/performance/import", s.handleImportPerformance)
		r.Get("/insights", s.handleInsights)

		r.Get("/history", s.handleHistory)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)

		r.Post("/angles/{key}", s.handleExpandAngle)
		r.Post("/hooks/{category}", s.handleGenerateHooks)
		r.Post("/names", s.handleGenerateNames)
		r.Post("/blueprint", s.handleGenerateBlueprint)
		r.Post("/blueprint/import", s.handleImportBlueprint)

		r.Post("/utm", s.handleBuildUTM)
	})
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.logger.Info("starting HTTP API server", zap.String("addr", s.listenAddr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP API server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// loggingMiddleware logs each request and feeds the request counter.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.metrics.APIRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}
