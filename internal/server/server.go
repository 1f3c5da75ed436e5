package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/config"
	"github.com/username/holiday-calendar/internal/monthview"
)

const shutdownTimeout = 30 * time.Second

// Builder computes a snapshot for a selection
type Builder interface {
	Build(ctx context.Context, sel monthview.Selection) monthview.Snapshot
}

// Server serves month snapshots as JSON
type Server struct {
	cfg      config.ServerConfig
	builder  Builder
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	limiter  *visitorLimiter
}

// New creates a new Server; metrics are registered on a private registry
func New(cfg config.ServerConfig, builder Builder, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		cfg:      cfg,
		builder:  builder,
		logger:   logger,
		registry: registry,
		metrics:  newMetrics(registry),
		limiter:  newVisitorLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}

// Handler returns the router wrapped in CORS and, behind a trusted proxy, ProxyHeaders
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.accessLogMiddleware)
	r.Use(s.limiter.middleware)
	r.Use(s.monitorMiddleware)

	if s.cfg.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	}
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/countries", s.handleCountries).Methods("GET")
	api.HandleFunc("/calendar/{country:[A-Za-z]{2}}/{year:[0-9]{1,4}}/{month:[0-9]{1,2}}", s.handleCalendar).Methods("GET")

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(origins),
		gorillaHandlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", requestIDHeader}),
	)

	var h http.Handler = r
	if s.cfg.TrustProxyHeaders {
		h = gorillaHandlers.ProxyHeaders(h)
	}
	return cors(h)
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go s.limiter.cleanup(ctx, time.Minute, 3*time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("Server shutdown complete")
	return nil
}
