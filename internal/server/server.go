// internal/server/server.go

// Package server exposes the HTTP surface: the public submission endpoint and
// the Basic-auth-gated admin listing, deletion and export endpoints.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"competition-intake/internal/auth"
	"competition-intake/internal/common/config"
	"competition-intake/internal/common/errors"
	"competition-intake/internal/common/logger"
	"competition-intake/internal/common/metrics"
	"competition-intake/internal/models"
	"competition-intake/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// SubmissionNotifier is fired after a record is committed. Implementations are
// best-effort; the server never inspects a notification outcome.
type SubmissionNotifier interface {
	Submitted(ctx context.Context, app *models.Application)
}

type Server struct {
	cfg      config.ServerConfig
	store    store.Store
	notifier SubmissionNotifier
	errs     *errors.ErrorHandler
	logger   logger.Logger
}

func New(cfg config.ServerConfig, st store.Store, notifier SubmissionNotifier, log logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		notifier: notifier,
		errs:     errors.NewErrorHandler(log),
		logger:   log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Handler assembles the full route table, wrapping admin routes in the auth
// gate and everything in CORS for the form origin.
func (s *Server) Handler(gate *auth.BasicAuth, healthcheck func(context.Context) error) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/applications", s.instrument("submit", s.handleSubmit))

	admin := http.NewServeMux()
	admin.Handle("GET /api/applications", s.instrument("list", s.handleList))
	admin.Handle("GET /api/applications/{id}", s.instrument("get", s.handleGet))
	admin.Handle("DELETE /api/applications/{id}", s.instrument("delete", s.handleDelete))
	admin.Handle("GET /api/admin/export", s.instrument("export", s.handleExport))
	mux.Handle("/api/applications", gate.Middleware(admin))
	mux.Handle("/api/applications/{id}", gate.Middleware(admin))
	mux.Handle("/api/admin/export", gate.Middleware(admin))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := healthcheck(r.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return corsMiddleware.Handler(mux)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h(rec, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
