package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/city-news-etl/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxEnrichBody caps the request body accepted by POST /v1/enrich.
const maxEnrichBody = 1 << 20

// Enricher enriches a batch of articles over a bounded number of workers,
// preserving input order.
type Enricher interface {
	EnrichConcurrent(ctx context.Context, articles []domain.Article, workers int) ([]domain.EnrichedArticle, error)
}

// Server exposes health, readiness, metrics, and on-demand enrichment endpoints.
type Server struct {
	httpServer *http.Server
	enricher   Enricher
	workers    int
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /v1/enrich routes. workers bounds the goroutines used per enrich request.
func NewServer(addr string, ready sharedobs.ReadinessChecker, enricher Enricher, workers int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		enricher: enricher,
		workers:  workers,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/enrich", s.handleEnrich)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEnrichBody)

	var items []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.rejectEnrich(w, status, err)
		return
	}

	// Parse each item the way the Kafka path does so missing IDs are filled in.
	articles := make([]domain.Article, len(items))
	for i, item := range items {
		a, err := domain.ParseRawArticle(domain.RawEvent{Value: item})
		if err != nil {
			s.rejectEnrich(w, http.StatusBadRequest, fmt.Errorf("article %d: %w", i, err))
			return
		}
		articles[i] = a
	}

	out, err := s.enricher.EnrichConcurrent(r.Context(), articles, s.workers)
	if err != nil {
		// The client went away; nobody is left to read a response.
		s.logger.Debug("enrich request cancelled", "error", err, "articles", len(articles))
		return
	}
	if out == nil {
		out = []domain.EnrichedArticle{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) rejectEnrich(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("rejecting enrich request", "error", err, "status", status)
	writeJSON(w, status, map[string]string{"error": "invalid request body: " + err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Debug("write response failed", "error", err)
	}
}
