// Package api is the HTTP surface of the ingestion worker.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"volleypro/ingestion/internal/models"
	"volleypro/ingestion/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// IndexText is the liveness body served on /
const IndexText = "FIVB Ingestion Server Running!"

// EventLister reads stored tournaments for the events endpoint
type EventLister interface {
	List(ctx context.Context, filter repository.EventFilter) ([]*models.Tournament, error)
}

// ResponseCache caches rendered event listings
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Options configures the router
type Options struct {
	Events        map[models.Sport]EventLister
	Cache         ResponseCache
	EnableMetrics bool
}

// NewRouter builds the HTTP routes
func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", handleIndex)
	r.Get("/health", handleHealth)

	if opts.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if len(opts.Events) > 0 {
		h := &eventsHandler{events: opts.Events, cache: opts.Cache}
		r.Get("/events", h.ServeHTTP)
	}

	return r
}

// NewServer wraps the router in an http.Server listening on addr
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(IndexText))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, code, data)
}

func writeJSON(w http.ResponseWriter, code int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
