// Package api provides the HTTP server for Upward. It exposes the progress
// engine (streak, level, badges, events), goals and actions, wins,
// challenges and relationships as a local REST API.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/upward-labs/upward/internal/app/challenge"
	"github.com/upward-labs/upward/internal/app/goals"
	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/app/social"
	"github.com/upward-labs/upward/internal/infra/metrics"
)

// validate checks request payloads. One instance, it caches struct info.
var validate = validator.New()

// Server is the Upward HTTP API server.
type Server struct {
	ledger     *progress.Ledger
	streaks    *progress.Tracker
	orch       *progress.Orchestrator
	feed       *progress.Feed
	goals      *goals.Service
	challenges *challenge.Service
	social     *social.Service

	metricsEnabled bool
	healthHandler  http.HandlerFunc
}

// Services bundles everything the server exposes.
type Services struct {
	Ledger     *progress.Ledger
	Streaks    *progress.Tracker
	Orch       *progress.Orchestrator
	Feed       *progress.Feed
	Goals      *goals.Service
	Challenges *challenge.Service
	Social     *social.Service
}

// NewServer creates a new API server.
func NewServer(svc Services) *Server {
	return &Server{
		ledger:     svc.Ledger,
		streaks:    svc.Streaks,
		orch:       svc.Orch,
		feed:       svc.Feed,
		goals:      svc.Goals,
		challenges: svc.Challenges,
		social:     svc.Social,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthHandler sets the /health endpoint handler.
func (s *Server) SetHealthHandler(h http.HandlerFunc) { s.healthHandler = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)
	if s.metricsEnabled {
		r.Use(instrument)
	}

	if s.healthHandler != nil {
		r.Get("/health", s.healthHandler)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	}

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "0.1.0"})
	})

	// Progress engine
	r.Route("/api/progress", func(r chi.Router) {
		r.Get("/streak", s.handleStreak)
		r.Get("/level", s.handleLevel)
		r.Get("/badges", s.handleBadges)
		r.Get("/badges/catalog", s.handleBadgeCatalog)
		r.Get("/journal", s.handleJournal)
		r.Get("/events", s.handleEvents)
		r.Post("/events/{id}/seen", s.handleEventSeen)
		r.Get("/summary", s.handleSummary)
	})

	// Goals and actions
	r.Route("/api/goals", func(r chi.Router) {
		r.Get("/", s.handleListGoals)
		r.Post("/", s.handleCreateGoal)
		r.Get("/{id}", s.handleGetGoal)
		r.Delete("/{id}", s.handleDeleteGoal)
		r.Get("/{id}/actions", s.handleListActions)
		r.Post("/{id}/actions", s.handleAddAction)
	})
	r.Post("/api/actions/{id}/complete", s.handleCompleteAction)

	// Wins
	r.Route("/api/wins", func(r chi.Router) {
		r.Get("/", s.handleListWins)
		r.Post("/", s.handleLogWin)
	})

	// Challenges
	r.Route("/api/challenges", func(r chi.Router) {
		r.Get("/templates", s.handleTemplates)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/", s.handleActiveChallenges)
		r.Post("/", s.handleAcceptChallenge)
		r.Get("/{id}", s.handleGetChallenge)
		r.Post("/{id}/complete", s.handleCompleteChallenge)
		r.Post("/{id}/abandon", s.handleAbandonChallenge)
	})

	// Relationships and interactions
	r.Route("/api/relationships", func(r chi.Router) {
		r.Get("/", s.handleListRelationships)
		r.Post("/", s.handleCreateRelationship)
		r.Get("/{id}", s.handleGetRelationship)
		r.Get("/{id}/interactions", s.handleListInteractions)
		r.Post("/{id}/interactions", s.handleLogInteraction)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// decodeValid decodes a JSON body and validates it.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// instrument records per-route request counts and latency. Labels use the
// chi route pattern so path parameters don't explode cardinality.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.APIRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		metrics.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// corsMiddleware adds CORS headers for the local companion app.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
