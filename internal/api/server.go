// Package api provides the FitQuest HTTP server. It is a thin surface
// over the tracker: every mutating route maps one-to-one onto an engine
// operation, and responses report the occurrences the operation produced.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitquest-health/fitquest/internal/app/notify"
	"github.com/fitquest-health/fitquest/internal/app/tracker"
	"github.com/fitquest-health/fitquest/internal/domain"
)

// Server is the FitQuest HTTP API server.
type Server struct {
	tracker        *tracker.Tracker
	notify         *notify.Adapter
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(t *tracker.Tracker, n *notify.Adapter) *Server {
	return &Server{tracker: t, notify: n}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api/progress", func(r chi.Router) {
		r.Get("/", s.handleRecord)
		r.Get("/summary", s.handleSummary)
		r.Get("/levels", s.handleLevels)
		r.Get("/missions", s.handleMissions)
		r.Get("/badges", s.handleBadges)
		r.Get("/streak", s.handleStreak)

		r.Post("/xp", s.handleAwardXP)
		r.Post("/missions/{id}/progress", s.handleMissionProgress)
		r.Post("/missions/{id}/complete", s.handleMissionComplete)
		r.Post("/badges/{id}/unlock", s.handleBadgeUnlock)
		r.Post("/streak", s.handleStreakUpdate)
		r.Post("/weekly/{category}", s.handleWeeklyIncrement)
		r.Post("/day/reset", s.handleDayReset)
		r.Post("/week/reset", s.handleWeekReset)
	})

	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", s.handleNotifications)
		r.Post("/{id}/shown", s.handleNotificationShown)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
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

// writeOpError maps an engine error onto an HTTP status.
func writeOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissionNotFound),
		errors.Is(err, domain.ErrBadgeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
