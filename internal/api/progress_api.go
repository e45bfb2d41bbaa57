package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/domain"
)

// ─── Progress Engine Endpoints ──────────────────────────────────────────────

// GET /api/progress/streak
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.streaks.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

// GET /api/progress/level
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	info, err := s.ledger.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":            info.Level,
		"title":            info.Title,
		"total_xp":         info.TotalXP,
		"xp_to_next_level": progress.XPToNextLevel(info.TotalXP),
		"level_progress":   progress.LevelProgress(info.TotalXP),
	})
}

// GET /api/progress/badges
func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	earned, err := s.orch.EarnedBadges()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": earned,
		"total":  len(progress.Catalog()),
	})
}

// GET /api/progress/badges/catalog
func (s *Server) handleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": progress.Catalog(),
	})
}

// GET /api/progress/journal?limit=N
func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.Journal(queryLimit(r, 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GET /api/progress/events?limit=N
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.feed.Pending(queryLimit(r, 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// POST /api/progress/events/{id}/seen
func (s *Server) handleEventSeen(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := s.feed.MarkSeen(id); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"seen": true})
}

// GET /api/progress/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	info, err := s.ledger.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	streak, err := s.streaks.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	earned, err := s.orch.EarnedBadges()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":            info.Level,
		"title":            info.Title,
		"total_xp":         info.TotalXP,
		"xp_to_next_level": progress.XPToNextLevel(info.TotalXP),
		"streak":           streak,
		"badges_earned":    len(earned),
		"badges_total":     len(progress.Catalog()),
		"generated_at":     time.Now().UTC(),
	})
}

// queryLimit parses ?limit=N with a default.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrActionNotFound),
		errors.Is(err, domain.ErrChallengeNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrRelationshipNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrActionDone),
		errors.Is(err, domain.ErrChallengeCompleted),
		errors.Is(err, domain.ErrChallengeNotActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidWinSize),
		errors.Is(err, domain.ErrInvalidEmotion),
		errors.Is(err, domain.ErrNonPositiveXP):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
