package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fitquest-health/fitquest/internal/domain"
)

// ─── Responses ──────────────────────────────────────────────────────────────

// occurrenceJSON wraps an occurrence with its kind tag so clients can
// dispatch on it without sniffing fields.
type occurrenceJSON struct {
	Kind  domain.OccurrenceKind `json:"kind"`
	Event domain.Occurrence     `json:"event"`
}

// opResponse is the uniform body for every mutating route.
type opResponse struct {
	Record      domain.ProgressRecord `json:"record"`
	Occurrences []occurrenceJSON      `json:"occurrences"`
}

func (s *Server) opResult(w http.ResponseWriter, occs []domain.Occurrence, err error) {
	if err != nil {
		writeOpError(w, err)
		return
	}
	out := make([]occurrenceJSON, 0, len(occs))
	for _, occ := range occs {
		out = append(out, occurrenceJSON{Kind: occ.Kind(), Event: occ})
	}
	writeJSON(w, http.StatusOK, opResponse{
		Record:      s.tracker.Record(),
		Occurrences: out,
	})
}

// ─── Read handlers ──────────────────────────────────────────────────────────

// handleRecord returns the full progress record.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Record())
}

// handleSummary returns the dashboard view: level, XP, streak, daily
// missions done today, badge count.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rec := s.tracker.Record()
	engine := s.tracker.Engine()

	levelName := ""
	for _, l := range engine.Levels() {
		if l.Level == rec.Level {
			levelName = l.Name
			break
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_points":         rec.TotalPoints,
		"level":                rec.Level,
		"level_name":           levelName,
		"xp_into_level":        rec.XPIntoLevel(engine.Levels()),
		"xp_to_next_level":     rec.XPToNextLevel,
		"streak_days":          rec.StreakDays,
		"longest_streak":       rec.LongestStreak,
		"missions_completed":   rec.MissionsCompleted,
		"daily_done":           rec.CompletedDaily(),
		"daily_goal_threshold": engine.DailyGoalThreshold(),
		"badges_unlocked":      len(rec.Badges),
		"weekly":               rec.Weekly,
	})
}

// handleLevels returns the static level table.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"levels": s.tracker.Engine().Levels(),
	})
}

// handleMissions returns live mission instances, daily first, then by id.
func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	rec := s.tracker.Record()
	missions := make([]domain.Mission, 0, len(rec.Missions))
	for _, m := range rec.Missions {
		missions = append(missions, m)
	}
	sort.Slice(missions, func(i, j int) bool {
		if missions[i].Kind != missions[j].Kind {
			return missions[i].Kind == domain.MissionDaily
		}
		return missions[i].ID < missions[j].ID
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"missions": missions,
	})
}

// handleBadges returns the catalog annotated with unlock state.
func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	rec := s.tracker.Record()

	type badgeView struct {
		domain.Badge
		Unlocked   bool   `json:"unlocked"`
		UnlockedAt string `json:"unlocked_at,omitempty"`
	}

	catalog := s.tracker.Engine().Badges()
	badges := make([]badgeView, 0, len(catalog))
	for _, b := range catalog {
		view := badgeView{Badge: b}
		if ub, ok := rec.Badges[b.ID]; ok {
			view.Unlocked = true
			view.UnlockedAt = ub.UnlockedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		badges = append(badges, view)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": badges,
	})
}

// handleStreak returns current and longest streak.
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	rec := s.tracker.Record()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streak_days":    rec.StreakDays,
		"longest_streak": rec.LongestStreak,
	})
}

// ─── Mutating handlers ──────────────────────────────────────────────────────

func (s *Server) handleAwardXP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	occs, err := s.tracker.AwardXP(req.Amount)
	s.opResult(w, occs, err)
}

func (s *Server) handleMissionProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	occs, err := s.tracker.SetMissionProgress(chi.URLParam(r, "id"), req.Value)
	s.opResult(w, occs, err)
}

func (s *Server) handleMissionComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points *int `json:"points"` // Optional partial-credit reward
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	occs, err := s.tracker.CompleteMission(chi.URLParam(r, "id"), req.Points)
	s.opResult(w, occs, err)
}

func (s *Server) handleBadgeUnlock(w http.ResponseWriter, r *http.Request) {
	occs, err := s.tracker.UnlockBadge(chi.URLParam(r, "id"))
	s.opResult(w, occs, err)
}

func (s *Server) handleStreakUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Extended bool `json:"extended"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	occs, err := s.tracker.UpdateStreak(req.Extended)
	s.opResult(w, occs, err)
}

func (s *Server) handleWeeklyIncrement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cat := domain.CounterCategory(chi.URLParam(r, "category"))
	occs, err := s.tracker.IncrementWeeklyCounter(cat, req.Delta)
	s.opResult(w, occs, err)
}

func (s *Server) handleDayReset(w http.ResponseWriter, r *http.Request) {
	occs, err := s.tracker.ResetDailyMissions()
	s.opResult(w, occs, err)
}

func (s *Server) handleWeekReset(w http.ResponseWriter, r *http.Request) {
	occs, err := s.tracker.ResetWeek()
	s.opResult(w, occs, err)
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if s.notify == nil {
		writeError(w, http.StatusServiceUnavailable, "notifications not configured")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	notifs, err := s.notify.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifs,
		"count":         len(notifs),
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	if s.notify == nil {
		writeError(w, http.StatusServiceUnavailable, "notifications not configured")
		return
	}
	if err := s.notify.MarkShown(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
