package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fitquest-health/fitquest/internal/app/notify"
	"github.com/fitquest-health/fitquest/internal/app/progress"
	"github.com/fitquest-health/fitquest/internal/app/tracker"
	"github.com/fitquest-health/fitquest/internal/infra/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine := progress.New()
	sink := notify.New(db, engine)
	// Pin the clock to daytime so quiet hours never eat test notifications
	sink.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	})

	trk, err := tracker.New(engine, db, sink)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	return NewServer(trk, sink)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ─── Health & Reads ─────────────────────────────────────────────────────────

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestAPI_Summary(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/api/progress/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	json.NewDecoder(w.Body).Decode(&body)
	if body["level"].(float64) != 1 {
		t.Errorf("level = %v, want 1", body["level"])
	}
	if body["level_name"] != "Beginner" {
		t.Errorf("level_name = %v, want Beginner", body["level_name"])
	}
	if body["daily_goal_threshold"].(float64) != 3 {
		t.Errorf("daily_goal_threshold = %v, want 3", body["daily_goal_threshold"])
	}
}

func TestAPI_Missions(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/api/progress/missions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Missions []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"missions"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if len(body.Missions) != 8 {
		t.Fatalf("expected 8 missions, got %d", len(body.Missions))
	}
	if body.Missions[0].Kind != "daily" {
		t.Errorf("daily missions should sort first, got %s", body.Missions[0].Kind)
	}
}

// ─── Mutations ──────────────────────────────────────────────────────────────

func TestAPI_AwardXP(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/progress/xp", `{"amount":150}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		Record struct {
			TotalPoints int `json:"total_points"`
			Level       int `json:"level"`
		} `json:"record"`
		Occurrences []struct {
			Kind string `json:"kind"`
		} `json:"occurrences"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Record.TotalPoints != 150 || body.Record.Level != 2 {
		t.Errorf("record = %+v, want 150 points / level 2", body.Record)
	}

	found := false
	for _, occ := range body.Occurrences {
		if occ.Kind == "leveled_up" {
			found = true
		}
	}
	if !found {
		t.Error("expected a leveled_up occurrence in the response")
	}
}

func TestAPI_AwardXP_Negative(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/progress/xp", `{"amount":-5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAPI_MissionProgress(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/progress/missions/daily_workout/progress", `{"value":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		Occurrences []struct {
			Kind string `json:"kind"`
		} `json:"occurrences"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	kinds := make(map[string]bool)
	for _, occ := range body.Occurrences {
		kinds[occ.Kind] = true
	}
	if !kinds["mission_completed"] {
		t.Error("expected mission_completed occurrence")
	}
	if !kinds["badge_unlocked"] {
		t.Error("first completion should unlock first_workout")
	}
}

func TestAPI_MissionProgress_UnknownMission(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/progress/missions/nope/progress", `{"value":1}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAPI_BadgeUnlock(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/progress/badges/sleep_guru/unlock", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv.Handler(), "POST", "/api/progress/badges/not_a_badge/unlock", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown badge status = %d, want 404", w.Code)
	}
}

func TestAPI_WeeklyIncrement(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/progress/weekly/workouts", `{"delta":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv.Handler(), "POST", "/api/progress/weekly/sleep_hours", `{"delta":1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want 400", w.Code)
	}
}

func TestAPI_DayReset(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	doJSON(t, h, "POST", "/api/progress/missions/daily_workout/progress", `{"value":1}`)
	w := doJSON(t, h, "POST", "/api/progress/day/reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}

	var body struct {
		Record struct {
			TotalPoints int `json:"total_points"`
			Missions    map[string]struct {
				Completed bool `json:"completed"`
			} `json:"missions"`
		} `json:"record"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Record.TotalPoints != 50 {
		t.Errorf("reset must keep points, got %d", body.Record.TotalPoints)
	}
	if body.Record.Missions["daily_workout"].Completed {
		t.Error("reset must re-seed daily missions")
	}
}

// ─── Notifications ──────────────────────────────────────────────────────────

func TestAPI_NotificationsFlow(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	// Completing a mission publishes celebrations through the sink
	doJSON(t, h, "POST", "/api/progress/missions/daily_workout/progress", `{"value":1}`)

	w := doJSON(t, h, "GET", "/api/notifications", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var body struct {
		Notifications []struct {
			ID string `json:"id"`
		} `json:"notifications"`
		Count int `json:"count"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Count == 0 {
		t.Fatal("expected pending notifications after a mission completion")
	}

	w = doJSON(t, h, "POST", "/api/notifications/"+body.Notifications[0].ID+"/shown", "")
	if w.Code != http.StatusOK {
		t.Errorf("mark shown status = %d", w.Code)
	}

	w = doJSON(t, h, "POST", "/api/notifications/bogus/shown", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}
