// Package notify turns engine occurrences into persisted, user-facing
// notifications. It sits strictly downstream of the state transition: the
// tracker publishes occurrences only after a transition has committed, so
// retrying a failed transition can never double-fire a celebration here.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitquest-health/fitquest/internal/app/progress"
	"github.com/fitquest-health/fitquest/internal/domain"
	"github.com/fitquest-health/fitquest/internal/infra/metrics"
	"github.com/fitquest-health/fitquest/internal/infra/sqlite"
)

// Policy governs how many notifications may surface and when.
type Policy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultPolicy allows a handful of celebrations per day and stays silent
// overnight.
func DefaultPolicy() Policy {
	return Policy{
		MaxPerDay:  10,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}

// Adapter implements domain.OccurrenceSink on top of the SQLite
// notification log.
type Adapter struct {
	db     *sqlite.DB
	policy Policy
	now    func() time.Time

	missionTitles map[string]string
	badgeNames    map[string]string
	levelNames    map[int]string
}

// New creates an adapter with the default policy.
func New(db *sqlite.DB, engine *progress.Engine) *Adapter {
	return NewWithPolicy(db, engine, DefaultPolicy())
}

// NewWithPolicy creates an adapter with a custom policy.
func NewWithPolicy(db *sqlite.DB, engine *progress.Engine, policy Policy) *Adapter {
	a := &Adapter{
		db:            db,
		policy:        policy,
		now:           time.Now,
		missionTitles: make(map[string]string),
		badgeNames:    make(map[string]string),
		levelNames:    make(map[int]string),
	}
	for _, m := range engine.MissionTemplates() {
		a.missionTitles[m.ID] = m.Title
	}
	for _, b := range engine.Badges() {
		a.badgeNames[b.ID] = b.Name
	}
	for _, l := range engine.Levels() {
		a.levelNames[l.Level] = l.Name
	}
	return a
}

// Policy returns the active delivery policy.
func (a *Adapter) Policy() Policy { return a.policy }

// SetClock overrides the time source. Accepts a clock for testability.
func (a *Adapter) SetClock(now func() time.Time) { a.now = now }

// Publish renders each occurrence into a notification, subject to the
// daily cap and quiet hours. Delivery is best-effort — a storage error is
// logged, never propagated back into the state transition.
func (a *Adapter) Publish(occs []domain.Occurrence) {
	for _, occ := range occs {
		title, body := a.render(occ)
		if err := a.create(occ.Kind(), title, body); err != nil {
			log.Printf("[notify] drop %s: %v", occ.Kind(), err)
		}
	}
}

// Pending returns unshown notifications.
func (a *Adapter) Pending(limit int) ([]sqlite.Notification, error) {
	return a.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (a *Adapter) MarkShown(id string) error {
	return a.db.MarkNotificationShown(id)
}

func (a *Adapter) create(kind domain.OccurrenceKind, title, body string) error {
	now := a.now()

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount, err := a.db.NotificationCountSince(startOfDay)
	if err != nil {
		return fmt.Errorf("count today: %w", err)
	}
	if todayCount >= a.policy.MaxPerDay {
		metrics.NotificationsSuppressed.WithLabelValues("daily_limit").Inc()
		return nil
	}
	if a.isQuietHour(now) {
		metrics.NotificationsSuppressed.WithLabelValues("quiet_hours").Inc()
		return nil
	}

	err = a.db.InsertNotification(sqlite.Notification{
		ID:        uuid.NewString(),
		Kind:      string(kind),
		Title:     title,
		Body:      body,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	metrics.NotificationsCreated.WithLabelValues(string(kind)).Inc()
	return nil
}

// render builds the user-facing message for an occurrence.
func (a *Adapter) render(occ domain.Occurrence) (title, body string) {
	switch o := occ.(type) {
	case domain.LeveledUp:
		name := a.levelNames[o.To]
		if name == "" {
			return "Level Up!", fmt.Sprintf("You reached level %d!", o.To)
		}
		return "Level Up!", fmt.Sprintf("You reached level %d — %s!", o.To, name)
	case domain.MissionCompleted:
		missionTitle := a.missionTitles[o.MissionID]
		if missionTitle == "" {
			missionTitle = o.MissionID
		}
		return "Mission Complete!", fmt.Sprintf("%s — +%d XP", missionTitle, o.RewardPoints)
	case domain.BadgeUnlocked:
		name := a.badgeNames[o.BadgeID]
		if name == "" {
			name = o.BadgeID
		}
		return "Badge Unlocked!", name
	case domain.StreakMilestone:
		return "Streak Milestone!", fmt.Sprintf("%d days in a row. Keep it going!", o.Days)
	case domain.DailyGoalReached:
		return "Daily Goal Reached!", fmt.Sprintf("%d missions done today — that's a win!", o.Completed)
	}
	return string(occ.Kind()), ""
}

// isQuietHour returns true if t falls within the policy's quiet window.
func (a *Adapter) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(a.policy.QuietStart)
	endHour, endMin := parseHHMM(a.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
