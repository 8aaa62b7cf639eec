// Package domain holds the pure types of the FitQuest progress engine.
// The engine drives user motivation through XP, levels, missions, badges,
// and streaks. Types here carry no behavior beyond cheap derived values —
// all state transitions live in internal/app/progress.
package domain

import "time"

// ─── Level Types ────────────────────────────────────────────────────────────

// LevelDefinition is one row of the static level table.
// Thresholds are cumulative XP and strictly increasing; level 1 sits at 0.
type LevelDefinition struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	XPThreshold int    `json:"xp_threshold"`
}

// ─── Mission Types ──────────────────────────────────────────────────────────

// MissionKind distinguishes the reset cadence of a mission.
type MissionKind string

const (
	MissionDaily  MissionKind = "daily"
	MissionWeekly MissionKind = "weekly"
)

// MissionCategory groups missions by theme.
type MissionCategory string

const (
	CategoryWorkout   MissionCategory = "workout"
	CategoryNutrition MissionCategory = "nutrition"
	CategoryHabits    MissionCategory = "habits"
	CategoryHealth    MissionCategory = "health"
)

// Mission is a live mission instance derived from a catalog template.
// Once Completed is true, Current equals Target and both are frozen until
// the next reset re-seeds the instance.
type Mission struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Kind         MissionKind     `json:"kind"`
	Category     MissionCategory `json:"category"`
	Target       float64         `json:"target"`
	Current      float64         `json:"current"`
	RewardPoints int             `json:"reward_points"`
	Completed    bool            `json:"completed"`
}

// ProgressPct returns completion percentage (0–100).
func (m Mission) ProgressPct() float64 {
	if m.Target <= 0 {
		return 100.0
	}
	pct := m.Current / m.Target * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeRarity ranks how hard a badge is to earn.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is a catalog entry for an unlockable achievement.
type Badge struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rarity      BadgeRarity `json:"rarity"`
}

// UnlockedBadge records when a badge was earned. At most one per badge id.
type UnlockedBadge struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ─── Weekly Counters ────────────────────────────────────────────────────────

// CounterCategory names a weekly aggregate counter. Closed enumeration —
// unknown categories are rejected with ErrInvalidCategory.
type CounterCategory string

const (
	CounterWorkouts        CounterCategory = "workouts"
	CounterMealsLogged     CounterCategory = "meals_logged"
	CounterWaterIntake     CounterCategory = "water_intake"
	CounterHabitsCompleted CounterCategory = "habits_completed"
)

// CounterCategories lists every valid weekly counter.
func CounterCategories() []CounterCategory {
	return []CounterCategory{
		CounterWorkouts,
		CounterMealsLogged,
		CounterWaterIntake,
		CounterHabitsCompleted,
	}
}

// WeeklyCounters aggregates activity over the current week.
type WeeklyCounters struct {
	Workouts        int `json:"workouts"`
	MealsLogged     int `json:"meals_logged"`
	WaterIntake     int `json:"water_intake"`
	HabitsCompleted int `json:"habits_completed"`
}

// Get returns the value of the named counter and whether the name is valid.
func (w WeeklyCounters) Get(cat CounterCategory) (int, bool) {
	switch cat {
	case CounterWorkouts:
		return w.Workouts, true
	case CounterMealsLogged:
		return w.MealsLogged, true
	case CounterWaterIntake:
		return w.WaterIntake, true
	case CounterHabitsCompleted:
		return w.HabitsCompleted, true
	}
	return 0, false
}

// ─── Progress Record ────────────────────────────────────────────────────────

// ProgressRecord is the single mutable aggregate for one user. It is owned
// exclusively by the tracker and mutated only through engine transitions.
// The whole record is plain serializable data: restoring a snapshot
// reproduces identical subsequent behavior.
type ProgressRecord struct {
	TotalPoints       int                      `json:"total_points"`
	Level             int                      `json:"level"`
	XPToNextLevel     int                      `json:"xp_to_next_level"`
	StreakDays        int                      `json:"streak_days"`
	LongestStreak     int                      `json:"longest_streak"`
	MissionsCompleted int                      `json:"missions_completed"` // Lifetime count, survives resets
	Badges            map[string]UnlockedBadge `json:"badges"`
	Missions          map[string]Mission       `json:"missions"`
	Weekly            WeeklyCounters           `json:"weekly"`

	// DailySeenDone is the completed-daily-mission count observed by the
	// previous mutation. It backs the once-per-day celebration trigger and
	// is cleared by the daily reset. Part of the record so that restored
	// snapshots do not re-fire the celebration.
	DailySeenDone int `json:"daily_seen_done"`
}

// Clone returns a deep copy. Engine transitions operate on copies so a
// rejected or failed transition never leaks partial state to observers.
func (r ProgressRecord) Clone() ProgressRecord {
	out := r
	out.Badges = make(map[string]UnlockedBadge, len(r.Badges))
	for id, b := range r.Badges {
		out.Badges[id] = b
	}
	out.Missions = make(map[string]Mission, len(r.Missions))
	for id, m := range r.Missions {
		out.Missions[id] = m
	}
	return out
}

// CompletedDaily counts completed daily-kind missions.
func (r ProgressRecord) CompletedDaily() int {
	n := 0
	for _, m := range r.Missions {
		if m.Kind == MissionDaily && m.Completed {
			n++
		}
	}
	return n
}

// XPIntoLevel returns XP accumulated past the current level's threshold.
// Derived — never stored alongside TotalPoints.
func (r ProgressRecord) XPIntoLevel(levels []LevelDefinition) int {
	for i := len(levels) - 1; i >= 0; i-- {
		if r.TotalPoints >= levels[i].XPThreshold {
			return r.TotalPoints - levels[i].XPThreshold
		}
	}
	return r.TotalPoints
}
