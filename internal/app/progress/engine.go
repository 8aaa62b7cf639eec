// Package progress implements the FitQuest progress and achievement engine.
// Every operation is a total, pure transition: it takes a ProgressRecord,
// returns a new record plus the occurrences the transition produced, and
// never applies a partial effect. Invalid input rejects the transition and
// returns the input record untouched.
package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/fitquest-health/fitquest/internal/domain"
)

// DefaultDailyGoalThreshold is how many completed daily missions trigger the
// once-per-day celebration. The catalog defines five daily missions but the
// celebration fires at three — intentional: a full sweep is not required for
// the day to count as won.
const DefaultDailyGoalThreshold = 3

// Engine holds the static catalogs and produces record transitions.
// It keeps no mutable state of its own; the record carries everything.
type Engine struct {
	levels    []domain.LevelDefinition
	templates []domain.Mission
	badges    map[string]domain.Badge
	threshold int
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithDailyGoalThreshold overrides the daily celebration threshold.
func WithDailyGoalThreshold(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.threshold = k
		}
	}
}

// WithClock injects the time source used for badge unlock timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLevels overrides the level table.
func WithLevels(levels []domain.LevelDefinition) Option {
	return func(e *Engine) { e.levels = levels }
}

// WithMissions overrides the mission templates.
func WithMissions(templates []domain.Mission) Option {
	return func(e *Engine) { e.templates = templates }
}

// New creates an engine with the default catalogs.
func New(opts ...Option) *Engine {
	e := &Engine{
		levels:    Levels(),
		templates: append(DailyMissions(), WeeklyMissions()...),
		badges:    make(map[string]domain.Badge),
		threshold: DefaultDailyGoalThreshold,
		now:       time.Now,
	}
	for _, b := range AllBadges() {
		e.badges[b.ID] = b
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Levels returns the engine's level table.
func (e *Engine) Levels() []domain.LevelDefinition { return e.levels }

// Badges returns the badge catalog (for display).
func (e *Engine) Badges() []domain.Badge { return AllBadges() }

// MissionTemplates returns the configured mission templates.
func (e *Engine) MissionTemplates() []domain.Mission { return e.templates }

// DailyGoalThreshold returns the configured celebration threshold.
func (e *Engine) DailyGoalThreshold() int { return e.threshold }

// NewRecord creates a fresh record: zero counters, catalog-seeded missions.
func (e *Engine) NewRecord() domain.ProgressRecord {
	rec := domain.ProgressRecord{
		Badges:   make(map[string]domain.UnlockedBadge),
		Missions: make(map[string]domain.Mission, len(e.templates)),
	}
	for _, tmpl := range e.templates {
		rec.Missions[tmpl.ID] = tmpl
	}
	def, toNext := LevelFor(e.levels, 0)
	rec.Level = def.Level
	rec.XPToNextLevel = toNext
	return rec
}

// ─── Transitions ────────────────────────────────────────────────────────────

// AwardXP adds points and recomputes level. Points only ever go up — there
// is no clawback operation. Emits LeveledUp when the level changes.
func (e *Engine) AwardXP(rec domain.ProgressRecord, amount int) (domain.ProgressRecord, []domain.Occurrence, error) {
	if amount < 0 {
		return rec, nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	next := rec.Clone()
	occs := e.applyXP(&next, amount)
	return next, occs, nil
}

// SetMissionProgress sets a mission's current value, clamped to its target.
// Completed missions are frozen: updating one is a silent no-op, never an
// un-completion. Crossing the target completes the mission and pays its
// catalog reward.
func (e *Engine) SetMissionProgress(rec domain.ProgressRecord, missionID string, value float64) (domain.ProgressRecord, []domain.Occurrence, error) {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return rec, nil, fmt.Errorf("%w: mission progress %v", domain.ErrValidation, value)
	}
	mission, ok := rec.Missions[missionID]
	if !ok {
		return rec, nil, fmt.Errorf("%w: %s", domain.ErrMissionNotFound, missionID)
	}
	if mission.Completed {
		return rec, nil, nil // Frozen until the next reset
	}

	next := rec.Clone()
	var occs []domain.Occurrence

	if value > mission.Target {
		value = mission.Target
	}
	mission.Current = value
	if mission.Current >= mission.Target {
		mission.Completed = true
		next.MissionsCompleted++
		occs = append(occs, domain.MissionCompleted{MissionID: missionID, RewardPoints: mission.RewardPoints})
		occs = append(occs, e.applyXP(&next, mission.RewardPoints)...)
	}
	next.Missions[missionID] = mission

	if occ := e.checkDailyGoal(&next); occ != nil {
		occs = append(occs, occ)
	}
	return next, occs, nil
}

// CompleteMission force-completes a mission. Used when the caller has
// already computed a final (possibly proportional) reward — partial credit
// for a continuous input like hours of sleep. The payout is clamped to
// [0, catalog reward]: validation, not trust. Idempotent — a completed
// mission never pays twice.
func (e *Engine) CompleteMission(rec domain.ProgressRecord, missionID string, overridePoints *int) (domain.ProgressRecord, []domain.Occurrence, error) {
	mission, ok := rec.Missions[missionID]
	if !ok {
		return rec, nil, fmt.Errorf("%w: %s", domain.ErrMissionNotFound, missionID)
	}
	if mission.Completed {
		return rec, nil, nil // Already paid out
	}

	next := rec.Clone()

	points := mission.RewardPoints
	if overridePoints != nil {
		points = *overridePoints
	}
	if points < 0 {
		points = 0
	}
	if points > mission.RewardPoints {
		points = mission.RewardPoints
	}

	mission.Current = mission.Target
	mission.Completed = true
	next.Missions[missionID] = mission
	next.MissionsCompleted++

	occs := []domain.Occurrence{domain.MissionCompleted{MissionID: missionID, RewardPoints: points}}
	occs = append(occs, e.applyXP(&next, points)...)

	if occ := e.checkDailyGoal(&next); occ != nil {
		occs = append(occs, occ)
	}
	return next, occs, nil
}

// UnlockBadge inserts a badge into the unlocked set. The set is append-only
// and keyed by id: a second unlock is a no-op with no occurrence.
func (e *Engine) UnlockBadge(rec domain.ProgressRecord, badgeID string) (domain.ProgressRecord, []domain.Occurrence, error) {
	if _, ok := e.badges[badgeID]; !ok {
		return rec, nil, fmt.Errorf("%w: %s", domain.ErrBadgeNotFound, badgeID)
	}
	if _, unlocked := rec.Badges[badgeID]; unlocked {
		return rec, nil, nil
	}
	next := rec.Clone()
	next.Badges[badgeID] = domain.UnlockedBadge{ID: badgeID, UnlockedAt: e.now()}
	return next, []domain.Occurrence{domain.BadgeUnlocked{BadgeID: badgeID}}, nil
}

// UpdateStreak extends or breaks the streak. The caller decides what counts
// as a qualifying day — the engine does not read a clock. Every seventh
// consecutive day emits a StreakMilestone.
func (e *Engine) UpdateStreak(rec domain.ProgressRecord, incremented bool) (domain.ProgressRecord, []domain.Occurrence, error) {
	next := rec.Clone()
	if incremented {
		next.StreakDays++
	} else {
		next.StreakDays = 0
	}
	if next.StreakDays > next.LongestStreak {
		next.LongestStreak = next.StreakDays
	}

	var occs []domain.Occurrence
	if next.StreakDays > 0 && next.StreakDays%7 == 0 {
		occs = append(occs, domain.StreakMilestone{Days: next.StreakDays})
	}
	return next, occs, nil
}

// IncrementWeeklyCounter adds a non-negative delta to the named counter.
func (e *Engine) IncrementWeeklyCounter(rec domain.ProgressRecord, cat domain.CounterCategory, delta int) (domain.ProgressRecord, []domain.Occurrence, error) {
	if delta < 0 {
		return rec, nil, fmt.Errorf("%w: weekly delta %d", domain.ErrValidation, delta)
	}
	next := rec.Clone()
	switch cat {
	case domain.CounterWorkouts:
		next.Weekly.Workouts += delta
	case domain.CounterMealsLogged:
		next.Weekly.MealsLogged += delta
	case domain.CounterWaterIntake:
		next.Weekly.WaterIntake += delta
	case domain.CounterHabitsCompleted:
		next.Weekly.HabitsCompleted += delta
	default:
		return rec, nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, cat)
	}
	return next, nil, nil
}

// ResetDailyMissions re-seeds every daily mission from the catalog and arms
// the daily celebration trigger for the new day. Points, weekly missions,
// badges, and streak are untouched — no retroactive penalty or reward.
func (e *Engine) ResetDailyMissions(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
	next := rec.Clone()
	for _, tmpl := range e.templates {
		if tmpl.Kind == domain.MissionDaily {
			next.Missions[tmpl.ID] = tmpl
		}
	}
	next.DailySeenDone = 0
	return next, nil, nil
}

// ResetWeek re-seeds weekly missions and zeroes the weekly counters.
// The week boundary trigger comes from outside; the engine only exposes
// the operation.
func (e *Engine) ResetWeek(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
	next := rec.Clone()
	for _, tmpl := range e.templates {
		if tmpl.Kind == domain.MissionWeekly {
			next.Missions[tmpl.ID] = tmpl
		}
	}
	next.Weekly = domain.WeeklyCounters{}
	return next, nil, nil
}

// ─── Internal helpers ───────────────────────────────────────────────────────

// applyXP mutates the candidate record in place. Only called on clones.
func (e *Engine) applyXP(rec *domain.ProgressRecord, amount int) []domain.Occurrence {
	prev := rec.Level
	rec.TotalPoints += amount
	def, toNext := LevelFor(e.levels, rec.TotalPoints)
	rec.Level = def.Level
	rec.XPToNextLevel = toNext
	if def.Level > prev {
		return []domain.Occurrence{domain.LeveledUp{From: prev, To: def.Level}}
	}
	return nil
}

// checkDailyGoal compares the completed-daily count against the previously
// observed one and fires exactly on the strict crossing prev < K <= current.
// Polling or re-rendering cannot re-fire it: the observed count is part of
// the record and advances with every mutation that could change the count.
func (e *Engine) checkDailyGoal(rec *domain.ProgressRecord) domain.Occurrence {
	count := rec.CompletedDaily()
	prev := rec.DailySeenDone
	rec.DailySeenDone = count
	if prev < e.threshold && count >= e.threshold {
		return domain.DailyGoalReached{Completed: count, Threshold: e.threshold}
	}
	return nil
}
