// Package tracker owns the live ProgressRecord and serializes all engine
// operations for one user. Single-writer by design: callers go through one
// Tracker, and every mutating call is atomic with respect to observers —
// a reader never sees a half-applied transition.
package tracker

import (
	"fmt"

	"github.com/fitquest-health/fitquest/internal/app/progress"
	"github.com/fitquest-health/fitquest/internal/domain"
	"github.com/fitquest-health/fitquest/internal/infra/metrics"
)

// Tracker applies engine transitions, persists the result, and publishes
// occurrences strictly after commit. On persistence failure the in-memory
// record stays at its pre-transition value and nothing is published, so a
// retried transition can never double-fire a celebration.
type Tracker struct {
	engine *progress.Engine
	store  domain.ProgressStore
	sink   domain.OccurrenceSink
	rec    domain.ProgressRecord
}

// New builds a tracker. Store and sink may be nil (in-memory, silent).
// An existing snapshot in the store is restored; otherwise a fresh
// catalog-seeded record is created and saved.
func New(engine *progress.Engine, store domain.ProgressStore, sink domain.OccurrenceSink) (*Tracker, error) {
	t := &Tracker{engine: engine, store: store, sink: sink}

	if store != nil {
		rec, found, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		if found {
			t.rec = rec
			t.observeRecord()
			return t, nil
		}
	}

	t.rec = engine.NewRecord()
	if store != nil {
		if err := store.Save(t.rec); err != nil {
			return nil, fmt.Errorf("seed progress: %w", err)
		}
	}
	t.observeRecord()
	return t, nil
}

// Engine exposes the underlying engine (catalogs, thresholds).
func (t *Tracker) Engine() *progress.Engine { return t.engine }

// Record returns a deep copy of the current record.
func (t *Tracker) Record() domain.ProgressRecord { return t.rec.Clone() }

// Restore replaces the record with a snapshot and persists it. Restoring a
// snapshot reproduces identical subsequent behavior — the edge-trigger state
// travels inside the record.
func (t *Tracker) Restore(rec domain.ProgressRecord) error {
	next := rec.Clone()
	if t.store != nil {
		if err := t.store.Save(next); err != nil {
			return fmt.Errorf("persist restored progress: %w", err)
		}
	}
	t.rec = next
	t.observeRecord()
	return nil
}

// ─── Operations ─────────────────────────────────────────────────────────────

// AwardXP awards experience points.
func (t *Tracker) AwardXP(amount int) ([]domain.Occurrence, error) {
	occs, err := t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.AwardXP(rec, amount)
	})
	if err == nil {
		metrics.XPAwarded.Add(float64(amount))
	}
	return occs, err
}

// SetMissionProgress updates a mission's progress value.
func (t *Tracker) SetMissionProgress(missionID string, value float64) ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.SetMissionProgress(rec, missionID, value)
	})
}

// CompleteMission force-completes a mission, optionally with a caller-
// computed reward (clamped to the catalog maximum).
func (t *Tracker) CompleteMission(missionID string, overridePoints *int) ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.CompleteMission(rec, missionID, overridePoints)
	})
}

// UnlockBadge explicitly unlocks a catalog badge.
func (t *Tracker) UnlockBadge(badgeID string) ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.UnlockBadge(rec, badgeID)
	})
}

// UpdateStreak extends (true) or breaks (false) the streak.
func (t *Tracker) UpdateStreak(incremented bool) ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.UpdateStreak(rec, incremented)
	})
}

// IncrementWeeklyCounter adds to a weekly aggregate counter.
func (t *Tracker) IncrementWeeklyCounter(cat domain.CounterCategory, delta int) ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.IncrementWeeklyCounter(rec, cat, delta)
	})
}

// ResetDailyMissions re-seeds daily missions for a new day.
func (t *Tracker) ResetDailyMissions() ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.ResetDailyMissions(rec)
	})
}

// ResetWeek re-seeds weekly missions and zeroes weekly counters.
func (t *Tracker) ResetWeek() ([]domain.Occurrence, error) {
	return t.apply(func(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error) {
		return t.engine.ResetWeek(rec)
	})
}

// ─── Transition plumbing ────────────────────────────────────────────────────

type transition func(domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence, error)

// apply runs one transition end to end: engine mutation, badge evaluation,
// durable save, then record install, occurrence publish, and metrics —
// in that order. Any error before the install leaves the tracker unchanged.
func (t *Tracker) apply(fn transition) ([]domain.Occurrence, error) {
	next, occs, err := fn(t.rec)
	if err != nil {
		return nil, err
	}

	next, unlocked := t.engine.EvaluateBadges(next)
	occs = append(occs, unlocked...)

	if t.store != nil {
		if err := t.store.Save(next); err != nil {
			return nil, fmt.Errorf("persist progress: %w", err)
		}
	}

	t.rec = next

	if t.sink != nil && len(occs) > 0 {
		t.sink.Publish(occs)
	}
	t.observeOccurrences(occs)
	t.observeRecord()
	return occs, nil
}

func (t *Tracker) observeOccurrences(occs []domain.Occurrence) {
	for _, occ := range occs {
		switch o := occ.(type) {
		case domain.LeveledUp:
			metrics.LevelUps.Inc()
		case domain.MissionCompleted:
			kind := string(domain.MissionWeekly)
			if m, ok := t.rec.Missions[o.MissionID]; ok {
				kind = string(m.Kind)
			}
			metrics.MissionsCompleted.WithLabelValues(kind).Inc()
			metrics.XPAwarded.Add(float64(o.RewardPoints))
		case domain.BadgeUnlocked:
			metrics.BadgesUnlocked.Inc()
		case domain.StreakMilestone:
			metrics.StreakMilestones.Inc()
		case domain.DailyGoalReached:
			metrics.DailyGoalsReached.Inc()
		}
	}
}

func (t *Tracker) observeRecord() {
	metrics.TotalPoints.Set(float64(t.rec.TotalPoints))
	metrics.Level.Set(float64(t.rec.Level))
	metrics.StreakDays.Set(float64(t.rec.StreakDays))
	metrics.LongestStreak.Set(float64(t.rec.LongestStreak))
}
