package progress

import "github.com/fitquest-health/fitquest/internal/domain"

// ─── Achievement Evaluator ──────────────────────────────────────────────────
// A fixed, declarative rule table mapping record predicates to badge ids.
// Predicates are O(1) field reads, so the whole table is evaluated after
// every mutation. A badge is never re-locked; unlocking is idempotent.
//
// sleep_guru is deliberately absent: its original predicate read a sleep
// counter the weekly aggregates never tracked, so it could never fire.
// That stays a product decision, not a silent fix — the badge remains in
// the catalog and can be unlocked explicitly.

// BadgeRule pairs a qualification predicate with the badge it unlocks.
type BadgeRule struct {
	BadgeID   string
	Qualifies func(domain.ProgressRecord) bool
}

// BadgeRules returns the evaluator's rule table.
func BadgeRules() []BadgeRule {
	return []BadgeRule{
		{
			BadgeID:   "first_workout",
			Qualifies: func(r domain.ProgressRecord) bool { return r.MissionsCompleted >= 1 },
		},
		{
			BadgeID:   "week_warrior",
			Qualifies: func(r domain.ProgressRecord) bool { return r.Weekly.Workouts >= 7 },
		},
		{
			BadgeID:   "hydration_master",
			Qualifies: func(r domain.ProgressRecord) bool { return r.Weekly.WaterIntake >= 21 },
		},
		{
			BadgeID:   "nutrition_expert",
			Qualifies: func(r domain.ProgressRecord) bool { return r.Weekly.MealsLogged >= 21 },
		},
		{
			BadgeID:   "habit_master",
			Qualifies: func(r domain.ProgressRecord) bool { return r.Weekly.HabitsCompleted >= 42 },
		},
		{
			BadgeID:   "streak_30",
			Qualifies: func(r domain.ProgressRecord) bool { return r.StreakDays >= 30 },
		},
		{
			BadgeID:   "health_champion",
			Qualifies: func(r domain.ProgressRecord) bool { return r.Level >= 5 },
		},
	}
}

// EvaluateBadges runs the rule table against the record and unlocks every
// newly qualifying badge. Already-unlocked badges are skipped, so repeated
// evaluation produces no duplicate occurrences.
func (e *Engine) EvaluateBadges(rec domain.ProgressRecord) (domain.ProgressRecord, []domain.Occurrence) {
	var occs []domain.Occurrence
	for _, rule := range BadgeRules() {
		if _, unlocked := rec.Badges[rule.BadgeID]; unlocked {
			continue
		}
		if !rule.Qualifies(rec) {
			continue
		}
		next, more, err := e.UnlockBadge(rec, rule.BadgeID)
		if err != nil {
			continue // Rule references a badge missing from the catalog
		}
		rec = next
		occs = append(occs, more...)
	}
	return rec, occs
}
