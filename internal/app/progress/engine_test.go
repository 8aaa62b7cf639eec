package progress_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fitquest-health/fitquest/internal/app/progress"
	"github.com/fitquest-health/fitquest/internal/domain"
)

func newEngine(t *testing.T, opts ...progress.Option) *progress.Engine {
	t.Helper()
	return progress.New(opts...)
}

func hasOccurrence(occs []domain.Occurrence, kind domain.OccurrenceKind) bool {
	for _, occ := range occs {
		if occ.Kind() == kind {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════════════════════
// XP & Level Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestAwardXP_LevelsUp(t *testing.T) {
	e := newEngine(t, progress.WithLevels([]domain.LevelDefinition{
		{Level: 1, Name: "One", XPThreshold: 0},
		{Level: 2, Name: "Two", XPThreshold: 100},
		{Level: 3, Name: "Three", XPThreshold: 300},
	}))
	rec := e.NewRecord()

	rec, occs, err := e.AwardXP(rec, 150)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if rec.TotalPoints != 150 {
		t.Errorf("expected 150 points, got %d", rec.TotalPoints)
	}
	if rec.Level != 2 {
		t.Errorf("expected level 2, got %d", rec.Level)
	}
	if rec.XPToNextLevel != 150 {
		t.Errorf("expected 150 to next level, got %d", rec.XPToNextLevel)
	}
	if !hasOccurrence(occs, domain.OccLeveledUp) {
		t.Error("expected a LeveledUp occurrence")
	}
}

func TestAwardXP_NoLevelChangeNoOccurrence(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, occs, err := e.AwardXP(rec, 50)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected no occurrences below threshold, got %d", len(occs))
	}
	if rec.Level != 1 {
		t.Errorf("expected level 1, got %d", rec.Level)
	}
}

func TestAwardXP_NegativeRejected(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	next, occs, err := e.AwardXP(rec, -10)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(occs) != 0 {
		t.Error("rejected transition must not emit occurrences")
	}
	if next.TotalPoints != rec.TotalPoints {
		t.Error("rejected transition must not change the record")
	}
}

func TestAwardXP_ZeroIsValid(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	if _, _, err := e.AwardXP(rec, 0); err != nil {
		t.Fatalf("award 0 should be valid: %v", err)
	}
}

func TestAwardXP_PointsMonotonic(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	prev := 0
	for _, amount := range []int{10, 0, 250, 1, 999} {
		next, _, err := e.AwardXP(rec, amount)
		if err != nil {
			t.Fatalf("award %d: %v", amount, err)
		}
		if next.TotalPoints < prev {
			t.Fatalf("points went down: %d -> %d", prev, next.TotalPoints)
		}
		prev = next.TotalPoints
		rec = next
	}
}

func TestAwardXP_SkipsMultipleLevels(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, occs, err := e.AwardXP(rec, 1200)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if rec.Level != 5 {
		t.Errorf("expected level 5 at 1200 XP, got %d", rec.Level)
	}

	// One LeveledUp reporting the full jump, not one per level
	count := 0
	for _, occ := range occs {
		if lu, ok := occ.(domain.LeveledUp); ok {
			count++
			if lu.From != 1 || lu.To != 5 {
				t.Errorf("expected 1 -> 5, got %d -> %d", lu.From, lu.To)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one LeveledUp, got %d", count)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Mission Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestSetMissionProgress_PartialNoReward(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, occs, err := e.SetMissionProgress(rec, "daily_water", 1500)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("partial progress must not emit occurrences, got %d", len(occs))
	}
	if rec.TotalPoints != 0 {
		t.Errorf("partial progress must not pay, got %d points", rec.TotalPoints)
	}
	if m := rec.Missions["daily_water"]; m.Current != 1500 || m.Completed {
		t.Errorf("unexpected mission state: %+v", m)
	}
}

func TestSetMissionProgress_CompletionPaysOnce(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, occs, err := e.SetMissionProgress(rec, "daily_workout", 1)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if rec.TotalPoints != 50 {
		t.Errorf("expected 50 points from daily_workout, got %d", rec.TotalPoints)
	}
	if !hasOccurrence(occs, domain.OccMissionCompleted) {
		t.Error("expected MissionCompleted occurrence")
	}
	if rec.MissionsCompleted != 1 {
		t.Errorf("expected lifetime count 1, got %d", rec.MissionsCompleted)
	}

	// Second update on a completed mission: silent no-op
	rec2, occs2, err := e.SetMissionProgress(rec, "daily_workout", 5)
	if err != nil {
		t.Fatalf("re-progress: %v", err)
	}
	if len(occs2) != 0 {
		t.Error("completed mission must not re-fire")
	}
	if rec2.TotalPoints != 50 {
		t.Errorf("completed mission must not re-pay, got %d", rec2.TotalPoints)
	}
	if m := rec2.Missions["daily_workout"]; m.Current != m.Target {
		t.Errorf("completed mission must stay frozen: %+v", m)
	}
}

func TestSetMissionProgress_ClampsToTarget(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, _, err := e.SetMissionProgress(rec, "daily_water", 9999)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	m := rec.Missions["daily_water"]
	if m.Current != 3000 {
		t.Errorf("expected current clamped to 3000, got %v", m.Current)
	}
	if !m.Completed {
		t.Error("clamped overshoot should still complete the mission")
	}
}

func TestSetMissionProgress_InvalidValues(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	for _, v := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, _, err := e.SetMissionProgress(rec, "daily_workout", v); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("value %v: expected ErrValidation, got %v", v, err)
		}
	}
}

func TestSetMissionProgress_UnknownMission(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	_, _, err := e.SetMissionProgress(rec, "daily_unicorns", 1)
	if !errors.Is(err, domain.ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestCompleteMission_OverrideClamped(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	over := 9999
	rec, occs, err := e.CompleteMission(rec, "daily_sleep", &over)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if rec.TotalPoints != 35 {
		t.Errorf("override must clamp to the catalog reward 35, got %d", rec.TotalPoints)
	}

	found := false
	for _, occ := range occs {
		if mc, ok := occ.(domain.MissionCompleted); ok {
			found = true
			if mc.RewardPoints != 35 {
				t.Errorf("occurrence reports %d, want 35", mc.RewardPoints)
			}
		}
	}
	if !found {
		t.Error("expected MissionCompleted occurrence")
	}
}

func TestCompleteMission_PartialCredit(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	partial := 20
	rec, _, err := e.CompleteMission(rec, "daily_sleep", &partial)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if rec.TotalPoints != 20 {
		t.Errorf("expected partial credit 20, got %d", rec.TotalPoints)
	}
	if m := rec.Missions["daily_sleep"]; !m.Completed || m.Current != m.Target {
		t.Errorf("mission should be fully complete: %+v", m)
	}
}

func TestCompleteMission_Idempotent(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, _, err := e.CompleteMission(rec, "daily_meals", nil)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	points := rec.TotalPoints

	rec, occs, err := e.CompleteMission(rec, "daily_meals", nil)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if rec.TotalPoints != points {
		t.Errorf("second completion must not pay again: %d -> %d", points, rec.TotalPoints)
	}
	if len(occs) != 0 {
		t.Error("second completion must not emit occurrences")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Daily Goal Edge Trigger
// ═══════════════════════════════════════════════════════════════════════════

func TestDailyGoal_FiresExactlyOnCrossing(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	var err error
	var occs []domain.Occurrence

	rec, occs, err = e.SetMissionProgress(rec, "daily_workout", 1)
	if err != nil {
		t.Fatalf("1st: %v", err)
	}
	if hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Error("goal must not fire at 1 completion")
	}

	rec, occs, err = e.SetMissionProgress(rec, "daily_meals", 3)
	if err != nil {
		t.Fatalf("2nd: %v", err)
	}
	if hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Error("goal must not fire at 2 completions")
	}

	rec, occs, err = e.SetMissionProgress(rec, "daily_water", 3000)
	if err != nil {
		t.Fatalf("3rd: %v", err)
	}
	if !hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Fatal("goal must fire at the 3rd completion")
	}

	// The 4th and 5th completions are past the edge — no re-fire
	rec, occs, err = e.SetMissionProgress(rec, "daily_sleep", 7)
	if err != nil {
		t.Fatalf("4th: %v", err)
	}
	if hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Error("goal must not re-fire at 4 completions")
	}

	_, occs, err = e.SetMissionProgress(rec, "daily_habits", 6)
	if err != nil {
		t.Fatalf("5th: %v", err)
	}
	if hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Error("goal must not re-fire at 5 completions")
	}
}

func TestDailyGoal_ReArmsAfterReset(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	for _, id := range []string{"daily_workout", "daily_meals", "daily_habits"} {
		var err error
		rec, _, err = e.CompleteMission(rec, id, nil)
		if err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
	}
	if rec.DailySeenDone != 3 {
		t.Fatalf("expected observed count 3, got %d", rec.DailySeenDone)
	}

	rec, _, err := e.ResetDailyMissions(rec)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if rec.DailySeenDone != 0 {
		t.Errorf("reset must re-arm the trigger, observed=%d", rec.DailySeenDone)
	}

	// The goal can fire again on the new day
	for _, id := range []string{"daily_workout", "daily_meals"} {
		var err error
		rec, _, err = e.CompleteMission(rec, id, nil)
		if err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
	}
	_, occs, err := e.CompleteMission(rec, "daily_habits", nil)
	if err != nil {
		t.Fatalf("3rd on new day: %v", err)
	}
	if !hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Error("goal must fire again after the daily reset")
	}
}

func TestDailyGoal_ConfigurableThreshold(t *testing.T) {
	e := newEngine(t, progress.WithDailyGoalThreshold(5))
	rec := e.NewRecord()

	ids := []string{"daily_workout", "daily_water", "daily_meals", "daily_sleep"}
	for _, id := range ids {
		var occs []domain.Occurrence
		var err error
		rec, occs, err = e.CompleteMission(rec, id, nil)
		if err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
		if hasOccurrence(occs, domain.OccDailyGoalReached) {
			t.Errorf("goal fired early at %s with threshold 5", id)
		}
	}

	_, occs, err := e.CompleteMission(rec, "daily_habits", nil)
	if err != nil {
		t.Fatalf("5th: %v", err)
	}
	if !hasOccurrence(occs, domain.OccDailyGoalReached) {
		t.Error("goal must fire at the 5th completion with threshold 5")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestUnlockBadge_Idempotent(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	e := newEngine(t, progress.WithClock(func() time.Time { return fixed }))
	rec := e.NewRecord()

	rec, occs, err := e.UnlockBadge(rec, "sleep_guru")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("expected one occurrence, got %d", len(occs))
	}
	if got := rec.Badges["sleep_guru"].UnlockedAt; !got.Equal(fixed) {
		t.Errorf("expected unlock time %v, got %v", fixed, got)
	}

	rec, occs, err = e.UnlockBadge(rec, "sleep_guru")
	if err != nil {
		t.Fatalf("re-unlock: %v", err)
	}
	if len(occs) != 0 {
		t.Error("second unlock must be silent")
	}
	if len(rec.Badges) != 1 {
		t.Errorf("expected 1 badge, got %d", len(rec.Badges))
	}
}

func TestUnlockBadge_UnknownBadge(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	_, _, err := e.UnlockBadge(rec, "participation_trophy")
	if !errors.Is(err, domain.ErrBadgeNotFound) {
		t.Fatalf("expected ErrBadgeNotFound, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestUpdateStreak_MilestoneEverySeventhDay(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	for day := 1; day <= 14; day++ {
		var occs []domain.Occurrence
		var err error
		rec, occs, err = e.UpdateStreak(rec, true)
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		fired := hasOccurrence(occs, domain.OccStreakMilestone)
		if day%7 == 0 && !fired {
			t.Errorf("day %d: expected milestone", day)
		}
		if day%7 != 0 && fired {
			t.Errorf("day %d: unexpected milestone", day)
		}
	}
}

func TestUpdateStreak_BreakPreservesLongest(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	for i := 0; i < 5; i++ {
		rec, _, _ = e.UpdateStreak(rec, true)
	}
	rec, occs, err := e.UpdateStreak(rec, false)
	if err != nil {
		t.Fatalf("break: %v", err)
	}
	if rec.StreakDays != 0 {
		t.Errorf("expected streak 0 after break, got %d", rec.StreakDays)
	}
	if rec.LongestStreak != 5 {
		t.Errorf("expected longest 5 preserved, got %d", rec.LongestStreak)
	}
	if len(occs) != 0 {
		t.Error("breaking a streak is silent")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Weekly Counters & Resets
// ═══════════════════════════════════════════════════════════════════════════

func TestIncrementWeeklyCounter(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, _, err := e.IncrementWeeklyCounter(rec, domain.CounterWorkouts, 2)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if rec.Weekly.Workouts != 2 {
		t.Errorf("expected 2 workouts, got %d", rec.Weekly.Workouts)
	}

	if _, _, err := e.IncrementWeeklyCounter(rec, domain.CounterWorkouts, -1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("negative delta: expected ErrValidation, got %v", err)
	}
	if _, _, err := e.IncrementWeeklyCounter(rec, "sleep_hours", 1); !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("unknown category: expected ErrInvalidCategory, got %v", err)
	}
}

func TestResetDailyMissions_PreservesEverythingElse(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, _, _ = e.CompleteMission(rec, "daily_workout", nil)
	rec, _, _ = e.IncrementWeeklyCounter(rec, domain.CounterMealsLogged, 3)
	rec, _, _ = e.SetMissionProgress(rec, "weekly_workouts", 2)
	points := rec.TotalPoints
	lifetime := rec.MissionsCompleted

	rec, occs, err := e.ResetDailyMissions(rec)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(occs) != 0 {
		t.Error("reset is silent")
	}
	if rec.TotalPoints != points {
		t.Errorf("reset must not touch points: %d -> %d", points, rec.TotalPoints)
	}
	if rec.MissionsCompleted != lifetime {
		t.Errorf("reset must not touch the lifetime count: %d -> %d", lifetime, rec.MissionsCompleted)
	}
	if m := rec.Missions["daily_workout"]; m.Completed || m.Current != 0 {
		t.Errorf("daily mission not re-seeded: %+v", m)
	}
	if m := rec.Missions["weekly_workouts"]; m.Current != 2 {
		t.Errorf("weekly mission must survive the daily reset: %+v", m)
	}
	if rec.Weekly.MealsLogged != 3 {
		t.Errorf("weekly counters must survive the daily reset: %d", rec.Weekly.MealsLogged)
	}
}

func TestResetWeek_ZeroesCountersKeepsDaily(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	rec, _, _ = e.IncrementWeeklyCounter(rec, domain.CounterWaterIntake, 10)
	rec, _, _ = e.SetMissionProgress(rec, "weekly_workouts", 5) // completes
	rec, _, _ = e.SetMissionProgress(rec, "daily_water", 500)
	points := rec.TotalPoints

	rec, _, err := e.ResetWeek(rec)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if rec.Weekly != (domain.WeeklyCounters{}) {
		t.Errorf("weekly counters not zeroed: %+v", rec.Weekly)
	}
	if m := rec.Missions["weekly_workouts"]; m.Completed || m.Current != 0 {
		t.Errorf("weekly mission not re-seeded: %+v", m)
	}
	if m := rec.Missions["daily_water"]; m.Current != 500 {
		t.Errorf("daily mission must survive the weekly reset: %+v", m)
	}
	if rec.TotalPoints != points {
		t.Errorf("weekly reset must not touch points: %d -> %d", points, rec.TotalPoints)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Purity
// ═══════════════════════════════════════════════════════════════════════════

func TestTransitions_InputRecordUntouched(t *testing.T) {
	e := newEngine(t)
	rec := e.NewRecord()

	if _, _, err := e.SetMissionProgress(rec, "daily_workout", 1); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if rec.TotalPoints != 0 {
		t.Error("transition mutated the input record's points")
	}
	if m := rec.Missions["daily_workout"]; m.Current != 0 || m.Completed {
		t.Errorf("transition mutated the input record's missions: %+v", m)
	}

	if _, _, err := e.UnlockBadge(rec, "sleep_guru"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if len(rec.Badges) != 0 {
		t.Error("transition mutated the input record's badges")
	}
}
