package progress

import "github.com/fitquest-health/fitquest/internal/domain"

// ─── Mission Catalog ────────────────────────────────────────────────────────
// Static templates. Each reset cycle stamps fresh live instances from these:
// current=0, completed=false. Rewards are catalog maximums — a mission can
// never pay out more than its template says.

// DailyMissions returns the five daily mission templates.
func DailyMissions() []domain.Mission {
	return []domain.Mission{
		{
			ID: "daily_workout", Title: "Daily Workout",
			Kind: domain.MissionDaily, Category: domain.CategoryWorkout,
			Target: 1, RewardPoints: 50,
		},
		{
			ID: "daily_water", Title: "Perfect Hydration",
			Kind: domain.MissionDaily, Category: domain.CategoryHabits,
			Target: 3000, RewardPoints: 30, // milliliters
		},
		{
			ID: "daily_meals", Title: "Meals On Time",
			Kind: domain.MissionDaily, Category: domain.CategoryNutrition,
			Target: 3, RewardPoints: 40,
		},
		{
			ID: "daily_sleep", Title: "Quality Sleep",
			Kind: domain.MissionDaily, Category: domain.CategoryHabits,
			Target: 7, RewardPoints: 35, // hours
		},
		{
			ID: "daily_habits", Title: "Full Checklist",
			Kind: domain.MissionDaily, Category: domain.CategoryHabits,
			Target: 6, RewardPoints: 60,
		},
	}
}

// WeeklyMissions returns the three weekly mission templates.
func WeeklyMissions() []domain.Mission {
	return []domain.Mission{
		{
			ID: "weekly_workouts", Title: "Iron Week",
			Kind: domain.MissionWeekly, Category: domain.CategoryWorkout,
			Target: 5, RewardPoints: 200,
		},
		{
			ID: "weekly_streak", Title: "Total Consistency",
			Kind: domain.MissionWeekly, Category: domain.CategoryHabits,
			Target: 5, RewardPoints: 300,
		},
		{
			ID: "weekly_perfect", Title: "Perfect Week",
			Kind: domain.MissionWeekly, Category: domain.CategoryHealth,
			Target: 100, RewardPoints: 500, // adherence percent
		},
	}
}

// ─── Badge Catalog ──────────────────────────────────────────────────────────

// AllBadges returns the full badge catalog.
// Note: sleep_guru has no evaluator rule — the weekly counters do not track
// sleep hours, so it is only reachable through an explicit unlock. Kept in
// the catalog on purpose rather than silently dropped.
func AllBadges() []domain.Badge {
	return []domain.Badge{
		{
			ID: "first_workout", Name: "First Step",
			Description: "Complete your first mission",
			Rarity:      domain.RarityCommon,
		},
		{
			ID: "week_warrior", Name: "Week Warrior",
			Description: "Log 7 workouts in a single week",
			Rarity:      domain.RarityRare,
		},
		{
			ID: "hydration_master", Name: "Hydration Master",
			Description: "Hit your water goal 21 times in a week",
			Rarity:      domain.RarityCommon,
		},
		{
			ID: "sleep_guru", Name: "Sleep Guru",
			Description: "Sleep 8 hours for 5 nights in a row",
			Rarity:      domain.RarityRare,
		},
		{
			ID: "nutrition_expert", Name: "Nutrition Expert",
			Description: "Log every meal for a full week",
			Rarity:      domain.RarityEpic,
		},
		{
			ID: "habit_master", Name: "Habit Master",
			Description: "Complete every habit for 30 days",
			Rarity:      domain.RarityLegendary,
		},
		{
			ID: "streak_30", Name: "Unstoppable",
			Description: "Keep a 30-day streak alive",
			Rarity:      domain.RarityEpic,
		},
		{
			ID: "health_champion", Name: "Health Champion",
			Description: "Reach level 5",
			Rarity:      domain.RarityLegendary,
		},
	}
}
