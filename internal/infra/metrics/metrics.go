// Package metrics provides Prometheus metrics for FitQuest — counters for
// engine occurrences and gauges mirroring the progress record.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── XP & Levels ────────────────────────────────────────────────────────────

// XPAwarded tracks total experience points awarded.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "xp_awarded_total",
	Help:      "Total experience points awarded.",
})

// TotalPoints mirrors the record's cumulative point total.
var TotalPoints = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "total_points",
	Help:      "Cumulative experience points.",
})

// Level mirrors the record's current level.
var Level = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "level",
	Help:      "Current level.",
})

// LevelUps counts level-up occurrences.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "level_ups_total",
	Help:      "Total level-up occurrences.",
})

// ─── Missions ───────────────────────────────────────────────────────────────

// MissionsCompleted counts completed missions by kind.
var MissionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "missions_completed_total",
	Help:      "Total completed missions.",
}, []string{"kind"})

// DailyGoalsReached counts daily celebration-threshold crossings.
var DailyGoalsReached = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "daily_goals_reached_total",
	Help:      "Times the daily completed-mission threshold was crossed.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgesUnlocked counts badge unlock occurrences.
var BadgesUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakDays mirrors the current streak length.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "streak_days",
	Help:      "Current streak length in days.",
})

// LongestStreak mirrors the historical maximum streak.
var LongestStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "longest_streak_days",
	Help:      "Longest streak ever recorded.",
})

// StreakMilestones counts weekly-cadence streak milestones.
var StreakMilestones = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "streak_milestones_total",
	Help:      "Total streak milestones (multiples of 7 days).",
})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsCreated counts notifications accepted by the delivery policy.
var NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "notifications_created_total",
	Help:      "Total notifications created, by occurrence kind.",
}, []string{"kind"})

// NotificationsSuppressed counts notifications dropped by the policy.
var NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "notifications_suppressed_total",
	Help:      "Total notifications suppressed, by reason.",
}, []string{"reason"})
