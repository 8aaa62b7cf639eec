package cli

import (
	"fmt"

	"github.com/fitquest-health/fitquest/internal/domain"
)

// printOccurrences renders the celebrations a transition produced.
func printOccurrences(occs []domain.Occurrence) {
	for _, occ := range occs {
		switch o := occ.(type) {
		case domain.LeveledUp:
			fmt.Printf("  ^ Level up! %d -> %d\n", o.From, o.To)
		case domain.MissionCompleted:
			fmt.Printf("  * Mission complete: %s (+%d XP)\n", o.MissionID, o.RewardPoints)
		case domain.BadgeUnlocked:
			fmt.Printf("  * Badge unlocked: %s\n", o.BadgeID)
		case domain.StreakMilestone:
			fmt.Printf("  ~ Streak milestone: %d days\n", o.Days)
		case domain.DailyGoalReached:
			fmt.Printf("  ! Daily goal reached: %d/%d missions\n", o.Completed, o.Threshold)
		}
	}
}

// missionBar renders a fixed-width completion bar for a mission.
func missionBar(pct float64) string {
	const width = 20
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "="
		} else {
			bar += "."
		}
	}
	return "[" + bar + "]"
}
