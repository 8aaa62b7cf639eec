package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
	"github.com/fitquest-health/fitquest/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(missionsCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, streak, and badge summary",
	RunE:  runStatus,
}

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List today's and this week's missions",
	RunE:  runMissions,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec := d.Tracker.Record()
	levels := d.Engine.Levels()

	levelName := ""
	for _, l := range levels {
		if l.Level == rec.Level {
			levelName = l.Name
			break
		}
	}

	fmt.Printf("Level %d — %s\n", rec.Level, levelName)
	fmt.Printf("  XP: %d total, %d into level", rec.TotalPoints, rec.XPIntoLevel(levels))
	if rec.XPToNextLevel > 0 {
		fmt.Printf(", %d to next level", rec.XPToNextLevel)
	}
	fmt.Println()
	fmt.Printf("  Streak: %d days (longest %d)\n", rec.StreakDays, rec.LongestStreak)
	fmt.Printf("  Daily missions: %d/%d done today (goal %d)\n",
		rec.CompletedDaily(), countDaily(rec), d.Engine.DailyGoalThreshold())
	fmt.Printf("  Badges: %d/%d unlocked\n", len(rec.Badges), len(d.Engine.Badges()))
	fmt.Printf("  Week: %d workouts, %d meals, %d water, %d habits\n",
		rec.Weekly.Workouts, rec.Weekly.MealsLogged,
		rec.Weekly.WaterIntake, rec.Weekly.HabitsCompleted)
	return nil
}

func runMissions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec := d.Tracker.Record()
	missions := make([]domain.Mission, 0, len(rec.Missions))
	for _, m := range rec.Missions {
		missions = append(missions, m)
	}
	sort.Slice(missions, func(i, j int) bool {
		if missions[i].Kind != missions[j].Kind {
			return missions[i].Kind == domain.MissionDaily
		}
		return missions[i].ID < missions[j].ID
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tPROGRESS\t\tREWARD\tSTATUS")
	for _, m := range missions {
		status := ""
		if m.Completed {
			status = "done"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f/%.0f\t%d XP\t%s\n",
			m.ID, m.Kind, missionBar(m.ProgressPct()), m.Current, m.Target,
			m.RewardPoints, status)
	}
	return w.Flush()
}

func countDaily(rec domain.ProgressRecord) int {
	n := 0
	for _, m := range rec.Missions {
		if m.Kind == domain.MissionDaily {
			n++
		}
	}
	return n
}
