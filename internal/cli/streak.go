package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
)

func init() {
	streakCmd.Flags().BoolVar(&streakBroken, "broken", false, "Record a missed day (resets the streak)")
	rootCmd.AddCommand(streakCmd)
}

var streakBroken bool

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Record today's activity for the streak",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	occs, err := d.Tracker.UpdateStreak(!streakBroken)
	if err != nil {
		return err
	}

	rec := d.Tracker.Record()
	if streakBroken {
		fmt.Printf("Streak reset (longest stays at %d)\n", rec.LongestStreak)
	} else {
		fmt.Printf("Streak: %d days (longest %d)\n", rec.StreakDays, rec.LongestStreak)
	}
	printOccurrences(occs)
	return nil
}
