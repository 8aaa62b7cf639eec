package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
)

func init() {
	rootCmd.AddCommand(resetDayCmd)
	rootCmd.AddCommand(resetWeekCmd)
}

var resetDayCmd = &cobra.Command{
	Use:   "reset-day",
	Short: "Start a new day (re-seeds daily missions)",
	RunE:  runResetDay,
}

var resetWeekCmd = &cobra.Command{
	Use:   "reset-week",
	Short: "Start a new week (re-seeds weekly missions, zeroes counters)",
	RunE:  runResetWeek,
}

func runResetDay(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if _, err := d.Tracker.ResetDailyMissions(); err != nil {
		return err
	}
	fmt.Println("Daily missions reset. New day, new chances.")
	return nil
}

func runResetWeek(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if _, err := d.Tracker.ResetWeek(); err != nil {
		return err
	}
	fmt.Println("Weekly missions and counters reset.")
	return nil
}
