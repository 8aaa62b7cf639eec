package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
	"github.com/fitquest-health/fitquest/internal/domain"
)

func init() {
	rootCmd.AddCommand(weeklyCmd)
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly <category> [delta]",
	Short: "Increment a weekly counter (workouts, meals_logged, water_intake, habits_completed)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runWeekly,
}

func runWeekly(cmd *cobra.Command, args []string) error {
	delta := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid delta %q", args[1])
		}
		delta = n
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	cat := domain.CounterCategory(args[0])
	occs, err := d.Tracker.IncrementWeeklyCounter(cat, delta)
	if err != nil {
		return err
	}

	count, _ := d.Tracker.Record().Weekly.Get(cat)
	fmt.Printf("%s: %d this week\n", cat, count)
	printOccurrences(occs)
	return nil
}
