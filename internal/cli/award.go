package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
)

func init() {
	rootCmd.AddCommand(awardCmd)
}

var awardCmd = &cobra.Command{
	Use:   "award <xp>",
	Short: "Award experience points",
	Args:  cobra.ExactArgs(1),
	RunE:  runAward,
}

func runAward(cmd *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid XP amount %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	occs, err := d.Tracker.AwardXP(amount)
	if err != nil {
		return err
	}

	rec := d.Tracker.Record()
	fmt.Printf("Awarded %d XP (total %d, level %d)\n", amount, rec.TotalPoints, rec.Level)
	printOccurrences(occs)
	return nil
}
