package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
)

func init() {
	missionCompleteCmd.Flags().IntVar(&missionPoints, "points", -1,
		"Override reward (partial credit, clamped to the catalog reward)")
	missionCmd.AddCommand(missionProgressCmd)
	missionCmd.AddCommand(missionCompleteCmd)
	rootCmd.AddCommand(missionCmd)
}

var missionPoints int

var missionCmd = &cobra.Command{
	Use:   "mission",
	Short: "Update or complete missions",
}

var missionProgressCmd = &cobra.Command{
	Use:   "progress <id> <value>",
	Short: "Set a mission's progress value",
	Args:  cobra.ExactArgs(2),
	RunE:  runMissionProgress,
}

var missionCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Complete a mission and collect its reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runMissionComplete,
}

func runMissionProgress(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid progress value %q", args[1])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	occs, err := d.Tracker.SetMissionProgress(args[0], value)
	if err != nil {
		return err
	}

	m := d.Tracker.Record().Missions[args[0]]
	fmt.Printf("%s %s %.0f/%.0f\n", args[0], missionBar(m.ProgressPct()), m.Current, m.Target)
	printOccurrences(occs)
	return nil
}

func runMissionComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	var override *int
	if missionPoints >= 0 {
		override = &missionPoints
	}

	occs, err := d.Tracker.CompleteMission(args[0], override)
	if err != nil {
		return err
	}
	if len(occs) == 0 {
		fmt.Printf("%s was already complete\n", args[0])
		return nil
	}
	printOccurrences(occs)
	return nil
}
