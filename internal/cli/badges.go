package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
)

func init() {
	badgesCmd.AddCommand(badgeUnlockCmd)
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges and their unlock state",
	RunE:  runBadges,
}

var badgeUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock a badge explicitly",
	Args:  cobra.ExactArgs(1),
	RunE:  runBadgeUnlock,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec := d.Tracker.Record()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRARITY\tUNLOCKED")
	for _, b := range d.Engine.Badges() {
		unlocked := ""
		if ub, ok := rec.Badges[b.ID]; ok {
			unlocked = ub.UnlockedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Rarity, unlocked)
	}
	return w.Flush()
}

func runBadgeUnlock(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	occs, err := d.Tracker.UnlockBadge(args[0])
	if err != nil {
		return err
	}
	if len(occs) == 0 {
		fmt.Printf("%s was already unlocked\n", args[0])
		return nil
	}
	printOccurrences(occs)
	return nil
}
