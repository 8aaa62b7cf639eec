package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitquest-health/fitquest/internal/daemon"
)

func init() {
	notificationsCmd.Flags().IntVar(&notifLimit, "limit", 20, "Maximum notifications to show")
	notificationsCmd.Flags().BoolVar(&notifMarkShown, "mark-shown", false, "Mark listed notifications as shown")
	rootCmd.AddCommand(notificationsCmd)
}

var (
	notifLimit     int
	notifMarkShown bool
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Show pending celebrations",
	RunE:    runNotifications,
}

func runNotifications(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	notifs, err := d.Notify.Pending(notifLimit)
	if err != nil {
		return err
	}
	if len(notifs) == 0 {
		fmt.Println("No pending notifications.")
		return nil
	}

	for _, n := range notifs {
		fmt.Printf("[%s] %s — %s\n", n.CreatedAt.Format("Jan 2 15:04"), n.Title, n.Body)
		if notifMarkShown {
			if err := d.Notify.MarkShown(n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
