// Package watch provides commands that follow backend state over time.
package watch

import (
	"github.com/spf13/cobra"
)

// WatchCmd is the base watch command.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow backend state",
	Long: `Follow backend state until interrupted.

Subcommands:
  notifications  - Poll audit notifications and report new ones

Examples:
  aidctl watch notifications
  aidctl watch notifications --viewing --interval 5s`,
	// No Run function - requires a subcommand
}

func init() {
	WatchCmd.AddCommand(notificationsCmd)
}
