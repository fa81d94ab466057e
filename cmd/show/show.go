// Package show provides commands that display statistics and local state.
package show

import (
	"github.com/spf13/cobra"
)

// ShowCmd is the base show command for displaying information.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display statistics and local state",
	Long: `Display statistics computed by the backend or locally, and local state.

Subcommands:
  stats            - Resident statistics from the backend
  aid-stats        - Aids per day and per type, computed locally
  ledger           - Income, expenses and balance
  last-assistance  - Most recent assistance given to a child
  session          - The stored session for the current backend
  version          - Build information

Examples:
  aidctl show stats
  aidctl show aid-stats -o json
  aidctl show ledger --export ledger.xlsx
  aidctl show last-assistance --child 7`,
	// No Run function - requires a subcommand
}

func init() {
	ShowCmd.AddCommand(statsCmd)
	ShowCmd.AddCommand(aidStatsCmd)
	ShowCmd.AddCommand(ledgerCmd)
	ShowCmd.AddCommand(lastAssistanceCmd)
	ShowCmd.AddCommand(sessionCmd)
	ShowCmd.AddCommand(versionCmd)
}
