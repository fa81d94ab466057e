// Package set provides the commands that create or update records.
package set

import (
	"time"

	"github.com/spf13/cobra"
)

// SetCmd is the base set command for creating/updating records.
var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update records",
	Long: `Create or update records on the backend. Passing --id updates an existing
record with only the flags given; without it a new record is created.

Subcommands:
  resident    - A household (validated locally, duplicates refused)
  aid         - An aid disbursement
  child       - A child benefit registration
  assistance  - Assistance given to a child
  income      - A ledger income entry
  expense     - A ledger expense entry

Examples:
  aidctl set resident --husband-name "أحمد علي" --husband-id 123456789 \
      --wife-name "فاطمة" --wife-id 987654321 --phone 0591234567 --family-size 6
  aidctl set resident --offline ...      # queue for 'aidctl sync residents'
  aidctl set aid --resident-id 12 --type "طرد غذائي"
  aidctl set resident --id 12 --phone 0561234567`,
	// No Run function - requires a subcommand
}

func init() {
	SetCmd.AddCommand(residentCmd)
	SetCmd.AddCommand(aidCmd)
	SetCmd.AddCommand(childCmd)
	SetCmd.AddCommand(assistanceCmd)
	SetCmd.AddCommand(incomeCmd)
	SetCmd.AddCommand(expenseCmd)
}

// today returns the local calendar date as yyyy-mm-dd
func today() string {
	return time.Now().Format(time.DateOnly)
}

// changed collects the values of the flags that were set on the command line
type changed struct {
	cmd    *cobra.Command
	fields map[string]any
}

func newChanged(cmd *cobra.Command) *changed {
	return &changed{cmd: cmd, fields: make(map[string]any)}
}

func (c *changed) add(flag, field string, value any) {
	if c.cmd.Flags().Changed(flag) {
		c.fields[field] = value
	}
}
