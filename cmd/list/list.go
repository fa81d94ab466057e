// Package list provides the list commands for every record type.
package list

import (
	"github.com/spf13/cobra"
)

// ListCmd is the base list command for listing records.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records",
	Long: `List records from the backend, optionally filtered, searched and exported.

Subcommands:
  residents      - Registered households
  aids           - Aid disbursements
  children       - Child benefit registrations
  income         - Ledger income entries
  expenses       - Ledger expense entries
  notifications  - Audit notifications
  users          - Accounts of the current tenant
  queue          - Households waiting in the offline queue

Filters use field:<op><value>:
  num_family_members:>5        numeric greater/less/equal
  date:before:2024-01-01       date before/after/equal
  neighborhood:in:الشرقي,الغربي membership
  damage_level:=كلي            exact
  wife_name:~فاط               text

Examples:
  aidctl list residents --search أحمد
  aidctl list residents -f num_family_members:>5 -f damage_level:=كلي
  aidctl list aids -f date:after:2024-05-01 --export aids.xlsx
  aidctl list residents --preset big-families.yaml`,
	// No Run function - requires a subcommand
}

func init() {
	ListCmd.AddCommand(residentsCmd)
	ListCmd.AddCommand(aidsCmd)
	ListCmd.AddCommand(childrenCmd)
	ListCmd.AddCommand(incomeCmd)
	ListCmd.AddCommand(expensesCmd)
	ListCmd.AddCommand(notificationsCmd)
	ListCmd.AddCommand(usersCmd)
	ListCmd.AddCommand(queueCmd)
}
