package list

import (
	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
	"github.com/alfurqan/aidctl/internal/pkg/validation"
)

var (
	residentFlags viewFlags
	aidFlags      viewFlags
	childFlags    viewFlags
	incomeFlags   viewFlags
	expenseFlags  viewFlags

	invalidIDs bool
)

var residentsCmd = &cobra.Command{
	Use:   "residents",
	Short: "List registered households",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		return runListing(cmd, rt, &residentFlags, listing[records.Resident]{
			schema:  records.ResidentSchema,
			fetch:   rt.Client.ListResidents,
			columns: sheet.ResidentColumns,
			rows:    sheet.ResidentRows,
			narrow: func(rs []records.Resident) []records.Resident {
				if !invalidIDs {
					return rs
				}
				return InvalidIDs(rs)
			},
			show: func(rs []records.Resident) any { return residentTable(rs) },
		})
	}),
}

var aidsCmd = &cobra.Command{
	Use:   "aids",
	Short: "List aid disbursements",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		return runListing(cmd, rt, &aidFlags, listing[records.Aid]{
			schema:  records.AidSchema,
			fetch:   rt.Client.ListAids,
			columns: sheet.AidColumns,
			rows:    sheet.AidRows,
			show:    func(as []records.Aid) any { return aidTable(as) },
		})
	}),
}

var childrenCmd = &cobra.Command{
	Use:   "children",
	Short: "List child benefit registrations",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		return runListing(cmd, rt, &childFlags, listing[records.Child]{
			schema:  records.ChildSchema,
			fetch:   rt.Client.ListChildren,
			columns: sheet.ChildColumns,
			rows:    sheet.ChildRows,
			show:    func(cs []records.Child) any { return childTable(cs) },
		})
	}),
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "List ledger income entries",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		return runListing(cmd, rt, &incomeFlags, listing[records.Income]{
			schema:  records.IncomeSchema,
			fetch:   rt.Client.ListIncome,
			columns: sheet.LedgerColumns,
			rows:    func(is []records.Income) [][]string { return sheet.LedgerRows(is, nil) },
			show:    func(is []records.Income) any { return incomeTable(is) },
		})
	}),
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List ledger expense entries",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		return runListing(cmd, rt, &expenseFlags, listing[records.Expense]{
			schema:  records.ExpenseSchema,
			fetch:   rt.Client.ListExpenses,
			columns: sheet.LedgerColumns,
			rows:    func(es []records.Expense) [][]string { return sheet.LedgerRows(nil, es) },
			show:    func(es []records.Expense) any { return expenseTable(es) },
		})
	}),
}

func init() {
	addViewFlags(residentsCmd, &residentFlags)
	residentsCmd.Flags().BoolVar(&invalidIDs, "invalid-ids", false, "only show households whose husband identity is not nine digits")
	addViewFlags(aidsCmd, &aidFlags)
	addViewFlags(childrenCmd, &childFlags)
	addViewFlags(incomeCmd, &incomeFlags)
	addViewFlags(expensesCmd, &expenseFlags)
}

// InvalidIDs keeps the residents whose husband identity number is not nine digits
func InvalidIDs(residents []records.Resident) []records.Resident {
	var out []records.Resident
	for _, r := range residents {
		if !validation.IsValidIDNumber(r.HusbandIDNumber) {
			out = append(out, r)
		}
	}
	return out
}
