package show

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/ledger"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
)

var (
	ledgerExport string
	childID      int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show income, expenses and balance",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		if ledgerExport != "" {
			if _, err := sheet.Format(ledgerExport); err != nil {
				return err
			}
		}
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		income, err := rt.Client.ListIncome(ctx)
		if err != nil {
			return fmt.Errorf("failed to list income: %w", err)
		}
		expenses, err := rt.Client.ListExpenses(ctx)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		if ledgerExport != "" {
			if err := sheet.Write(ledgerExport, sheet.LedgerColumns, sheet.LedgerRows(income, expenses)); err != nil {
				return err
			}
			logger.Info("Exported ledger", "path", ledgerExport, "rows", len(income)+len(expenses))
		}
		return rt.Printer.Print(totalsTable{ledger.Compute(income, expenses)})
	}),
}

var lastAssistanceCmd = &cobra.Command{
	Use:   "last-assistance",
	Short: "Show the most recent assistance given to a child",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		if childID <= 0 {
			return cmdutil.Usagef("--child is required")
		}
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		last, err := rt.Client.LastAssistance(ctx, childID)
		if err != nil {
			return err
		}
		return rt.Printer.Print(last)
	}),
}

func init() {
	ledgerCmd.Flags().StringVar(&ledgerExport, "export", "", "write every ledger entry to an .xlsx or .csv file")
	lastAssistanceCmd.Flags().IntVar(&childID, "child", 0, "child ID")
}

type totalsTable struct {
	ledger.Totals
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (t totalsTable) Headers() []string { return []string{"Entry", "Amount"} }

func (t totalsTable) Rows() [][]string {
	rows := [][]string{
		{"Income", money(t.Income)},
		{"Expenses", money(t.Expenses)},
		{"Balance", money(t.Balance)},
	}
	types := make([]string, 0, len(t.ByType))
	for typ := range t.ByType {
		types = append(types, typ)
	}
	slices.Sort(types)
	for _, typ := range types {
		rows = append(rows, []string{"  " + typ, money(t.ByType[typ])})
	}
	return rows
}
