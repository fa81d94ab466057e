// Package imports provides the spreadsheet import commands.
package imports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/importer"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
	"github.com/alfurqan/aidctl/internal/pkg/store"
)

// ImportCmd is the base import command for spreadsheet imports.
var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from a spreadsheet",
	Long: `Import records from an .xlsx or .csv spreadsheet.

Rows are reconciled one at a time: rows already recorded are skipped,
rows that fail are reported and the import continues. A missing
required column aborts the import before anything is sent.

Subcommands:
  aids       - Aid history (الاسم, الهوية, نوع_المساعدة, تاريخ_المساعدة)
  children   - Child benefit registry (eight columns)
  residents  - Upload a resident workbook for server-side import

Examples:
  aidctl import aids aids-may.xlsx
  aidctl import children children.csv -o table`,
	// No Run function - requires a subcommand
}

var aidsCmd = &cobra.Command{
	Use:   "aids FILE",
	Short: "Import aid history",
	Args:  cobra.ExactArgs(1),
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, args []string, rt *cmdutil.Runtime) error {
		target := importer.NewAidTarget(rt.Client, store.New[records.Aid](nil))
		return runImport(cmd, rt, args[0], target)
	}),
}

var childrenCmd = &cobra.Command{
	Use:   "children FILE",
	Short: "Import child benefit registrations",
	Args:  cobra.ExactArgs(1),
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, args []string, rt *cmdutil.Runtime) error {
		target := importer.NewChildTarget(rt.Client, store.New[records.Child](nil))
		return runImport(cmd, rt, args[0], target)
	}),
}

var residentsCmd = &cobra.Command{
	Use:   "residents FILE",
	Short: "Upload a resident workbook",
	Long: `Upload a resident workbook to the backend, which validates and imports
it server-side.`,
	Args: cobra.ExactArgs(1),
	Run:  cmdutil.WithRuntime(runUploadResidents),
}

func init() {
	ImportCmd.AddCommand(aidsCmd)
	ImportCmd.AddCommand(childrenCmd)
	ImportCmd.AddCommand(residentsCmd)
}

func runImport(cmd *cobra.Command, rt *cmdutil.Runtime, path string, target importer.Target) error {
	// Parse the file before touching the network
	table, err := sheet.Read(path)
	if err != nil {
		return err
	}
	if err := importer.CheckColumns(table, target.Required()); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}

	rec := importer.Reconciler{Target: target, Observer: rt.Metrics}
	report, err := rec.Run(ctx, table)
	if err != nil {
		return err
	}
	logger.Info("Import finished", "entity", report.Entity, "file", path, "summary", report.Summary())
	return rt.Printer.Print(reportTable{report: report})
}

func runUploadResidents(cmd *cobra.Command, args []string, rt *cmdutil.Runtime) error {
	path := args[0]
	if _, err := sheet.Format(path); err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}

	// #nosec G304 -- Path is from command line argument
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	msg, err := rt.Client.UploadResidents(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	logger.Info("Uploaded resident workbook", "file", path)
	return rt.Printer.Print(msg)
}

// reportTable shows an import report as a table; JSON output keeps the report shape
type reportTable struct {
	report *importer.Report
}

func (t reportTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.report)
}

func (t reportTable) Headers() []string {
	return []string{"Row", "Name", "Outcome", "Message"}
}

func (t reportTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.report.Rows)+1)
	for _, r := range t.report.Rows {
		rows = append(rows, []string{strconv.Itoa(r.Row), r.Name, string(r.Outcome), r.Message})
	}
	rows = append(rows, []string{"", "", "total", t.report.Summary()})
	return rows
}
