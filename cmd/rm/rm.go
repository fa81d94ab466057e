// Package rm provides the commands that delete records.
package rm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
)

var idFile string

// RmCmd is the base rm command for removing records.
var RmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove records",
	Long: `Remove records from the backend.

Each ID is deleted independently: a failure is reported and the
remaining IDs are still processed.

Subcommands:
  resident  - Households, by record ID
  aid       - Aid disbursements, by record ID
  child     - Child registrations, by identity number

Examples:
  aidctl rm resident 12 13
  aidctl rm child 400123456
  aidctl rm aid -f aid-ids.txt`,
	// No Run function - requires a subcommand
}

var residentCmd = &cobra.Command{
	Use:   "resident [ID...]",
	Short: "Remove households",
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, args []string, rt *cmdutil.Runtime) error {
		return runRm(cmd, rt, args, true, func(ctx context.Context, id string) error {
			n, _ := strconv.Atoi(id)
			return rt.Client.DeleteResident(ctx, n)
		})
	}),
}

var aidCmd = &cobra.Command{
	Use:   "aid [ID...]",
	Short: "Remove aid disbursements",
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, args []string, rt *cmdutil.Runtime) error {
		return runRm(cmd, rt, args, true, func(ctx context.Context, id string) error {
			n, _ := strconv.Atoi(id)
			return rt.Client.DeleteAid(ctx, n)
		})
	}),
}

var childCmd = &cobra.Command{
	Use:   "child [ID_NUMBER...]",
	Short: "Remove child registrations by identity number",
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, args []string, rt *cmdutil.Runtime) error {
		return runRm(cmd, rt, args, false, rt.Client.DeleteChild)
	}),
}

func init() {
	for _, c := range []*cobra.Command{residentCmd, aidCmd, childCmd} {
		c.Flags().StringVarP(&idFile, "file", "f", "", "file containing IDs to delete (one per line)")
		RmCmd.AddCommand(c)
	}
}

func runRm(cmd *cobra.Command, rt *cmdutil.Runtime, args []string, numeric bool, del func(context.Context, string) error) error {
	ids := args
	if idFile != "" {
		fromFile, err := readIDsFromFile(idFile)
		if err != nil {
			return &cmdutil.UsageError{Err: err}
		}
		ids = append(ids, fromFile...)
	}
	if len(ids) == 0 {
		return cmdutil.Usagef("no IDs given (pass them as arguments or with --file)")
	}
	if numeric {
		for _, id := range ids {
			if n, err := strconv.Atoi(id); err != nil || n <= 0 {
				return cmdutil.Usagef("invalid record ID %q", id)
			}
		}
	}

	ctx := cmd.Context()
	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}

	result := apiclient.RunBatch(ctx, ids, del)
	logger.Info("Delete finished", "summary", result.Summary())
	if err := rt.Printer.Print(result); err != nil {
		return err
	}
	if len(result.Succeeded) == 0 && result.HasErrors() {
		first := result.Failed[0]
		if err := first.Err(); err != nil {
			return err
		}
		return errors.New(first.Error)
	}
	return nil
}

// readIDsFromFile reads IDs from a file, one per line
func readIDsFromFile(path string) ([]string, error) {
	// #nosec G304 -- Path is from CLI flag, not user input
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ID file: %w", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ID file: %w", err)
	}

	return ids, nil
}
