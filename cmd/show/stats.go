package show

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show resident statistics",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		s, err := rt.Client.ResidentStats(ctx)
		if err != nil {
			return err
		}
		return rt.Printer.Print(residentStatsTable{s})
	}),
}

var aidStatsCmd = &cobra.Command{
	Use:   "aid-stats",
	Short: "Show aids per day and per type",
	Args:  cobra.NoArgs,
	Run: cmdutil.WithRuntime(func(cmd *cobra.Command, _ []string, rt *cmdutil.Runtime) error {
		ctx := cmd.Context()
		if err := rt.RequireLogin(ctx); err != nil {
			return err
		}
		aids, err := rt.Client.ListAids(ctx)
		if err != nil {
			return fmt.Errorf("failed to list aids: %w", err)
		}
		residents, err := rt.Client.ListResidents(ctx)
		if err != nil {
			return fmt.Errorf("failed to list residents: %w", err)
		}
		return rt.Printer.Print(aidStatsTable{stats.Compute(aids, len(residents))})
	}),
}

type residentStatsTable struct {
	*records.ResidentStats
}

func (t residentStatsTable) Headers() []string { return []string{"Statistic", "Value"} }

func (t residentStatsTable) Rows() [][]string {
	s := t.ResidentStats
	return [][]string{
		{"Residents", strconv.Itoa(s.TotalResidents)},
		{"Aids", strconv.Itoa(s.TotalAids)},
		{"Beneficiaries", strconv.Itoa(s.TotalBeneficiaries)},
		{"Non-beneficiaries", strconv.Itoa(s.TotalNonBeneficiaries)},
		{"Full damage", strconv.Itoa(s.TotalFullDamage)},
		{"Severe partial damage", strconv.Itoa(s.TotalSeverePartialDamage)},
		{"Partial damage", strconv.Itoa(s.TotalPartialDamage)},
		{"No damage", strconv.Itoa(s.TotalNoDamage)},
	}
}

type aidStatsTable struct {
	stats.AidStats
}

func (t aidStatsTable) Headers() []string { return []string{"Group", "Key", "Count"} }

func (t aidStatsTable) Rows() [][]string {
	rows := [][]string{
		{"total", "residents", strconv.Itoa(t.TotalResidents)},
		{"total", "aids", strconv.Itoa(t.TotalAids)},
	}
	for _, d := range t.DailyCounts {
		rows = append(rows, []string{"day", d.Date, strconv.Itoa(d.Count)})
	}
	for _, c := range t.AidTypeCounts {
		rows = append(rows, []string{"type", c.AidType, strconv.Itoa(c.Count)})
	}
	return rows
}
