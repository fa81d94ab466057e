package list

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
	"github.com/alfurqan/aidctl/internal/pkg/store"
)

// viewFlags are the filtering flags shared by the record list commands
type viewFlags struct {
	filters    []string
	search     string
	searchMode string
	preset     string
	savePreset string
	export     string
}

func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "filter expression field:<op><value> (repeatable)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "free-text search over names and identity numbers")
	cmd.Flags().StringVar(&f.searchMode, "search-mode", "", "text matching: prefix (default) or contains")
	cmd.Flags().StringVar(&f.preset, "preset", "", "load filters from a YAML preset")
	cmd.Flags().StringVar(&f.savePreset, "save-preset", "", "save the active filters to a YAML preset")
	cmd.Flags().StringVar(&f.export, "export", "", "write the listed records to an .xlsx or .csv file")
}

// registry builds the filter registry described by the flags.
// It runs before any network call so bad expressions fail fast.
func (f *viewFlags) registry(cmd *cobra.Command, schema filters.Schema) (*filters.Registry, string, error) {
	reg := filters.NewRegistry(schema)
	search := f.search

	if f.preset != "" {
		preset, warnings, err := filters.LoadPreset(f.preset, reg)
		if err != nil {
			return nil, "", &cmdutil.UsageError{Err: err}
		}
		for _, w := range warnings {
			logger.Warn("Skipping preset entry", "preset", f.preset, "error", w)
		}
		if search == "" {
			search = preset.Search
		}
	}

	if cmd.Flags().Changed("search-mode") {
		mode, err := filters.ParseMatchMode(f.searchMode)
		if err != nil {
			return nil, "", &cmdutil.UsageError{Err: err}
		}
		reg.SetSearchMode(mode)
	}

	if err := filters.ApplyExpressions(reg, f.filters); err != nil {
		return nil, "", err
	}
	if f.export != "" {
		if _, err := sheet.Format(f.export); err != nil {
			return nil, "", err
		}
	}
	return reg, search, nil
}

// listing describes how to fetch, show and export one record type
type listing[T store.Entity] struct {
	schema  filters.Schema
	fetch   func(ctx context.Context) ([]T, error)
	columns []string
	rows    func([]T) [][]string
	// narrow optionally post-filters the view (e.g. --invalid-ids)
	narrow func([]T) []T
	show   func([]T) any
}

func runListing[T store.Entity](cmd *cobra.Command, rt *cmdutil.Runtime, f *viewFlags, l listing[T]) error {
	reg, search, err := f.registry(cmd, l.schema)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := rt.RequireLogin(ctx); err != nil {
		return err
	}

	all, err := l.fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s records: %w", l.schema.RecordType, err)
	}
	st := store.New(all)
	view := st.View(reg, search)
	if l.narrow != nil {
		view = l.narrow(view)
	}
	rt.Metrics.SetListed(l.schema.RecordType, len(view))
	logger.Debug("Listed records",
		"record", l.schema.RecordType,
		"total", st.Len(),
		"shown", len(view),
		"filters", reg.Len())

	if f.savePreset != "" {
		if err := filters.SavePreset(f.savePreset, reg, search); err != nil {
			return err
		}
		logger.Info("Saved preset", "path", f.savePreset, "filters", reg.Len())
	}
	if f.export != "" {
		if err := sheet.Write(f.export, l.columns, l.rows(view)); err != nil {
			return err
		}
		logger.Info("Exported records", "path", f.export, "rows", len(view))
	}
	return rt.Printer.Print(l.show(view))
}
