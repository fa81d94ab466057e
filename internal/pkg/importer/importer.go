// Package importer reconciles spreadsheet rows against the backend: each row
// is looked up, checked for duplicates and created independently.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
)

// Outcome is the result of reconciling one row
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeFailed    Outcome = "failed"
)

// Outcomes lists every outcome in report order
var Outcomes = []Outcome{OutcomeCreated, OutcomeDuplicate, OutcomeNotFound, OutcomeInvalid, OutcomeFailed}

// ErrEmptyFile is returned when the spreadsheet has no data rows
var ErrEmptyFile = errors.New("file is empty or has no data rows")

// MissingColumnsError lists every required header absent from the file
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// Target is one importable entity
type Target interface {
	// Entity names the record type ("aid", "child")
	Entity() string
	// Required lists the headers that must be present
	Required() []string
	// DateColumns lists headers holding dates that may arrive as serial numbers
	DateColumns() []string
	// Prepare loads whatever the target needs for duplicate detection
	Prepare(ctx context.Context) error
	// Reconcile handles one row and returns its outcome with a human message
	Reconcile(ctx context.Context, row sheet.Row) (Outcome, string)
	// Refresh reloads the local record store after the import
	Refresh(ctx context.Context) error
}

// RowObserver receives each row outcome (metrics)
type RowObserver interface {
	ObserveImportRow(entity, outcome string)
}

// RowReport is the outcome for one spreadsheet row
type RowReport struct {
	// Row is the 1-based data row number (header excluded)
	Row     int     `json:"row"`
	Name    string  `json:"name,omitempty"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message,omitempty"`
}

// Report summarises an import run
type Report struct {
	Entity string         `json:"entity"`
	Rows   []RowReport    `json:"rows"`
	Totals map[string]int `json:"totals"`
}

// Count returns the number of rows with outcome o
func (r *Report) Count(o Outcome) int {
	return r.Totals[string(o)]
}

// HasFailures reports whether any row failed outright
func (r *Report) HasFailures() bool {
	return r.Count(OutcomeFailed) > 0
}

// Summary returns a one-line summary of the run
func (r *Report) Summary() string {
	parts := make([]string, 0, len(Outcomes))
	for _, o := range Outcomes {
		if n := r.Count(o); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, o))
		}
	}
	if len(parts) == 0 {
		return "no rows processed"
	}
	return strings.Join(parts, ", ")
}

// Reconciler runs a Target over a table
type Reconciler struct {
	Target   Target
	Observer RowObserver
}

// CheckColumns validates the header against the required columns
func CheckColumns(table *sheet.Table, required []string) error {
	var missing []string
	for _, col := range required {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// Run reconciles every row of table sequentially. Validation failures abort
// before any backend call; per-row failures are recorded and the loop continues.
func (r *Reconciler) Run(ctx context.Context, table *sheet.Table) (*Report, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	if err := CheckColumns(table, r.Target.Required()); err != nil {
		return nil, err
	}

	if err := r.Target.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("failed to load existing %s records: %w", r.Target.Entity(), err)
	}

	log := logger.With("entity", r.Target.Entity())
	report := &Report{
		Entity: r.Target.Entity(),
		Rows:   make([]RowReport, 0, len(table.Rows)),
		Totals: make(map[string]int, len(Outcomes)),
	}

	for i, raw := range table.Rows {
		row := normalizeDates(raw, r.Target.DateColumns())
		rr := RowReport{Row: i + 1, Name: row[sheet.ColName]}

		if err := ctx.Err(); err != nil {
			rr.Outcome, rr.Message = OutcomeFailed, err.Error()
		} else {
			rr.Outcome, rr.Message = r.Target.Reconcile(ctx, row)
		}

		switch rr.Outcome {
		case OutcomeCreated:
			log.Debug("Row imported", "row", rr.Row, "name", rr.Name)
		case OutcomeFailed:
			log.Warn("Row failed", "row", rr.Row, "name", rr.Name, "error", rr.Message)
		default:
			log.Info("Row skipped", "row", rr.Row, "name", rr.Name, "outcome", rr.Outcome, "reason", rr.Message)
		}

		report.Rows = append(report.Rows, rr)
		report.Totals[string(rr.Outcome)]++
		if r.Observer != nil {
			r.Observer.ObserveImportRow(report.Entity, string(rr.Outcome))
		}
	}

	if err := r.Target.Refresh(ctx); err != nil {
		log.Warn("Failed to refresh records after import", "error", err)
	}

	return report, nil
}

// normalizeDates returns a copy of row with serial dates converted to yyyy-mm-dd
func normalizeDates(row sheet.Row, cols []string) sheet.Row {
	out := make(sheet.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	for _, col := range cols {
		if v, ok := out[col]; ok {
			out[col] = sheet.NormalizeDate(v)
		}
	}
	return out
}
