// Package output renders command results as JSON or tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Terminal reports whether stdout is attached to a terminal
func Terminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ResolveFormat validates the requested format. An empty format means a
// table on a terminal and JSON when piped.
func ResolveFormat(format string, tty bool) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		if tty {
			return FormatTable, nil
		}
		return FormatJSON, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTable:
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or table)", format)
}

// Tabular is implemented by results that can be shown as a table
type Tabular interface {
	Headers() []string
	Rows() [][]string
}

// Printer writes command results in the selected format
type Printer struct {
	W      io.Writer
	Format string
	Pretty bool
}

// Print writes v as JSON, or as a table when the format is table and v
// implements Tabular. Non-tabular values always fall back to JSON.
func (p *Printer) Print(v any) error {
	if t, ok := v.(Tabular); ok && p.Format == FormatTable {
		_, err := fmt.Fprintln(p.W, Table(t.Headers(), t.Rows()))
		return err
	}
	enc := json.NewEncoder(p.W)
	if p.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
