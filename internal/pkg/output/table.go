package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)
	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Table renders rows under headers with a rounded border.
// Short rows are padded so every row has one cell per header.
func Table(headers []string, rows [][]string) string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(headers) {
			full := make([]string, len(headers))
			copy(full, row)
			row = full
		}
		padded[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(padded...)
	return t.String()
}
