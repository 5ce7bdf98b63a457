package ui

import (
	"fmt"
	"strings"
	"time"
)

// Table renders a column-aligned list for CLI output. Column widths grow
// to fit the widest cell, capped so one long value cannot blow out the row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// maxColumnWidth caps a single column so long descriptions truncate
const maxColumnWidth = 40

// NewTable creates a table with the given column headers
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends one row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(t.Headers))
	for i := range row {
		if i < len(cells) {
			row[i] = truncate(cells[i], maxColumnWidth)
		}
	}
	t.Rows = append(t.Rows, row)
	return t
}

// Render returns the formatted table as a string
func (t *Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		widths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	headerCells := make([]string, len(t.Headers))
	for i, header := range t.Headers {
		headerCells[i] = pad(header, widths[i])
	}
	b.WriteString(TableHeaderStyle.Render("  " + strings.Join(headerCells, "  ")))
	b.WriteString("\n")

	divider := make([]string, len(t.Headers))
	for i, width := range widths {
		divider[i] = strings.Repeat("─", width)
	}
	b.WriteString(TableMutedStyle.Render("  " + strings.Join(divider, "  ")))
	b.WriteString("\n")

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		b.WriteString(TableCellStyle.Render("  " + strings.Join(cells, "  ")))
		b.WriteString("\n")
	}

	return b.String()
}

// String implements fmt.Stringer
func (t *Table) String() string {
	return t.Render()
}

// pad right-pads a cell to the column width
func pad(s string, width int) string {
	if gap := width - len([]rune(s)); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate shortens a cell with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// FormatPrice formats a price for display
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatDate formats a record timestamp for list output. Zero timestamps
// (records predating the createdAt column) render as a dash.
func FormatDate(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}
