// Package components provides reusable text layout pieces.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title    string
	MaxWidth int // 0 = as wide as the widest cell
}

// TableData represents data for the table.
type TableData struct {
	Columns []Column
	Rows    [][]string
}

// CellStyler picks the style of a body cell.
type CellStyler func(row, col int) lipgloss.Style

// DataTable renders rows as aligned, padded text columns.
type DataTable struct {
	data   *TableData
	header lipgloss.Style
	styler CellStyler
}

// NewDataTable creates a new data table.
func NewDataTable(data *TableData, header lipgloss.Style, styler CellStyler) *DataTable {
	return &DataTable{data: data, header: header, styler: styler}
}

// Widths returns the rendered width of every column.
func (dt *DataTable) Widths() []int {
	widths := make([]int, len(dt.data.Columns))
	for i, col := range dt.data.Columns {
		widths[i] = lipgloss.Width(col.Title)
		for _, row := range dt.data.Rows {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
		if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
			widths[i] = max(col.MaxWidth, lipgloss.Width(col.Title))
		}
	}
	return widths
}

// Render returns the table as text, one line per row.
func (dt *DataTable) Render() string {
	widths := dt.Widths()

	var b strings.Builder
	cells := make([]string, len(widths))

	for i, col := range dt.data.Columns {
		cells[i] = dt.header.Render(pad(col.Title, widths[i]))
	}
	writeLine(&b, cells)

	for r, row := range dt.data.Rows {
		for i := range widths {
			var text string
			if i < len(row) {
				text = row[i]
			}
			style := lipgloss.NewStyle()
			if dt.styler != nil {
				style = dt.styler(r, i)
			}
			cells[i] = style.Render(pad(Truncate(text, widths[i]), widths[i]))
		}
		writeLine(&b, cells)
	}

	return b.String()
}

func writeLine(b *strings.Builder, cells []string) {
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	b.WriteByte('\n')
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Truncate shortens s to width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if width < 4 || len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
