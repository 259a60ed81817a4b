package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const gap = "  "

// Column defines a table column with a header label and width. A zero Width
// sizes the column to its widest cell and never truncates it.
type Column struct {
	Header string
	Width  int
}

// RenderTable renders rows under column headers. Widths are terminal cells,
// not bytes. The last column is left unpadded so a line ends at its text.
func RenderTable(columns []Column, rows [][]string) string {
	widths := columnWidths(columns, rows)
	last := len(columns) - 1

	var b strings.Builder
	line := func(render func(...string) string, text func(i int) string) {
		for i, col := range columns {
			if i > 0 {
				b.WriteString(gap)
			}
			s := text(i)
			if col.Width > 0 {
				s = truncate(s, col.Width)
			}
			if i < last {
				s = runewidth.FillRight(s, widths[i])
			}
			b.WriteString(render(s))
		}
		b.WriteString("\n")
	}

	line(HeaderStyle.Render, func(i int) string { return columns[i].Header })
	line(DimStyle.Render, func(i int) string { return strings.Repeat("─", widths[i]) })
	for _, row := range rows {
		line(plain, func(i int) string { return cell(row, i) })
	}
	return b.String()
}

func columnWidths(columns []Column, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		widths[i] = runewidth.StringWidth(col.Header)
		for _, row := range rows {
			widths[i] = max(widths[i], runewidth.StringWidth(cell(row, i)))
		}
	}
	return widths
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}
