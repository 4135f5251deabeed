package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			width := cellWidth(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			align := AlignLeft
			if c < len(alignments) {
				align = alignments[c]
			}
			b.WriteString(pad(cell, widths[c], align))
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Fit pads or truncates text to exactly width cells.
func Fit(text string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	if cellWidth(text) > width {
		text = truncate.StringWithTail(text, uint(width), "…")
	}
	return pad(text, width, align)
}

func pad(text string, width int, align Alignment) string {
	gap := width - cellWidth(text)
	if gap <= 0 {
		return text
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + text
	}
	return text + strings.Repeat(" ", gap)
}

func cellWidth(text string) int {
	return lipgloss.Width(text)
}
