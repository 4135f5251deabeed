package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	tablefmt "github.com/ledgerkit/ledger-tui/internal/format/table"
	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/theme"
	"github.com/ledgerkit/ledger-tui/internal/ui/state"
	"github.com/ledgerkit/ledger-tui/internal/ui/widget"
)

const (
	// Title is shown in the top border.
	Title = "Transactions"
	// Hint is shown in the bottom border.
	Hint = " ← ↑ ↓ → to move selection "

	highlight   = " > "
	noHighlight = "   "
	spacing     = 1
	emptyText   = "No transactions. Press g to add sample rows."
)

var constraints = []tablefmt.Constraint{
	{Kind: tablefmt.Length, Value: 12},
	{Kind: tablefmt.Fill, Value: 1},
	{Kind: tablefmt.Fill, Value: 2},
	{Kind: tablefmt.Min, Value: 13},
}

func alignment(f ledger.Field) tablefmt.Alignment {
	if f == ledger.FieldAmount {
		return tablefmt.AlignRight
	}
	return tablefmt.AlignLeft
}

// ColumnWidths returns the cell widths used for a frame of the given width.
func ColumnWidths(width int) []int {
	innerW, _ := widget.InnerSize(width, 0)
	return tablefmt.Layout(innerW-lipgloss.Width(highlight), spacing, constraints)
}

// View renders the table framed to exactly width × height cells. It records
// the number of visible rows in the selection so the viewport follows it.
func (c *Controller) View(width, height int) string {
	styles := theme.Default()
	_, innerH := widget.InnerSize(width, height)
	widths := ColumnWidths(width)

	visible := max(innerH-1, 0)
	c.sel.SetViewport(visible)

	lines := make([]string, 0, innerH)
	lines = append(lines, c.header(widths))
	if len(c.items) == 0 {
		lines = append(lines, theme.Render(styles.Empty, noHighlight+emptyText))
	}
	start := c.sel.Offset()
	end := min(start+visible, len(c.items))
	for i := start; i < end; i++ {
		lines = append(lines, c.row(i, widths))
	}

	return widget.Frame{
		Title:  Title,
		Hint:   Hint,
		Lines:  lines,
		Scroll: widget.Scroll{Offset: start, Total: len(c.items) + 1},
	}.Render(width, height)
}

func (c *Controller) header(widths []int) string {
	parts := make([]string, 0, len(ledger.Fields))
	for i, f := range ledger.Fields {
		parts = append(parts, tablefmt.Fit(f.String(), widths[i], alignment(f)))
	}
	return theme.Render(theme.Default().Header, noHighlight+strings.Join(parts, strings.Repeat(" ", spacing)))
}

func (c *Controller) row(i int, widths []int) string {
	styles := theme.Default()
	selRow, selCol := c.sel.Selected()
	rowStyle := styles.Row
	if i%2 == 1 {
		rowStyle = styles.RowAlt
	}
	prefix := theme.Render(rowStyle, noHighlight)
	if i == selRow {
		rowStyle = styles.SelectedRow
		prefix = theme.Render(styles.Indicator, highlight)
	}

	var b strings.Builder
	b.WriteString(prefix)
	for col, f := range ledger.Fields {
		if col > 0 {
			b.WriteString(theme.Render(rowStyle, strings.Repeat(" ", spacing)))
		}
		w := widths[col]
		switch {
		case i == selRow && col == selCol && c.sel.Mode() == state.Editing:
			b.WriteString(c.editingCell(w))
		case i == selRow && col == selCol:
			b.WriteString(theme.Render(styles.SelectedCell, tablefmt.Fit(c.items[i].Cell(f), w, alignment(f))))
		default:
			b.WriteString(theme.Render(rowStyle, tablefmt.Fit(c.items[i].Cell(f), w, alignment(f))))
		}
	}
	return b.String()
}

// editingCell draws the edit buffer window with a reversed cursor cell.
func (c *Controller) editingCell(width int) string {
	if width <= 0 {
		return ""
	}
	styles := theme.Default()
	win := c.buf.Window(width)
	runes := []rune(win.Text)
	before := string(runes[:win.Cursor])
	under := " "
	after := ""
	if win.Cursor < len(runes) {
		under = string(runes[win.Cursor])
		after = string(runes[win.Cursor+1:])
	}
	used := lipgloss.Width(before) + lipgloss.Width(under) + lipgloss.Width(after)
	pad := ""
	if used < width {
		pad = strings.Repeat(" ", width-used)
	}
	return theme.Render(styles.EditingCell, before) +
		theme.Render(styles.Cursor, under) +
		theme.Render(styles.EditingCell, after+pad)
}
