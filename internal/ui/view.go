package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerkit/ledger-tui/internal/theme"
	"github.com/ledgerkit/ledger-tui/internal/ui/widget"
)

const (
	popupInsetX = 20
	popupInsetY = 3

	// minFrame is the smallest size that fits a bordered frame.
	minFrame = 3

	quitTitle   = "Quit?"
	quitChoices = "y / n"
)

// View renders the whole screen as exactly height rows of width cells.
func (c *Controller) View() string {
	width, height := c.width, c.height
	if width <= 0 || height <= 0 {
		return ""
	}
	if width < minFrame || height < minFrame {
		return blank(width, height)
	}
	footer, hasFooter := c.footer(width)
	bodyH := height
	if hasFooter && height >= 4 {
		bodyH = height - 1
	} else {
		hasFooter = false
	}

	body := c.body(width, bodyH)
	if c.state == StateQuitting {
		body = widget.Overlay(body, c.quitBox(width, bodyH), width, bodyH)
	}
	if hasFooter {
		return body + "\n" + footer
	}
	return body
}

// body draws the bottom screen and overlays any popups above it.
func (c *Controller) body(width, height int) string {
	if c.stack.Len() == 0 {
		return blank(width, height)
	}
	out := ""
	for i := 0; i < c.stack.Len(); i++ {
		scr := c.stack.At(i)
		if i == 0 || !scr.Kind().Popup() {
			out = scr.View(width, height)
			continue
		}
		w, h := popupSize(width, height)
		out = widget.Overlay(out, scr.View(w, h), width, height)
	}
	return out
}

func popupSize(width, height int) (int, int) {
	w := width - 2*popupInsetX
	if w < 20 {
		w = min(width, 20)
	}
	h := height - 2*popupInsetY
	if h < 5 {
		h = min(height, 5)
	}
	return w, h
}

func (c *Controller) quitBox(width, height int) string {
	w, h := widget.Rect(width, height, 60, 20, 15, 3)
	innerW, innerH := widget.InnerSize(w, h)
	lines := make([]string, innerH)
	lines[(innerH-1)/2] = lipgloss.PlaceHorizontal(innerW, lipgloss.Center, quitChoices)
	styles := theme.Default()
	return widget.Frame{
		Title:       quitTitle,
		Lines:       lines,
		BorderStyle: styles.PopupBorder,
		BodyStyle:   styles.Popup,
	}.Render(w, h)
}

// footer shows the newest notification, or the key help when enabled.
func (c *Controller) footer(width int) (string, bool) {
	styles := theme.Default()
	if latest, ok := c.log.Latest(); ok {
		return theme.Render(styles.Error, widget.Fit(" "+latest.Text, width)), true
	}
	if !c.opts.ShowHelp {
		return "", false
	}
	return theme.Render(styles.Footer, widget.Fit(" "+c.help.View(c.keys), width)), true
}

func blank(width, height int) string {
	row := strings.Repeat(" ", max(width, 0))
	rows := make([]string, max(height, 0))
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
