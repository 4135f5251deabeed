// Package widget draws the bordered boxes shared by the table and popups.
package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/ledgerkit/ledger-tui/internal/theme"
)

const (
	tlc   = "╭"
	trc   = "╮"
	blc   = "╰"
	brc   = "╯"
	hz    = "─"
	vt    = "│"
	thumb = "▐"
)

// Frame describes a rounded box with a title in the top border and an
// optional hint in the bottom border.
type Frame struct {
	Title string
	Hint  string
	// Lines are pre-rendered body rows. They are padded or truncated to the
	// inner width; missing rows are blank.
	Lines []string
	// Scroll, when Total exceeds the inner height, draws a thumb in the right
	// border covering the visible window [Offset, Offset+innerHeight).
	Scroll      Scroll
	BorderStyle *lipgloss.Style
	TitleStyle  *lipgloss.Style
	HintStyle   *lipgloss.Style
	BodyStyle   *lipgloss.Style
}

// Scroll positions a scrollbar thumb.
type Scroll struct {
	Offset int
	Total  int
}

// InnerSize returns the body area of a frame of the given outer size.
func InnerSize(width, height int) (int, int) {
	return max(width-2, 1), max(height-2, 1)
}

// Render builds the frame as exactly height rows of width cells.
func (f Frame) Render(width, height int) string {
	styles := theme.Default()
	border := f.BorderStyle
	if border == nil {
		border = styles.Border
	}
	titleStyle := f.TitleStyle
	if titleStyle == nil {
		titleStyle = styles.Title
	}
	hintStyle := f.HintStyle
	if hintStyle == nil {
		hintStyle = styles.Hint
	}
	if width < 2 {
		width = 2
	}
	innerW, innerH := InnerSize(width, height)

	titleSeg := ""
	if f.Title != "" {
		titleSeg = " " + f.Title + " "
	}
	dashes := width - 3 - lipgloss.Width(titleSeg)
	if dashes < 0 {
		titleSeg = truncate.StringWithTail(titleSeg, uint(max(width-3, 0)), "…")
		dashes = width - 3 - lipgloss.Width(titleSeg)
	}
	topLine := theme.Render(border, tlc+hz) +
		theme.Render(titleStyle, titleSeg) +
		theme.Render(border, strings.Repeat(hz, max(dashes, 0))+trc)
	if width < 3 {
		topLine = theme.Render(border, tlc+trc)
	}

	hintSeg := f.Hint
	lead := width - 3 - lipgloss.Width(hintSeg)
	if hintSeg == "" || lead < 0 {
		hintSeg = ""
		lead = width - 2
	}
	bottomLine := theme.Render(border, blc+strings.Repeat(hz, max(lead, 0))) +
		theme.Render(hintStyle, hintSeg)
	if hintSeg != "" {
		bottomLine += theme.Render(border, hz)
	}
	bottomLine += theme.Render(border, brc)

	thumbStart, thumbLen := thumbSpan(f.Scroll, innerH)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(f.Lines) {
			content = f.Lines[i]
		}
		content = Fit(content, innerW)
		if f.BodyStyle != nil {
			content = f.BodyStyle.Render(content)
		}
		right := theme.Render(border, vt)
		if thumbLen > 0 && i >= thumbStart && i < thumbStart+thumbLen {
			right = theme.Render(styles.Scrollbar, thumb)
		}
		rows = append(rows, theme.Render(border, vt)+content+right)
	}
	if height >= 2 {
		rows = append(rows, bottomLine)
	}
	return strings.Join(rows, "\n")
}

func thumbSpan(s Scroll, track int) (start, length int) {
	if s.Total <= track || track <= 0 {
		return 0, 0
	}
	length = max(track*track/s.Total, 1)
	maxOffset := s.Total - track
	offset := min(max(s.Offset, 0), maxOffset)
	start = (track - length) * offset / maxOffset
	return start, length
}

// Fit pads or truncates an already styled line to exactly width cells.
func Fit(line string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(line)
	if w > width {
		line = truncate.StringWithTail(line, uint(width), "…")
		w = lipgloss.Width(line)
	}
	if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

// Overlay draws box centred over a base of width × height cells. Cells of
// base outside the box are kept.
func Overlay(base, box string, width, height int) string {
	baseRows := strings.Split(base, "\n")
	for len(baseRows) < height {
		baseRows = append(baseRows, "")
	}
	boxRows := strings.Split(box, "\n")
	boxW := min(lipgloss.Width(box), width)
	top := max((height-len(boxRows))/2, 0)
	left := max((width-boxW)/2, 0)
	for i, row := range boxRows {
		idx := top + i
		if idx >= height {
			break
		}
		baseRows[idx] = splice(baseRows[idx], Fit(row, boxW), left, boxW, width)
	}
	return strings.Join(baseRows[:height], "\n")
}

// splice replaces cells [left, left+boxW) of base with middle.
func splice(base, middle string, left, boxW, width int) string {
	base = Fit(base, width)
	return ansi.Cut(base, 0, left) + middle + ansi.Cut(base, left+boxW, width)
}

// Rect returns the size of a popup covering pctW × pctH percent of the
// area, at least minW × minH cells and never larger than the area.
func Rect(width, height, pctW, pctH, minW, minH int) (int, int) {
	w := min(max(width*pctW/100, minW), width)
	h := min(max(height*pctH/100, minH), height)
	return w, h
}
