package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Border       *lipgloss.Style
	Title        *lipgloss.Style
	Hint         *lipgloss.Style
	Scrollbar    *lipgloss.Style
	Header       *lipgloss.Style
	Row          *lipgloss.Style
	RowAlt       *lipgloss.Style
	SelectedRow  *lipgloss.Style
	SelectedCell *lipgloss.Style
	EditingCell  *lipgloss.Style
	Cursor       *lipgloss.Style
	Indicator    *lipgloss.Style
	Empty        *lipgloss.Style
	Error        *lipgloss.Style
	Footer       *lipgloss.Style
	Search       *lipgloss.Style
	SearchPrompt *lipgloss.Style
	Popup        *lipgloss.Style
	PopupBorder  *lipgloss.Style
}

var defaultStyles = Styles{
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Scrollbar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")).Bold(true),
	),
	Row: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("235")),
	),
	RowAlt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	SelectedRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	EditingCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	Indicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Search: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Popup: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PopupBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Render applies style when present.
func Render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
