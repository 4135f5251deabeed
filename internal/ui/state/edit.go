package state

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// EditBuffer holds the text of the cell being edited. The cursor is a rune
// index in [0, len(runes)].
type EditBuffer struct {
	text   []rune
	cursor int
	// fresh is set by Seed and cleared by the first edit or cursor move; the
	// first insert into a fresh buffer replaces the seeded text.
	fresh bool
}

// Seed replaces the buffer contents and places the cursor at the end.
func (b *EditBuffer) Seed(text string) {
	b.text = []rune(text)
	b.cursor = len(b.text)
	b.fresh = true
}

// Text returns the current contents.
func (b *EditBuffer) Text() string { return string(b.text) }

// Cursor returns the rune index of the cursor.
func (b *EditBuffer) Cursor() int { return b.cursor }

// Fresh reports whether the seeded text is still untouched.
func (b *EditBuffer) Fresh() bool { return b.fresh }

// Accept returns the contents and resets the buffer.
func (b *EditBuffer) Accept() string {
	text := string(b.text)
	b.reset()
	return text
}

// Cancel discards the contents.
func (b *EditBuffer) Cancel() {
	b.reset()
}

func (b *EditBuffer) reset() {
	b.text = nil
	b.cursor = 0
	b.fresh = false
}

// HandleKey applies an editing key and reports whether it was consumed.
func (b *EditBuffer) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+u":
		b.fresh = false
		if len(b.text) == 0 {
			return false
		}
		b.text = nil
		b.cursor = 0
		return true
	case "ctrl+w":
		return b.touch(b.deleteWordBackward())
	case "ctrl+a", "home":
		return b.touch(b.moveTo(0))
	case "ctrl+e", "end":
		return b.touch(b.moveTo(len(b.text)))
	case "alt+b", "ctrl+left":
		return b.touch(b.moveTo(b.wordStartBefore()))
	case "alt+f", "ctrl+right":
		return b.touch(b.moveTo(b.wordEndAfter()))
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return b.touch(b.deleteBackward())
	case tea.KeyDelete:
		return b.touch(b.deleteForward())
	case tea.KeyLeft:
		return b.touch(b.moveTo(b.cursor - 1))
	case tea.KeyRight:
		return b.touch(b.moveTo(b.cursor + 1))
	case tea.KeySpace:
		return b.Insert(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return b.Insert(string(msg.Runes))
	}
	return false
}

// Insert places text at the cursor. A fresh buffer is cleared first.
func (b *EditBuffer) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	if b.fresh {
		b.text = nil
		b.cursor = 0
		b.fresh = false
	}
	updated := make([]rune, 0, len(b.text)+len(insert))
	updated = append(updated, b.text[:b.cursor]...)
	updated = append(updated, insert...)
	updated = append(updated, b.text[b.cursor:]...)
	b.text = updated
	b.cursor += len(insert)
	return true
}

// touch clears the overtype flag after any handled edit or move.
func (b *EditBuffer) touch(changed bool) bool {
	b.fresh = false
	return changed
}

func (b *EditBuffer) moveTo(pos int) bool {
	pos = clamp(pos, 0, len(b.text))
	if pos == b.cursor {
		return false
	}
	b.cursor = pos
	return true
}

func (b *EditBuffer) deleteBackward() bool {
	if b.cursor == 0 {
		return false
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

func (b *EditBuffer) deleteForward() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return true
}

func (b *EditBuffer) deleteWordBackward() bool {
	start := b.wordStartBefore()
	if start == b.cursor {
		return false
	}
	b.text = append(b.text[:start], b.text[b.cursor:]...)
	b.cursor = start
	return true
}

func (b *EditBuffer) wordStartBefore() int {
	i := b.cursor
	for i > 0 && unicode.IsSpace(b.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.text[i-1]) {
		i--
	}
	return i
}

func (b *EditBuffer) wordEndAfter() int {
	i := b.cursor
	for i < len(b.text) && !unicode.IsSpace(b.text[i]) {
		i++
	}
	for i < len(b.text) && unicode.IsSpace(b.text[i]) {
		i++
	}
	return i
}

// Window is the slice of the buffer that fits in a cell.
type Window struct {
	// Text is the visible portion of the buffer.
	Text string
	// Cursor is the rune index of the cursor within Text. It equals the rune
	// count of Text when the cursor sits after the last character.
	Cursor int
	// Column is the cell column of the cursor relative to the window start.
	Column int
}

// Window returns the part of the buffer visible in width terminal cells,
// scrolled so the cursor is always inside it. One cell is kept for the
// cursor when it sits at the end of the text. A rune under the cursor that is
// wider than the cell yields a blank window.
func (b *EditBuffer) Window(width int) Window {
	if width <= 0 {
		return Window{}
	}
	widths := make([]int, len(b.text))
	for i, r := range b.text {
		widths[i] = runewidth.RuneWidth(r)
	}
	cursorWidth := 1
	if b.cursor < len(b.text) && widths[b.cursor] > 1 {
		cursorWidth = widths[b.cursor]
	}
	if cursorWidth > width {
		return Window{Text: strings.Repeat(" ", width)}
	}

	// Walk left from the cursor while the prefix still fits with the cursor cell.
	start := b.cursor
	used := cursorWidth
	for start > 0 && used+widths[start-1] <= width {
		start--
		used += widths[start]
	}

	end := b.cursor
	if end < len(b.text) {
		end++
	}
	for end < len(b.text) && used+widths[end] <= width {
		used += widths[end]
		end++
	}

	column := 0
	for i := start; i < b.cursor; i++ {
		column += widths[i]
	}
	return Window{
		Text:   string(b.text[start:end]),
		Cursor: b.cursor - start,
		Column: column,
	}
}
