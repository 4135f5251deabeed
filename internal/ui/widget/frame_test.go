package widget

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFrameDimensions(t *testing.T) {
	out := Frame{Title: "Transactions", Hint: " hint ", Lines: []string{"a", "b"}}.Render(30, 6)
	rows := strings.Split(out, "\n")
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 30 {
			t.Fatalf("row %d: expected width 30, got %d (%q)", i, w, row)
		}
	}
	if !strings.Contains(rows[0], "Transactions") {
		t.Fatalf("expected title in top border, got %q", rows[0])
	}
	if !strings.Contains(rows[5], "hint") {
		t.Fatalf("expected hint in bottom border, got %q", rows[5])
	}
}

func TestFrameNarrowDropsHint(t *testing.T) {
	out := Frame{Title: "A very long title indeed", Hint: " a very long hint "}.Render(10, 3)
	for i, row := range strings.Split(out, "\n") {
		if w := lipgloss.Width(row); w != 10 {
			t.Fatalf("row %d: expected width 10, got %d (%q)", i, w, row)
		}
	}
}

func TestFrameScrollbar(t *testing.T) {
	out := Frame{Scroll: Scroll{Offset: 0, Total: 20}}.Render(10, 6)
	if !strings.Contains(out, "▐") {
		t.Fatalf("expected scrollbar thumb when content overflows")
	}
	out = Frame{Scroll: Scroll{Offset: 0, Total: 4}}.Render(10, 6)
	if strings.Contains(out, "▐") {
		t.Fatalf("expected no thumb when content fits")
	}
}

func TestThumbSpan(t *testing.T) {
	start, length := thumbSpan(Scroll{Offset: 16, Total: 20}, 4)
	if length != 1 || start != 3 {
		t.Fatalf("expected thumb at bottom, got start %d len %d", start, length)
	}
	start, _ = thumbSpan(Scroll{Offset: 0, Total: 20}, 4)
	if start != 0 {
		t.Fatalf("expected thumb at top, got %d", start)
	}
}

func TestOverlayCentresBox(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := Overlay(base, "XX\nXX", 10, 5)
	rows := strings.Split(out, "\n")
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0] != ".........." {
		t.Fatalf("expected untouched first row, got %q", rows[0])
	}
	if rows[1] != "....XX...." || rows[2] != "....XX...." {
		t.Fatalf("expected centred box, got %q / %q", rows[1], rows[2])
	}
}

func TestRect(t *testing.T) {
	w, h := Rect(100, 40, 60, 20, 20, 5)
	if w != 60 || h != 8 {
		t.Fatalf("expected 60x8, got %dx%d", w, h)
	}
	w, h = Rect(10, 4, 60, 20, 20, 5)
	if w != 10 || h != 4 {
		t.Fatalf("expected clamp to area, got %dx%d", w, h)
	}
}
