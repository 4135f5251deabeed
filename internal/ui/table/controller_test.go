package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/store"
	"github.com/ledgerkit/ledger-tui/internal/testutil"
	"github.com/ledgerkit/ledger-tui/internal/ui/state"
)

func newTestController(t *testing.T, rows int) (*Controller, *testutil.FlakyStore) {
	t.Helper()
	inner := store.NewMemory()
	testutil.Seed(t, inner, rows)
	flaky := testutil.NewFlakyStore(inner)
	c := New(flaky, nil)
	if err := c.Sync(); err != nil {
		t.Fatalf("initial sync: %v", err)
	}
	return c, flaky
}

func typeText(c *Controller, text string) {
	for _, k := range testutil.Keys(strings.Split(text, "")...) {
		c.HandleKey(k)
	}
}

func navigate(t *testing.T, c *Controller, navs ...state.Nav) {
	t.Helper()
	for _, n := range navs {
		if _, err := c.Navigate(n); err != nil {
			t.Fatalf("navigate %v: %v", n, err)
		}
	}
}

func TestEditAmountWritesThrough(t *testing.T) {
	c, flaky := newTestController(t, 3)

	navigate(t, c, state.NavDown, state.NavRight, state.NavRight, state.NavRight, state.NavRight)
	if row, col := c.Selection().Selected(); row != 1 || col != 3 {
		t.Fatalf("expected (1,3), got (%d,%d)", row, col)
	}
	navigate(t, c, state.NavInteract)
	if c.Mode() != state.Editing {
		t.Fatalf("expected editing mode")
	}
	if c.Buffer().Text() != "1.00" {
		t.Fatalf("expected seeded amount 1.00, got %q", c.Buffer().Text())
	}
	typeText(c, "50.00")
	commit, err := c.Navigate(state.NavInteract)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if commit == nil || commit.Field != ledger.FieldAmount || commit.Value != "50.00" {
		t.Fatalf("unexpected commit %+v", commit)
	}
	if c.Mode() != state.Browsing {
		t.Fatalf("expected browsing after accept")
	}
	if got := c.Items()[1].Amount; got != 5000 {
		t.Fatalf("expected amount 5000 in memory, got %d", got)
	}
	put, ok := flaky.LastPut()
	if !ok || put.Amount != 5000 || put.ID != c.Items()[1].ID {
		t.Fatalf("expected Put with amount 5000, got %+v", put)
	}

	if err := c.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := c.Items()[1].Amount; got != 5000 {
		t.Fatalf("expected amount to survive sync, got %d", got)
	}
	if row, col := c.Selection().Selected(); row != 1 || col != 3 {
		t.Fatalf("expected selection restored to (1,3), got (%d,%d)", row, col)
	}
}

func TestCancelLeavesItemUnchanged(t *testing.T) {
	c, flaky := newTestController(t, 2)
	navigate(t, c, state.NavRight, state.NavRight, state.NavInteract)
	typeText(c, "rent")
	navigate(t, c, state.NavCancel)
	navigate(t, c, state.NavCancel)

	if c.Mode() != state.Browsing {
		t.Fatalf("expected browsing after cancel")
	}
	if got := c.Items()[0].Category; got != "Category #1" {
		t.Fatalf("expected category unchanged, got %q", got)
	}
	if flaky.PutCount() != 0 {
		t.Fatalf("expected no storage write, got %d", flaky.PutCount())
	}
	if c.Selection().Column() != -1 {
		t.Fatalf("expected second cancel to deselect the column")
	}
	if c.Selection().Row() != 0 {
		t.Fatalf("expected row kept, got %d", c.Selection().Row())
	}
}

func TestNavigationSuppressedWhileEditing(t *testing.T) {
	c, _ := newTestController(t, 3)
	navigate(t, c, state.NavRight, state.NavInteract, state.NavDown, state.NavRight, state.NavLeft)
	if row, col := c.Selection().Selected(); row != 0 || col != 0 {
		t.Fatalf("expected selection frozen at (0,0), got (%d,%d)", row, col)
	}
}

func TestInteractWithoutColumnDoesNothing(t *testing.T) {
	c, _ := newTestController(t, 1)
	navigate(t, c, state.NavInteract)
	if c.Mode() != state.Browsing {
		t.Fatalf("expected browsing without a selected column")
	}
}

func TestPutFailureKeepsValueAndMarksUnsaved(t *testing.T) {
	c, flaky := newTestController(t, 2)
	flaky.Fail("put", errors.New("disk full"))

	navigate(t, c, state.NavRight, state.NavRight, state.NavRight, state.NavInteract)
	typeText(c, "weekly shop")
	commit, err := c.Navigate(state.NavInteract)
	if !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if commit == nil {
		t.Fatalf("expected commit to be reported alongside the error")
	}
	if got := c.Items()[0].Description; got != "weekly shop" {
		t.Fatalf("expected in-memory value kept, got %q", got)
	}
	if !c.Unsaved() {
		t.Fatalf("expected unsaved after failed write")
	}

	flaky.Fail("put", nil)
	if err := c.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if c.Unsaved() {
		t.Fatalf("expected sync to clear unsaved")
	}
	if got := c.Items()[0].Description; got != "Description #1" {
		t.Fatalf("expected stored value after sync, got %q", got)
	}
}

func TestParseFailureLeavesCell(t *testing.T) {
	c, flaky := newTestController(t, 1)
	navigate(t, c, state.NavLeft, state.NavInteract)
	typeText(c, "lots")
	_, err := c.Navigate(state.NavInteract)
	if !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if c.Items()[0].Amount != 0 {
		t.Fatalf("expected amount unchanged, got %d", c.Items()[0].Amount)
	}
	if flaky.PutCount() != 0 {
		t.Fatalf("expected no write on parse failure")
	}
	if c.Mode() != state.Browsing {
		t.Fatalf("expected browsing after failed accept")
	}
}

func TestDeleteLastRowSelectsNewLast(t *testing.T) {
	c, flaky := newTestController(t, 3)
	navigate(t, c, state.NavDown, state.NavDown)
	removed, ok, err := c.DeleteSelected()
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if removed.Category != "Category #3" {
		t.Fatalf("expected third row removed, got %+v", removed)
	}
	if len(c.Items()) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(c.Items()))
	}
	if c.Selection().Row() != 1 {
		t.Fatalf("expected new last row selected, got %d", c.Selection().Row())
	}
	if len(flaky.Deletes) != 1 || flaky.Deletes[0][0] != removed.ID {
		t.Fatalf("expected delete of id %d, got %v", removed.ID, flaky.Deletes)
	}
}

func TestDeleteFailureKeepsLocalRemoval(t *testing.T) {
	c, flaky := newTestController(t, 2)
	flaky.Fail("delete", errors.New("locked"))
	_, ok, err := c.DeleteSelected()
	if !ok || !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected storage error, got ok=%v err=%v", ok, err)
	}
	if len(c.Items()) != 1 {
		t.Fatalf("expected optimistic removal, got %d rows", len(c.Items()))
	}
	if !c.Unsaved() {
		t.Fatalf("expected unsaved after failed delete")
	}
}

func TestDeleteIgnoredWhileEditingOrEmpty(t *testing.T) {
	c, _ := newTestController(t, 1)
	navigate(t, c, state.NavRight, state.NavInteract)
	if _, ok, _ := c.DeleteSelected(); ok {
		t.Fatalf("expected no delete while editing")
	}
	navigate(t, c, state.NavCancel)
	if _, ok, _ := c.DeleteSelected(); !ok {
		t.Fatalf("expected delete in browse mode")
	}
	if _, ok, _ := c.DeleteSelected(); ok {
		t.Fatalf("expected no delete on empty table")
	}
	if c.Selection().Row() != -1 {
		t.Fatalf("expected no row on empty table, got %d", c.Selection().Row())
	}
}

func TestSyncErrorKeepsRows(t *testing.T) {
	c, flaky := newTestController(t, 2)
	flaky.Fail("list", errors.New("gone"))
	if err := c.Sync(); !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(c.Items()) != 2 {
		t.Fatalf("expected rows kept, got %d", len(c.Items()))
	}
}

func TestPagingKeys(t *testing.T) {
	c, _ := newTestController(t, 10)
	c.View(60, 6)
	if !c.HandleKey(testutil.Key("end")) {
		t.Fatalf("expected end to be handled")
	}
	if c.Selection().Row() != 9 {
		t.Fatalf("expected last row, got %d", c.Selection().Row())
	}
	if c.HandleKey(testutil.Key("x")) {
		t.Fatalf("expected plain runes to be ignored while browsing")
	}
}

func TestViewDimensionsAndContent(t *testing.T) {
	c, _ := newTestController(t, 3)
	navigate(t, c, state.NavRight)
	out := c.View(70, 8)
	rows := strings.Split(out, "\n")
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 70 {
			t.Fatalf("row %d: expected width 70, got %d", i, w)
		}
	}
	for _, want := range []string{Title, "Date", "Amount", "2000-02-03", " > ", "Category #2", "2.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestViewScrollsWithSelection(t *testing.T) {
	c, _ := newTestController(t, 20)
	c.View(70, 7)
	for i := 0; i < 10; i++ {
		navigate(t, c, state.NavDown)
	}
	out := c.View(70, 7)
	if !strings.Contains(out, "Category #11") {
		t.Fatalf("expected selected row visible:\n%s", out)
	}
	if strings.Contains(out, "Category #1 ") {
		t.Fatalf("expected first row scrolled away:\n%s", out)
	}
	if !strings.Contains(out, "▐") {
		t.Fatalf("expected scrollbar thumb")
	}
}

func TestViewEmpty(t *testing.T) {
	c, _ := newTestController(t, 0)
	if out := c.View(70, 6); !strings.Contains(out, "No transactions") {
		t.Fatalf("expected empty message:\n%s", out)
	}
}

func TestViewEditingShowsBuffer(t *testing.T) {
	c, _ := newTestController(t, 1)
	navigate(t, c, state.NavRight, state.NavRight, state.NavInteract)
	typeText(c, "bills")
	if out := c.View(70, 6); !strings.Contains(out, "bills") {
		t.Fatalf("expected edit buffer in view:\n%s", out)
	}
}
