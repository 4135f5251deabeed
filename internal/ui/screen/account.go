package screen

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/logging/events"
	"github.com/ledgerkit/ledger-tui/internal/store"
	"github.com/ledgerkit/ledger-tui/internal/theme"
	"github.com/ledgerkit/ledger-tui/internal/ui/command"
	"github.com/ledgerkit/ledger-tui/internal/ui/state"
	"github.com/ledgerkit/ledger-tui/internal/ui/table"
	"github.com/ledgerkit/ledger-tui/internal/ui/widget"
)

// Account shows the transaction table.
type Account struct {
	table *table.Controller
	out   Outbox

	searching bool
	query     state.EditBuffer
	searchRow int
}

func NewAccount(s store.Store, out Outbox, bus *command.Bus) *Account {
	return &Account{table: table.New(s, bus), out: out}
}

func (a *Account) Kind() Kind { return KindAccount }

// Table exposes the underlying table controller.
func (a *Account) Table() *table.Controller { return a.table }

func (a *Account) Sync() error { return a.table.Sync() }

func (a *Account) Unsaved() bool { return a.table.Unsaved() }

func (a *Account) Capturing() bool { return a.searching || a.table.Editing() }

// Searching reports whether the search prompt is open.
func (a *Account) Searching() bool { return a.searching }

func (a *Account) View(width, height int) string {
	if !a.searching || height < 2 {
		return a.table.View(width, height)
	}
	return a.table.View(width, height-1) + "\n" + a.searchLine(width)
}

func (a *Account) searchLine(width int) string {
	styles := theme.Default()
	text := a.query.Text()
	runes := []rune(text)
	pos := a.query.Cursor()
	before := string(runes[:pos])
	under := " "
	after := ""
	if pos < len(runes) {
		under = string(runes[pos])
		after = string(runes[pos+1:])
	}
	line := theme.Render(styles.SearchPrompt, "/ ") +
		theme.Render(styles.Search, before) +
		theme.Render(styles.Cursor, under) +
		theme.Render(styles.Search, after)
	return widget.Fit(line, width)
}

func (a *Account) HandleNav(nav state.Nav) error {
	if a.searching {
		switch nav {
		case state.NavInteract:
			a.endSearch(false)
		case state.NavCancel:
			a.endSearch(true)
		}
		return nil
	}
	_, err := a.table.Navigate(nav)
	return err
}

func (a *Account) HandleKey(msg tea.KeyMsg) error {
	if a.searching {
		if a.query.HandleKey(msg) {
			a.jump()
		}
		return nil
	}
	if a.table.Editing() {
		a.table.HandleKey(msg)
		return nil
	}
	switch msg.String() {
	case "q":
		a.out.Post(Exit())
	case "d", "D":
		removed, ok, err := a.table.DeleteSelected()
		if err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		if ok && !removed.Persisted() {
			a.out.Post(Notify("Removed unsaved transaction"))
		}
	case "/":
		a.beginSearch()
	default:
		a.table.HandleKey(msg)
	}
	return nil
}

func (a *Account) beginSearch() {
	a.searching = true
	a.searchRow = a.table.Selection().Row()
	a.query.Cancel()
}

func (a *Account) endSearch(restore bool) {
	if restore && a.searchRow >= 0 {
		a.table.SelectRow(a.searchRow)
	}
	a.searching = false
	a.query.Cancel()
}

// jump moves the selection to the row that best matches the query.
func (a *Account) jump() {
	query := a.query.Text()
	items := a.table.Items()
	labels := make([]string, len(items))
	for i, tx := range items {
		labels[i] = strings.TrimSpace(tx.Category + " " + tx.Description)
	}
	row := state.BestMatch(labels, query)
	events.Screen.Search(query, row)
	if row >= 0 {
		a.table.SelectRow(row)
	}
}
