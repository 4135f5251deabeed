// Package table implements the editable transaction table: selection,
// in-place cell editing and write-through to storage.
package table

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/logging/events"
	"github.com/ledgerkit/ledger-tui/internal/store"
	"github.com/ledgerkit/ledger-tui/internal/ui/command"
	"github.com/ledgerkit/ledger-tui/internal/ui/state"
)

// Commit describes an accepted edit.
type Commit struct {
	Row   int
	Field ledger.Field
	Value string
	Item  ledger.Transaction
}

// Controller owns the rows shown in the table together with their selection
// and edit state. Mutations are applied in memory first and then written to
// the store; a failed write leaves the in-memory change in place and marks
// the table unsaved until the next successful Sync.
type Controller struct {
	items   []ledger.Transaction
	sel     *state.Selection
	buf     state.EditBuffer
	store   store.Store
	bus     *command.Bus
	unsaved bool
}

// New returns an empty controller bound to s. Call Sync to load rows.
func New(s store.Store, bus *command.Bus) *Controller {
	if bus == nil {
		bus = command.New()
	}
	return &Controller{
		sel:   state.NewSelection(0, len(ledger.Fields)),
		store: s,
		bus:   bus,
	}
}

func (c *Controller) Items() []ledger.Transaction { return c.items }
func (c *Controller) Selection() *state.Selection { return c.sel }
func (c *Controller) Buffer() *state.EditBuffer { return &c.buf }
func (c *Controller) Mode() state.Mode { return c.sel.Mode() }
func (c *Controller) Unsaved() bool { return c.unsaved }
func (c *Controller) Editing() bool { return c.sel.Mode() == state.Editing }

// Current returns the selected transaction.
func (c *Controller) Current() (ledger.Transaction, bool) {
	row := c.sel.Row()
	if row < 0 || row >= len(c.items) {
		return ledger.Transaction{}, false
	}
	return c.items[row], true
}

// Navigate applies one navigation action. A non-nil Commit is returned when
// an edit was accepted; the error reports a parse or storage failure.
func (c *Controller) Navigate(nav state.Nav) (*Commit, error) {
	if c.sel.Mode() == state.Editing {
		switch nav {
		case state.NavInteract:
			return c.accept()
		case state.NavCancel:
			c.cancelEdit()
		}
		return nil, nil
	}

	moved := false
	switch nav {
	case state.NavUp:
		moved = c.sel.PreviousRow()
	case state.NavDown:
		moved = c.sel.NextRow()
	case state.NavLeft:
		moved = c.sel.PreviousColumn()
	case state.NavRight:
		moved = c.sel.NextColumn()
	case state.NavInteract:
		c.startEdit()
	case state.NavCancel:
		c.sel.Deselect()
		moved = true
	}
	if moved {
		row, col := c.sel.Selected()
		events.Table.Cursor(row, col, c.sel.Offset())
	}
	return nil, nil
}

// HandleKey feeds a raw key to the edit buffer while editing. In browse mode
// it handles paging keys. It reports whether the key was consumed.
func (c *Controller) HandleKey(msg tea.KeyMsg) bool {
	if c.sel.Mode() == state.Editing {
		return c.buf.HandleKey(msg)
	}
	moved := false
	switch msg.String() {
	case "pgup":
		moved = c.sel.PageUp()
	case "pgdown":
		moved = c.sel.PageDown()
	case "home":
		moved = c.sel.FirstRow()
	case "end":
		moved = c.sel.LastRow()
	default:
		return false
	}
	if moved {
		row, col := c.sel.Selected()
		events.Table.Cursor(row, col, c.sel.Offset())
	}
	return true
}

// SelectRow moves the selection to row, keeping the column.
func (c *Controller) SelectRow(row int) {
	if c.sel.Mode() == state.Editing {
		return
	}
	c.sel.Select(row, c.sel.Column())
	events.Table.Cursor(c.sel.Row(), c.sel.Column(), c.sel.Offset())
}

func (c *Controller) startEdit() {
	if !c.sel.StartEditing() {
		return
	}
	row, col := c.sel.Selected()
	seed := c.items[row].Cell(ledger.Fields[col])
	c.buf.Seed(seed)
	events.Table.EditStart(row, col, seed)
}

func (c *Controller) cancelEdit() {
	row, col := c.sel.Selected()
	c.buf.Cancel()
	c.sel.StopEditing()
	events.Table.EditCancel(row, col)
}

func (c *Controller) accept() (*Commit, error) {
	row, col := c.sel.Selected()
	value := c.buf.Accept()
	c.sel.StopEditing()
	if row < 0 || row >= len(c.items) || col < 0 || col >= len(ledger.Fields) {
		return nil, nil
	}
	field := ledger.Fields[col]
	updated, err := c.items[row].WithCell(field, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	c.items[row] = updated
	events.Table.Commit(row, col, value)

	commit := &Commit{Row: row, Field: field, Value: value, Item: updated}
	err = c.bus.Execute(command.Request{
		Label: "put",
		Handler: func() error {
			id, err := c.store.Put(updated)
			if err != nil {
				return err
			}
			if id != updated.ID {
				c.items[row].ID = id
				commit.Item.ID = id
			}
			return nil
		},
	})
	if err != nil {
		c.unsaved = true
		return commit, err
	}
	return commit, nil
}

// DeleteSelected removes the selected row locally and then from storage.
// Nothing happens while editing or when no row is selected. The local
// removal is kept even when storage fails.
func (c *Controller) DeleteSelected() (ledger.Transaction, bool, error) {
	row := c.sel.Row()
	if c.sel.Mode() == state.Editing || row < 0 || row >= len(c.items) {
		return ledger.Transaction{}, false, nil
	}
	removed := c.items[row]
	c.items = append(c.items[:row:row], c.items[row+1:]...)
	c.sel.Resize(len(c.items))
	events.Table.Delete(row, removed.ID)
	if !removed.Persisted() {
		return removed, true, nil
	}

	err := c.bus.Execute(command.Request{
		Label:   "delete",
		Handler: func() error { return c.store.Delete([]int64{removed.ID}) },
	})
	if err != nil {
		c.unsaved = true
		return removed, true, err
	}
	return removed, true, c.Sync()
}

// Sync reloads rows from storage and restores the selection, clamped to the
// new bounds. Any edit in progress is discarded.
func (c *Controller) Sync() error {
	var items []ledger.Transaction
	err := c.bus.Execute(command.Request{
		Label: "list",
		Handler: func() error {
			var err error
			items, err = c.store.List()
			return err
		},
	})
	if err != nil {
		return err
	}
	row, col := c.sel.Selected()
	if c.sel.Mode() == state.Editing {
		c.buf.Cancel()
		c.sel.StopEditing()
	}
	c.items = items
	c.sel.Resize(len(items))
	if len(items) > 0 {
		c.sel.Select(row, col)
	}
	c.unsaved = false
	events.Table.Sync(len(items))
	return nil
}
