package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/input"
)

// Harness drives the controller programmatically for integration tests.
type Harness struct {
	ctrl   *Controller
	frames []string
}

// NewHarness creates a harness for the provided controller.
func NewHarness(ctrl *Controller) *Harness {
	return &Harness{ctrl: ctrl}
}

// Send translates msg the way the input bridge does and applies it. A frame
// is recorded before each event, matching Run.
func (h *Harness) Send(msgs ...tea.Msg) {
	if h.ctrl == nil {
		return
	}
	for _, msg := range msgs {
		ev, ok := input.Translate(msg)
		if !ok {
			continue
		}
		if h.ctrl.State() == StateExited {
			return
		}
		h.frames = append(h.frames, h.ctrl.View())
		h.ctrl.HandleEvent(ev)
	}
}

// Keys sends each key in order.
func (h *Harness) Keys(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.Send(k)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.ctrl == nil {
		return ""
	}
	return h.ctrl.View()
}

// Frames returns the views rendered before each handled event.
func (h *Harness) Frames() []string {
	return h.frames
}

// Controller exposes the underlying controller.
func (h *Harness) Controller() *Controller {
	return h.ctrl
}
