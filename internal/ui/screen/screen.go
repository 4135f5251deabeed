// Package screen defines the views that can sit on the application's screen
// stack and the stack itself.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/ui/state"
)

// Kind identifies a screen. Pushing a kind equal to the top is a no-op.
type Kind int

const (
	KindAccount Kind = iota
	KindNotifications
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindNotifications:
		return "notifications"
	default:
		return "unknown"
	}
}

// Popup reports whether the screen is drawn over the one beneath it.
func (k Kind) Popup() bool {
	return k == KindNotifications
}

// Screen is one entry on the stack.
type Screen interface {
	Kind() Kind
	// View renders the screen into exactly width × height cells.
	View(width, height int) string
	HandleNav(nav state.Nav) error
	HandleKey(msg tea.KeyMsg) error
	// Sync reloads state from storage.
	Sync() error
}

// Capturer is implemented by screens that can take free text input. While
// Capturing reports true, letter hotkeys are delivered as text.
type Capturer interface {
	Capturing() bool
}

// Saver is implemented by screens holding changes that did not reach storage.
type Saver interface {
	Unsaved() bool
}

// Base provides no-op input handling and sync for screens that only render.
type Base struct{}

func (Base) HandleNav(state.Nav) error { return nil }
func (Base) HandleKey(tea.KeyMsg) error { return nil }
func (Base) Sync() error { return nil }

// MessageKind selects what a screen asks of the controller.
type MessageKind int

const (
	MessageNotify MessageKind = iota
	MessageExit
)

// Message is posted by screens and drained by the controller after each event.
type Message struct {
	Kind MessageKind
	Text string
}

// Notify asks the controller to record a user-visible message.
func Notify(text string) Message {
	return Message{Kind: MessageNotify, Text: text}
}

// Exit asks the controller to pop the posting screen.
func Exit() Message {
	return Message{Kind: MessageExit}
}

// Outbox receives messages from screens.
type Outbox interface {
	Post(Message)
}

// Mailbox is a simple Outbox that queues messages until drained.
type Mailbox struct {
	pending []Message
}

func (m *Mailbox) Post(msg Message) {
	m.pending = append(m.pending, msg)
}

// Drain returns and clears the queued messages.
func (m *Mailbox) Drain() []Message {
	out := m.pending
	m.pending = nil
	return out
}
