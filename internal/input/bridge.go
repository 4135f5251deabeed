// Package input turns blocking terminal reads into an ordered event channel
// consumed by the application loop.
package input

import (
	"context"
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/logging/events"
)

// DefaultBuffer is the channel capacity used when no option overrides it.
const DefaultBuffer = 64

// Kind represents the type of an input event.
type Kind int

const (
	KindKey Kind = iota
	KindResize
	// KindQuit replaces Ctrl-C in the stream.
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindResize:
		return "resize"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is one translated terminal event.
type Event struct {
	Kind   Kind
	Key    tea.KeyMsg
	Width  int
	Height int
}

// KeyEvent wraps a key message.
func KeyEvent(msg tea.KeyMsg) Event { return Event{Kind: KindKey, Key: msg} }

// ResizeEvent reports a new terminal size.
func ResizeEvent(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// QuitEvent asks the application to exit immediately.
func QuitEvent() Event { return Event{Kind: KindQuit} }

// Source yields low-level terminal messages. ReadEvent blocks until a message
// is available and returns io.EOF once the terminal is gone.
type Source interface {
	ReadEvent() (tea.Msg, error)
}

type options struct {
	buffer int
}

// Option configures a Bridge.
type Option func(*options)

// WithBuffer sets the channel capacity. Zero makes every send a rendezvous
// with the receiver.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.buffer = n
		}
	}
}

// Bridge reads from a Source on its own goroutine and publishes events in
// arrival order.
type Bridge struct {
	source Source

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewBridge starts reading from source immediately.
func NewBridge(source Source, opts ...Option) *Bridge {
	o := options{buffer: DefaultBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		source: source,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, o.buffer),
	}
	events.Input.Start(o.buffer)
	b.wg.Add(1)
	go b.read()
	return b
}

// Events returns the ordered event channel. It is closed when reading stops.
func (b *Bridge) Events() <-chan Event {
	return b.events
}

// Stop tells the bridge that nobody is receiving any more. A pending send is
// abandoned; a blocking read finishes first and its result is discarded.
func (b *Bridge) Stop() {
	b.cancel()
}

// Wait blocks until the reader goroutine has exited and the channel is
// closed. Call after Stop when a clean shutdown is required (e.g. in tests).
func (b *Bridge) Wait() {
	b.wg.Wait()
}

// Err returns the source error that ended reading, if any. io.EOF is not
// reported.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Bridge) read() {
	defer b.wg.Done()
	defer close(b.events)

	for {
		if b.ctx.Err() != nil {
			events.Input.Stop("stopped")
			return
		}
		msg, err := b.source.ReadEvent()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				b.mu.Lock()
				b.err = err
				b.mu.Unlock()
			}
			events.Input.Stop("source closed")
			return
		}
		evt, ok := Translate(msg)
		if !ok {
			continue
		}
		select {
		case <-b.ctx.Done():
			events.Input.Stop("stopped")
			return
		case b.events <- evt:
		}
	}
}

// Translate maps a terminal message to an Event. Messages the application
// does not consume are reported as not ok.
func Translate(msg tea.Msg) (Event, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC {
			return QuitEvent(), true
		}
		return KeyEvent(m), true
	case tea.WindowSizeMsg:
		return ResizeEvent(m.Width, m.Height), true
	}
	return Event{}, false
}
