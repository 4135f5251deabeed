package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/input"
	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/logging"
	"github.com/ledgerkit/ledger-tui/internal/logging/events"
	appstate "github.com/ledgerkit/ledger-tui/internal/state"
	"github.com/ledgerkit/ledger-tui/internal/store"
	"github.com/ledgerkit/ledger-tui/internal/ui/command"
	"github.com/ledgerkit/ledger-tui/internal/ui/screen"
)

// ErrRender is returned by Run when a frame could not be drawn.
var ErrRender = errors.New("render failed")

// State is the application lifecycle state.
type State int

const (
	StateRunning State = iota
	StateQuitting
	StateExited
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateQuitting:
		return "quitting"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Renderer displays a frame.
type Renderer interface {
	Render(frame string) error
}

// Options configures a Controller.
type Options struct {
	Store store.Store
	// Width and Height fix the viewport; zero follows resize events.
	Width             int
	Height            int
	ConfirmQuit       bool
	NotificationLimit int
	SampleSize        int
	ShowHelp          bool
	// Now stamps sample rows. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns the screen stack, the notification log and the quit state
// machine. It is driven by one goroutine.
type Controller struct {
	opts    Options
	store   store.Store
	stack   *screen.Stack
	log     appstate.NotificationLog
	mailbox *screen.Mailbox
	bus     *command.Bus
	keys    keyMap
	help    help.Model

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	state       State
}

// New builds a controller with the account screen pushed and synced. A
// failed initial sync is recorded as a notification.
func New(opts Options) *Controller {
	if opts.SampleSize <= 0 {
		opts.SampleSize = 5
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Controller{
		opts:    opts,
		store:   opts.Store,
		log:     appstate.NewNotificationLog(opts.NotificationLimit),
		mailbox: &screen.Mailbox{},
		bus:     command.New(),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	c.stack = screen.NewStack(c.newScreen)
	if opts.Width > 0 {
		c.width = opts.Width
		c.fixedWidth = true
		c.help.Width = opts.Width
	}
	if opts.Height > 0 {
		c.height = opts.Height
		c.fixedHeight = true
	}
	if _, err := c.stack.Push(screen.KindAccount); err != nil {
		c.report(fmt.Errorf("load transactions: %w", err))
	}
	return c
}

func (c *Controller) newScreen(kind screen.Kind) (screen.Screen, error) {
	switch kind {
	case screen.KindAccount:
		return screen.NewAccount(c.store, c.mailbox, c.bus), nil
	case screen.KindNotifications:
		return screen.NewNotifications(c.log, c.mailbox), nil
	default:
		return nil, fmt.Errorf("unknown screen %s", kind)
	}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Stack() *screen.Stack { return c.stack }
func (c *Controller) Notifications() appstate.NotificationLog { return c.log }

// Size returns the current viewport.
func (c *Controller) Size() (int, int) { return c.width, c.height }

// Run renders, waits for one event and handles it until the state is
// Exited. A closed channel or cancelled context ends the loop without error;
// a render failure is returned wrapped in ErrRender.
func (c *Controller) Run(ctx context.Context, in <-chan input.Event, r Renderer) error {
	for c.state != StateExited {
		if err := r.Render(c.View()); err != nil {
			return fmt.Errorf("%w: %w", ErrRender, err)
		}
		select {
		case <-ctx.Done():
			events.App.Exit("context done")
			return nil
		case ev, ok := <-in:
			if !ok {
				events.App.Exit("input closed")
				return nil
			}
			c.HandleEvent(ev)
		}
	}
	events.App.Exit("quit")
	return nil
}

// HandleEvent applies exactly one input event.
func (c *Controller) HandleEvent(ev input.Event) {
	if c.state == StateExited {
		return
	}
	switch ev.Kind {
	case input.KindQuit:
		c.setState(StateExited)
		return
	case input.KindResize:
		c.resize(ev.Width, ev.Height)
		return
	case input.KindKey:
	default:
		return
	}

	if c.state == StateQuitting {
		c.confirmQuit(ev.Key)
		return
	}
	c.dispatch(ev.Key)
	c.drain()
}

func (c *Controller) resize(width, height int) {
	if !c.fixedWidth {
		c.width = width
		c.help.Width = width
	}
	if !c.fixedHeight {
		c.height = height
	}
}

func (c *Controller) confirmQuit(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		c.stack.Pop()
		c.setState(StateExited)
	case "n", "N", "esc":
		c.setState(StateRunning)
	}
}

func (c *Controller) dispatch(msg tea.KeyMsg) {
	top := c.stack.Top()
	if top == nil {
		return
	}
	if top.Kind().Popup() {
		if screen.Dismisses(msg.String()) {
			c.report(top.HandleKey(msg))
		}
		return
	}

	capturing := c.stack.Capturing()
	if !capturing {
		switch {
		case key.Matches(msg, c.keys.Notices):
			c.showNotifications()
			return
		case key.Matches(msg, c.keys.Seed):
			c.seed(top)
			return
		}
	}
	if nav, ok := c.keys.navFor(msg, capturing); ok {
		c.report(top.HandleNav(nav))
	}
	c.report(top.HandleKey(msg))
}

func (c *Controller) showNotifications() {
	if _, err := c.stack.Push(screen.KindNotifications); err != nil {
		c.report(err)
	}
}

// seed inserts sample rows and refreshes the active screen.
func (c *Controller) seed(top screen.Screen) {
	rows := ledger.Sample(c.opts.SampleSize, c.opts.Now())
	var inserted int
	err := c.bus.Execute(command.Request{
		Label: "seed",
		Handler: func() error {
			var err error
			inserted, err = store.PutAll(c.store, rows)
			return err
		},
	})
	if err != nil {
		c.report(fmt.Errorf("add sample transactions: %w", err))
	}
	if inserted > 0 {
		logging.Info("sample transactions added", "count", inserted)
		c.notify(fmt.Sprintf("Added %d sample transactions", inserted))
	}
	if err := top.Sync(); err != nil {
		c.report(fmt.Errorf("reload transactions: %w", err))
	}
}

func (c *Controller) drain() {
	for _, msg := range c.mailbox.Drain() {
		switch msg.Kind {
		case screen.MessageNotify:
			c.notify(msg.Text)
		case screen.MessageExit:
			c.exitTop()
		}
	}
}

// exitTop pops the active screen. Leaving the last screen asks for
// confirmation when configured or when changes did not reach storage.
func (c *Controller) exitTop() {
	if c.state != StateRunning {
		return
	}
	if c.stack.Len() > 1 {
		c.stack.Pop()
		return
	}
	if c.opts.ConfirmQuit || c.stack.Unsaved() {
		c.setState(StateQuitting)
		return
	}
	c.stack.Pop()
	c.setState(StateExited)
}

func (c *Controller) setState(next State) {
	if c.state == next {
		return
	}
	events.App.State(c.state.String(), next.String())
	c.state = next
}

func (c *Controller) notify(text string) {
	c.log.Add(text)
	events.App.Notify(text)
}

func (c *Controller) report(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	c.notify("Error: " + err.Error())
}
