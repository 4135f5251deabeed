// Package terminal adapts a Bubble Tea program into the blocking input
// source and frame renderer used by the application loop.
package terminal

import (
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrClosed is returned by Render once the program has exited.
var ErrClosed = errors.New("terminal closed")

const eventBuffer = 64

// Options configures the underlying program.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
	// NoSignals disables Bubble Tea's signal handling (used by tests).
	NoSignals bool
}

// Driver owns a running Bubble Tea program. Key and resize messages are
// forwarded to ReadEvent; the view is whatever frame was last rendered.
type Driver struct {
	program *tea.Program

	events chan tea.Msg
	stop   chan struct{}
	done   chan struct{}

	mu     sync.Mutex
	frame  string
	runErr error

	closeOnce sync.Once
}

type redrawMsg struct{}

type model struct {
	d *Driver
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg, tea.WindowSizeMsg:
		select {
		case m.d.events <- msg:
		case <-m.d.stop:
		}
	}
	return m, nil
}

func (m model) View() string {
	return m.d.currentFrame()
}

// Start launches the program and returns once it is running in the background.
func Start(opts Options) *Driver {
	d := &Driver{
		events: make(chan tea.Msg, eventBuffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	var programOpts []tea.ProgramOption
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	if opts.NoSignals {
		programOpts = append(programOpts, tea.WithoutSignalHandler())
	}
	d.program = tea.NewProgram(model{d: d}, programOpts...)
	go func() {
		_, err := d.program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			err = nil
		}
		d.mu.Lock()
		d.runErr = err
		d.mu.Unlock()
		close(d.done)
	}()
	return d
}

// ReadEvent blocks until a key or resize message arrives. It returns io.EOF
// once the program has exited and no messages remain.
func (d *Driver) ReadEvent() (tea.Msg, error) {
	select {
	case msg := <-d.events:
		return msg, nil
	default:
	}
	select {
	case msg := <-d.events:
		return msg, nil
	case <-d.done:
		return nil, io.EOF
	}
}

// Render replaces the displayed frame.
func (d *Driver) Render(frame string) error {
	select {
	case <-d.done:
		if err := d.Err(); err != nil {
			return errors.Join(ErrClosed, err)
		}
		return ErrClosed
	default:
	}
	d.mu.Lock()
	d.frame = frame
	d.mu.Unlock()
	// Send blocks while the program is busy; the frame is already stored.
	go d.program.Send(redrawMsg{})
	return nil
}

func (d *Driver) currentFrame() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// Err returns the error the program exited with.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runErr
}

// Done is closed when the program has exited.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Close stops the program and restores the terminal.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		close(d.stop)
		d.program.Quit()
	})
	<-d.done
	return d.Err()
}
