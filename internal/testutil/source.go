package testutil

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ScriptedSource replays terminal messages to an input bridge. After the
// script is exhausted ReadEvent blocks until Close, then returns io.EOF.
type ScriptedSource struct {
	mu     sync.Mutex
	msgs   []tea.Msg
	err    error
	closed chan struct{}
	once   sync.Once
	reads  int
}

// NewScriptedSource queues msgs for delivery in order.
func NewScriptedSource(msgs ...tea.Msg) *ScriptedSource {
	return &ScriptedSource{msgs: msgs, closed: make(chan struct{})}
}

// Push appends messages to the script.
func (s *ScriptedSource) Push(msgs ...tea.Msg) {
	s.mu.Lock()
	s.msgs = append(s.msgs, msgs...)
	s.mu.Unlock()
}

// FailWith makes ReadEvent return err once the script is exhausted.
func (s *ScriptedSource) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Close unblocks pending reads.
func (s *ScriptedSource) Close() {
	s.once.Do(func() { close(s.closed) })
}

// Reads returns how many messages were delivered.
func (s *ScriptedSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *ScriptedSource) ReadEvent() (tea.Msg, error) {
	s.mu.Lock()
	if len(s.msgs) > 0 {
		msg := s.msgs[0]
		s.msgs = s.msgs[1:]
		s.reads++
		s.mu.Unlock()
		return msg, nil
	}
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	<-s.closed
	return nil, io.EOF
}

// Key builds a key message from its string form, e.g. "j", "enter", "ctrl+c".
func Key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ", "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Keys builds one key message per string.
func Keys(keys ...string) []tea.KeyMsg {
	out := make([]tea.KeyMsg, len(keys))
	for i, k := range keys {
		out[i] = Key(k)
	}
	return out
}
