package screen

import (
	"fmt"

	"github.com/ledgerkit/ledger-tui/internal/logging/events"
)

// Factory constructs a screen of the given kind.
type Factory func(Kind) (Screen, error)

// Stack holds the active screens; the last entry receives input.
type Stack struct {
	screens []Screen
	factory Factory
}

func NewStack(factory Factory) *Stack {
	return &Stack{factory: factory}
}

// Push constructs and activates a screen of kind unless it is already on top.
// The new screen is synced once; if that fails the screen stays pushed and
// the error is returned. It reports whether a screen was pushed.
func (s *Stack) Push(kind Kind) (bool, error) {
	if top := s.Top(); top != nil && top.Kind() == kind {
		return false, nil
	}
	if s.factory == nil {
		return false, fmt.Errorf("no screen factory for %s", kind)
	}
	scr, err := s.factory(kind)
	if err != nil {
		return false, fmt.Errorf("creating %s screen: %w", kind, err)
	}
	s.screens = append(s.screens, scr)
	events.Screen.Push(kind.String(), len(s.screens))
	if err := scr.Sync(); err != nil {
		return true, err
	}
	return true, nil
}

// Pop removes the top screen and reports whether the stack is now empty.
func (s *Stack) Pop() bool {
	if len(s.screens) == 0 {
		return true
	}
	top := s.screens[len(s.screens)-1]
	s.screens[len(s.screens)-1] = nil
	s.screens = s.screens[:len(s.screens)-1]
	events.Screen.Pop(top.Kind().String(), len(s.screens))
	return len(s.screens) == 0
}

// Top returns the active screen or nil.
func (s *Stack) Top() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Below returns the screen under the top, or nil.
func (s *Stack) Below() Screen {
	if len(s.screens) < 2 {
		return nil
	}
	return s.screens[len(s.screens)-2]
}

// At returns the screen at depth i, counted from the bottom, or nil.
func (s *Stack) At(i int) Screen {
	if i < 0 || i >= len(s.screens) {
		return nil
	}
	return s.screens[i]
}

func (s *Stack) Len() int {
	return len(s.screens)
}

// Kinds lists the screen kinds bottom to top.
func (s *Stack) Kinds() []Kind {
	kinds := make([]Kind, len(s.screens))
	for i, scr := range s.screens {
		kinds[i] = scr.Kind()
	}
	return kinds
}

// Unsaved reports whether any screen holds changes not yet in storage.
func (s *Stack) Unsaved() bool {
	for _, scr := range s.screens {
		if saver, ok := scr.(Saver); ok && saver.Unsaved() {
			return true
		}
	}
	return false
}

// Capturing reports whether the top screen is taking text input.
func (s *Stack) Capturing() bool {
	if c, ok := s.Top().(Capturer); ok {
		return c.Capturing()
	}
	return false
}
