package command

import (
	"fmt"
	"sync/atomic"

	"github.com/ledgerkit/ledger-tui/internal/logging/events"
)

// Request encapsulates a storage action invoked by the UI.
type Request struct {
	ID      string
	Label   string
	Handler func() error
}

// Bus runs storage actions in the caller's goroutine while emitting trace
// logs. The controller loop owns all state, so nothing is deferred.
type Bus struct {
	seq uint64
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs the request handler. Requests without an ID get a sequential one.
func (b *Bus) Execute(req Request) error {
	if req.ID == "" {
		req.ID = fmt.Sprintf("cmd-%d", atomic.AddUint64(&b.seq, 1))
	}
	events.Command.Queue(req.ID, req.Label)
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	err := req.Handler()
	events.Command.Result(req.ID, req.Label, err)
	return err
}
