// Package store persists transactions. The dashboard depends only on the
// Store interface; SQLite and in-memory implementations are provided.
package store

import (
	"errors"
	"fmt"

	"github.com/ledgerkit/ledger-tui/internal/ledger"
)

// ErrStorage matches every error produced by a Store implementation.
var ErrStorage = errors.New("storage error")

// ErrNotFound is wrapped when an update targets a missing row.
var ErrNotFound = errors.New("transaction not found")

// Store is the persistence contract used by the table and CLI.
type Store interface {
	// List returns every transaction ordered by id.
	List() ([]ledger.Transaction, error)
	// Put inserts a transaction with a zero ID or updates an existing one and
	// returns the stored id.
	Put(tx ledger.Transaction) (int64, error)
	// Delete removes the given ids. Missing ids are ignored.
	Delete(ids []int64) error
	Close() error
}

// Error wraps a failure from the storage collaborator with the operation name.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": storage error"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorage) match any *Error.
func (e *Error) Is(target error) bool { return target == ErrStorage }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// PutAll stores each transaction in order and returns how many succeeded.
// It stops at the first failure.
func PutAll(s Store, txs []ledger.Transaction) (int, error) {
	for i, tx := range txs {
		if _, err := s.Put(tx); err != nil {
			return i, err
		}
	}
	return len(txs), nil
}
