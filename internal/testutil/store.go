package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/store"
)

// NewTestStore returns a temporary SQLite store for tests.
//
// The caller does not need to close it; cleanup is registered on t.Cleanup.
func NewTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Seed stores n sample transactions in s.
func Seed(t *testing.T, s store.Store, n int) []ledger.Transaction {
	t.Helper()
	if _, err := store.PutAll(s, ledger.Sample(n, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	rows, err := s.List()
	if err != nil {
		t.Fatalf("listing seeded store: %v", err)
	}
	return rows
}

// FlakyStore wraps a Store, records calls and fails operations on demand.
type FlakyStore struct {
	store.Store

	mu        sync.Mutex
	ListErr   error
	PutErr    error
	DeleteErr error
	Puts      []ledger.Transaction
	Deletes   [][]int64
	Lists     int
}

// NewFlakyStore wraps inner.
func NewFlakyStore(inner store.Store) *FlakyStore {
	return &FlakyStore{Store: inner}
}

// Fail sets the error returned by the named operation ("list", "put" or
// "delete"). A nil err clears it.
func (f *FlakyStore) Fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		err = &store.Error{Op: op, Err: err}
	}
	switch op {
	case "list":
		f.ListErr = err
	case "put":
		f.PutErr = err
	case "delete":
		f.DeleteErr = err
	}
}

func (f *FlakyStore) List() ([]ledger.Transaction, error) {
	f.mu.Lock()
	f.Lists++
	err := f.ListErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Store.List()
}

func (f *FlakyStore) Put(tx ledger.Transaction) (int64, error) {
	f.mu.Lock()
	f.Puts = append(f.Puts, tx)
	err := f.PutErr
	f.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return f.Store.Put(tx)
}

func (f *FlakyStore) Delete(ids []int64) error {
	f.mu.Lock()
	f.Deletes = append(f.Deletes, append([]int64(nil), ids...))
	err := f.DeleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Delete(ids)
}

// PutCount returns how many Put calls were observed.
func (f *FlakyStore) PutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Puts)
}

// LastPut returns the most recent Put argument.
func (f *FlakyStore) LastPut() (ledger.Transaction, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Puts) == 0 {
		return ledger.Transaction{}, false
	}
	return f.Puts[len(f.Puts)-1], true
}
