package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ledgerkit/ledger-tui/internal/ledger"
)

// Memory keeps transactions in process. It backs the --memory flag and tests.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]ledger.Transaction
	closed bool
}

// NewMemory returns an empty in-memory store seeded with rows.
func NewMemory(rows ...ledger.Transaction) *Memory {
	m := &Memory{nextID: 1, rows: make(map[int64]ledger.Transaction)}
	for _, tx := range rows {
		_, _ = m.Put(tx)
	}
	return m
}

func (m *Memory) List() ([]ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, wrap("list", errClosed)
	}
	out := make([]ledger.Transaction, 0, len(m.rows))
	for _, tx := range m.rows {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Put(tx ledger.Transaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, wrap("put", errClosed)
	}
	if tx.ID == 0 {
		tx.ID = m.nextID
		m.nextID++
		m.rows[tx.ID] = tx
		return tx.ID, nil
	}
	if _, ok := m.rows[tx.ID]; !ok {
		return 0, wrap("put", fmt.Errorf("%w: id %d", ErrNotFound, tx.ID))
	}
	m.rows[tx.ID] = tx
	return tx.ID, nil
}

func (m *Memory) Delete(ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return wrap("delete", errClosed)
	}
	for _, id := range ids {
		delete(m.rows, id)
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
