package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/logging/events"

	_ "modernc.org/sqlite"
)

var errClosed = errors.New("store closed")

const schema = `
CREATE TABLE IF NOT EXISTS fin_transaction (
	transaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp      TEXT NOT NULL,
	credit_acc_id  INTEGER,
	debit_acc_id   INTEGER,
	amount         INTEGER NOT NULL,
	category       TEXT,
	description    TEXT
) STRICT`

// SQLite stores transactions in a single-file database.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, wrap("open", errors.New("database path is required"))
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, wrap("open", fmt.Errorf("creating database directory: %w", err))
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap("open", err)
	}
	// One connection keeps :memory: databases alive and serialises writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, wrap("open", fmt.Errorf("applying schema: %w", err))
	}
	events.Store.Open(path)
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLite) Path() string { return s.path }

func (s *SQLite) List() ([]ledger.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT transaction_id, timestamp, credit_acc_id, debit_acc_id, amount, category, description
		FROM fin_transaction
		ORDER BY transaction_id
	`)
	if err != nil {
		return nil, wrap("list", err)
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		var (
			tx            ledger.Transaction
			ts            string
			credit, debit sql.NullInt64
			category      sql.NullString
			description   sql.NullString
		)
		if err := rows.Scan(&tx.ID, &ts, &credit, &debit, &tx.Amount, &category, &description); err != nil {
			return nil, wrap("list", fmt.Errorf("scanning transaction: %w", err))
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, wrap("list", fmt.Errorf("transaction %d timestamp %q: %w", tx.ID, ts, err))
		}
		tx.Timestamp = parsed
		tx.CreditAccount = credit.Int64
		tx.DebitAccount = debit.Int64
		tx.Category = category.String
		tx.Description = description.String
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list", err)
	}
	return out, nil
}

func (s *SQLite) Put(tx ledger.Transaction) (int64, error) {
	args := []interface{}{
		tx.Timestamp.Format(time.RFC3339Nano),
		nullInt(tx.CreditAccount),
		nullInt(tx.DebitAccount),
		tx.Amount,
		nullString(tx.Category),
		nullString(tx.Description),
	}
	if tx.ID != 0 {
		result, err := s.db.Exec(`
			UPDATE fin_transaction
			SET timestamp = ?, credit_acc_id = ?, debit_acc_id = ?, amount = ?, category = ?, description = ?
			WHERE transaction_id = ?
		`, append(args, tx.ID)...)
		if err != nil {
			return 0, wrap("put", fmt.Errorf("updating transaction %d: %w", tx.ID, err))
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, wrap("put", err)
		}
		if affected == 0 {
			return 0, wrap("put", fmt.Errorf("%w: id %d", ErrNotFound, tx.ID))
		}
		events.Store.Put(tx.ID, false)
		return tx.ID, nil
	}

	result, err := s.db.Exec(`
		INSERT INTO fin_transaction (timestamp, credit_acc_id, debit_acc_id, amount, category, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return 0, wrap("put", fmt.Errorf("inserting transaction: %w", err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, wrap("put", err)
	}
	events.Store.Put(id, true)
	return id, nil
}

func (s *SQLite) Delete(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return wrap("delete", err)
	}
	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM fin_transaction WHERE transaction_id = ?`, id); err != nil {
			_ = tx.Rollback()
			return wrap("delete", fmt.Errorf("deleting transaction %d: %w", id, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return wrap("delete", err)
	}
	events.Store.Delete(ids)
	return nil
}

func (s *SQLite) Close() error {
	return wrap("close", s.db.Close())
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
