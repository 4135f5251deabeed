// Package ledger holds the transaction record shown by the dashboard and the
// conversions between its fields and editable cell text.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the cell representation of a transaction timestamp.
const DateLayout = "2006-01-02"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrUnknownField  = errors.New("unknown field")
)

// Field identifies one table column.
type Field int

const (
	FieldDate Field = iota
	FieldCategory
	FieldDescription
	FieldAmount
)

// Fields lists the table columns in display order.
var Fields = []Field{FieldDate, FieldCategory, FieldDescription, FieldAmount}

func (f Field) String() string {
	switch f {
	case FieldDate:
		return "Date"
	case FieldCategory:
		return "Category"
	case FieldDescription:
		return "Description"
	case FieldAmount:
		return "Amount"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Transaction is a single ledger entry. ID is zero until persisted.
type Transaction struct {
	ID            int64
	Timestamp     time.Time
	CreditAccount int64
	DebitAccount  int64
	Amount        int64
	Category      string
	Description   string
}

// Persisted reports whether the transaction has a storage identity.
func (t Transaction) Persisted() bool {
	return t.ID != 0
}

// Cell renders one field as table text.
func (t Transaction) Cell(f Field) string {
	switch f {
	case FieldDate:
		if t.Timestamp.IsZero() {
			return ""
		}
		return t.Timestamp.Format(DateLayout)
	case FieldCategory:
		return t.Category
	case FieldDescription:
		return t.Description
	case FieldAmount:
		return FormatAmount(t.Amount)
	default:
		return ""
	}
}

// WithCell returns a copy of t with field f parsed from text.
func (t Transaction) WithCell(f Field, text string) (Transaction, error) {
	text = strings.TrimSpace(text)
	switch f {
	case FieldDate:
		day, err := time.ParseInLocation(DateLayout, text, timestampLocation(t.Timestamp))
		if err != nil {
			return t, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, text)
		}
		h, m, s := t.Timestamp.Clock()
		t.Timestamp = time.Date(day.Year(), day.Month(), day.Day(), h, m, s, t.Timestamp.Nanosecond(), day.Location())
	case FieldCategory:
		t.Category = text
	case FieldDescription:
		t.Description = text
	case FieldAmount:
		cents, err := ParseAmount(text)
		if err != nil {
			return t, err
		}
		t.Amount = cents
	default:
		return t, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return t, nil
}

func timestampLocation(ts time.Time) *time.Location {
	if ts.IsZero() {
		return time.UTC
	}
	return ts.Location()
}

// FormatAmount renders minor units as a grouped decimal, e.g. -1,234.05.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
	}
	whole := cents / 100
	frac := cents % 100
	if whole < 0 {
		whole = -whole
	}
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(whole), frac)
}

// ParseAmount converts decimal text with at most two fractional digits into
// minor units. Thousands separators are accepted.
func ParseAmount(text string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, text)
	}
	if hasDot && len(frac) > 2 {
		return 0, fmt.Errorf("%w %q: at most two decimal places", ErrInvalidAmount, text)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, text)
	}
	var units int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || v > (1<<63-1)/100-1 {
			return 0, fmt.Errorf("%w %q: out of range", ErrInvalidAmount, text)
		}
		units = v * 100
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	units += cents
	if negative {
		units = -units
	}
	return units, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Sample produces n deterministic placeholder transactions starting at the
// year of base.
func Sample(n int, base time.Time) []Transaction {
	if n <= 0 {
		return nil
	}
	out := make([]Transaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Transaction{
			Timestamp:     time.Date(base.Year()+i, time.February, 3, 4, 5, 6, 0, time.UTC),
			CreditAccount: 1,
			DebitAccount:  2,
			Amount:        int64(i) * 100,
			Category:      fmt.Sprintf("Category #%d", i+1),
			Description:   fmt.Sprintf("Description #%d", i+1),
		})
	}
	return out
}
