package state

// Mode is the interaction mode of a table.
type Mode int

const (
	Browsing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "browsing"
}

// Selection tracks the selected cell of a table with count rows and a fixed
// number of columns, plus the viewport offset that keeps the row on screen.
// Row and Column are -1 when nothing is selected. Row is -1 only when the
// table is empty.
type Selection struct {
	row     int
	column  int
	offset  int
	count   int
	columns int
	visible int
	mode    Mode
}

// NewSelection returns a selection on the first row with no column.
func NewSelection(count, columns int) *Selection {
	if count < 0 {
		count = 0
	}
	if columns < 0 {
		columns = 0
	}
	s := &Selection{row: -1, column: -1, count: count, columns: columns}
	if count > 0 {
		s.row = 0
	}
	return s
}

// Selected returns the selected row and column.
func (s *Selection) Selected() (row, column int) {
	return s.row, s.column
}

// Row returns the selected row or -1.
func (s *Selection) Row() int { return s.row }

// Column returns the selected column or -1.
func (s *Selection) Column() int { return s.column }

// Offset returns the first visible row.
func (s *Selection) Offset() int { return s.offset }

// Count returns the number of rows.
func (s *Selection) Count() int { return s.count }

// Columns returns the number of columns.
func (s *Selection) Columns() int { return s.columns }

// Visible returns the last viewport height.
func (s *Selection) Visible() int { return s.visible }

// Mode returns the current interaction mode.
func (s *Selection) Mode() Mode { return s.mode }

// Position reports a one-based row position for scrollbars.
func (s *Selection) Position() (pos, total int) {
	return s.row + 1, s.count
}

// Select sets an absolute cell, clamped into bounds. Out of range columns
// clear the column selection.
func (s *Selection) Select(row, column int) {
	if s.count == 0 {
		s.row = -1
	} else {
		s.row = clamp(row, 0, s.count-1)
	}
	if column < 0 || column >= s.columns {
		s.column = -1
	} else {
		s.column = column
	}
	s.ensureVisible()
}

// Deselect clears the column only.
func (s *Selection) Deselect() {
	s.column = -1
}

// StartEditing enters Editing when both a row and a column are selected.
func (s *Selection) StartEditing() bool {
	if s.row < 0 || s.column < 0 {
		return false
	}
	s.mode = Editing
	return true
}

// StopEditing returns to Browsing.
func (s *Selection) StopEditing() {
	s.mode = Browsing
}

// Resize updates the row count after the item list changed. The row is
// clamped to the new bounds and an empty table leaves Editing.
func (s *Selection) Resize(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	switch {
	case count == 0:
		s.row = -1
		s.mode = Browsing
	case s.row < 0:
		s.row = 0
	case s.row >= count:
		s.row = count - 1
	}
	s.ensureVisible()
}

// SetViewport records how many rows fit on screen and re-syncs the offset.
func (s *Selection) SetViewport(visible int) {
	if visible < 0 {
		visible = 0
	}
	s.visible = visible
	s.ensureVisible()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
