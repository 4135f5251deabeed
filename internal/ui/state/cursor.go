package state

// NextRow moves the selection down one row, stopping at the last row.
func (s *Selection) NextRow() bool {
	return s.moveRowBy(1)
}

// PreviousRow moves the selection up one row, stopping at the first row.
func (s *Selection) PreviousRow() bool {
	return s.moveRowBy(-1)
}

// FirstRow selects the first row.
func (s *Selection) FirstRow() bool {
	if s.count == 0 {
		return false
	}
	return s.moveRowBy(-s.count)
}

// LastRow selects the last row.
func (s *Selection) LastRow() bool {
	if s.count == 0 {
		return false
	}
	return s.moveRowBy(s.count)
}

// PageUp moves the selection up by one viewport.
func (s *Selection) PageUp() bool {
	return s.moveRowBy(-s.pageSize())
}

// PageDown moves the selection down by one viewport.
func (s *Selection) PageDown() bool {
	return s.moveRowBy(s.pageSize())
}

func (s *Selection) moveRowBy(delta int) bool {
	if s.count == 0 {
		s.row = -1
		return false
	}
	old := s.row
	if s.row < 0 {
		s.row = 0
	}
	s.row = clamp(s.row+delta, 0, s.count-1)
	s.ensureVisible()
	return s.row != old
}

func (s *Selection) pageSize() int {
	size := s.visible
	if size <= 0 || size > s.count {
		size = s.count
	}
	if size < 1 {
		size = 1
	}
	return size
}

// NextColumn moves right, selecting the first column when none is selected.
func (s *Selection) NextColumn() bool {
	if s.columns == 0 {
		return false
	}
	old := s.column
	if s.column < 0 {
		s.column = 0
	} else if s.column < s.columns-1 {
		s.column++
	}
	return s.column != old
}

// PreviousColumn moves left, selecting the last column when none is selected.
func (s *Selection) PreviousColumn() bool {
	if s.columns == 0 {
		return false
	}
	old := s.column
	if s.column < 0 {
		s.column = s.columns - 1
	} else if s.column > 0 {
		s.column--
	}
	return s.column != old
}

// ensureVisible adjusts the viewport offset so the selected row stays visible.
func (s *Selection) ensureVisible() {
	if s.count == 0 {
		s.row = -1
		s.offset = 0
		return
	}
	if s.visible <= 0 {
		s.offset = 0
		return
	}
	maxOffset := s.count - s.visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	s.offset = clamp(s.offset, 0, maxOffset)
	if s.row < s.offset {
		s.offset = s.row
	}
	if upper := s.offset + s.visible - 1; s.row > upper {
		s.offset = clamp(s.row-s.visible+1, 0, maxOffset)
	}
}
