package table

// ConstraintKind selects how a column claims horizontal space.
type ConstraintKind int

const (
	// Length is an exact width.
	Length ConstraintKind = iota
	// Min is at least the given width. It only grows when no Fill column
	// claims the leftover space.
	Min
	// Fill shares leftover space in proportion to its weight.
	Fill
)

// Constraint sizes one column.
type Constraint struct {
	Kind  ConstraintKind
	Value int
}

// Layout splits total cells between columns separated by spacing cells.
// Fixed and minimum widths are honoured first (shrinking from the right when
// space is short); the remainder is distributed by fill weight, with rounding
// leftovers going to the leftmost weighted columns.
func Layout(total, spacing int, constraints []Constraint) []int {
	widths := make([]int, len(constraints))
	if len(constraints) == 0 {
		return widths
	}
	avail := total - spacing*(len(constraints)-1)
	if avail < 0 {
		avail = 0
	}

	fixed := 0
	for i, c := range constraints {
		switch c.Kind {
		case Length, Min:
			widths[i] = max(c.Value, 0)
			fixed += widths[i]
		}
	}
	for i := len(constraints) - 1; i >= 0 && fixed > avail; i-- {
		cut := min(widths[i], fixed-avail)
		widths[i] -= cut
		fixed -= cut
	}

	rest := avail - fixed
	weights := make([]int, len(constraints))
	totalWeight := 0
	for i, c := range constraints {
		if c.Kind == Fill {
			weights[i] = max(c.Value, 0)
			totalWeight += weights[i]
		}
	}
	if totalWeight == 0 {
		for i, c := range constraints {
			if c.Kind == Min {
				weights[i] = 1
				totalWeight++
			}
		}
	}
	if rest <= 0 || totalWeight == 0 {
		return widths
	}
	given := 0
	for i, w := range weights {
		share := rest * w / totalWeight
		widths[i] += share
		given += share
	}
	for i := 0; given < rest; i = (i + 1) % len(weights) {
		if weights[i] > 0 {
			widths[i]++
			given++
		}
	}
	return widths
}
