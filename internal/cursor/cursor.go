// Package cursor tracks the selected row of a list whose length can change
// between reads.
package cursor

// Cursor is an index into a list of n items, or absent when nothing is
// selected. The zero value is absent.
type Cursor struct {
	index int
	valid bool
}

// New returns a cursor on the first item, or an absent cursor when n is 0.
func New(n int) Cursor {
	return Cursor{}.Clamp(n)
}

// At returns a cursor on index i without checking bounds.
func At(i int) Cursor {
	return Cursor{index: i, valid: true}
}

// Index returns the selected index and whether one is selected.
func (c Cursor) Index() (int, bool) {
	return c.index, c.valid
}

// Valid reports whether an item is selected.
func (c Cursor) Valid() bool {
	return c.valid
}

// Clamp fits the cursor to a list of n items. An index past the end moves to
// the last item, an empty list leaves the cursor absent and an absent cursor
// over a non-empty list selects the first item.
func (c Cursor) Clamp(n int) Cursor {
	switch {
	case n <= 0:
		return Cursor{}
	case !c.valid || c.index < 0:
		return Cursor{index: 0, valid: true}
	case c.index >= n:
		return Cursor{index: n - 1, valid: true}
	default:
		return c
	}
}

// Down moves to the next item, wrapping from the last to the first.
func (c Cursor) Down(n int) Cursor {
	if !c.valid {
		return c.Clamp(n)
	}
	c = c.Clamp(n)
	if !c.valid {
		return c
	}
	if c.index >= n-1 {
		c.index = 0
	} else {
		c.index++
	}
	return c
}

// Up moves to the previous item, wrapping from the first to the last.
func (c Cursor) Up(n int) Cursor {
	if !c.valid {
		return c.Clamp(n)
	}
	c = c.Clamp(n)
	if !c.valid {
		return c
	}
	if c.index == 0 {
		c.index = n - 1
	} else {
		c.index--
	}
	return c
}
