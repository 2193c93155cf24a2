package articles

// Cursor is the position within an article's pages. Moves are clamped to
// [0, Count-1]; a cursor over zero pages stays at 0.
type Cursor struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// NewCursor returns a cursor at the first of count pages.
func NewCursor(count int) Cursor {
	return Cursor{Count: max(count, 0)}
}

// GoTo returns the cursor moved to page i.
func (c Cursor) GoTo(i int) Cursor {
	c.Index = clamp(i, 0, c.Count-1)
	return c
}

// Step returns the cursor moved by delta pages.
func (c Cursor) Step(delta int) Cursor {
	return c.GoTo(c.Index + delta)
}

// HasPrev reports whether there is a page before the current one.
func (c Cursor) HasPrev() bool { return c.Index > 0 }

// HasNext reports whether there is a page after the current one.
func (c Cursor) HasNext() bool { return c.Index < c.Count-1 }

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
