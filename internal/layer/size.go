package layer

import "fmt"

// Size is the extent of a grid belonging to a single feature map.
type Size struct {
	Rows int
	Cols int
}

// Total returns the number of cells in the grid.
func (s Size) Total() int {
	return s.Rows * s.Cols
}

// DivisibleBy reports whether windows of size w tile s without remainder.
func (s Size) DivisibleBy(w Size) bool {
	if w.Rows <= 0 || w.Cols <= 0 {
		return false
	}
	return s.Rows%w.Rows == 0 && s.Cols%w.Cols == 0
}

// Div returns the number of w-sized windows along each axis of s.
func (s Size) Div(w Size) Size {
	return Size{Rows: s.Rows / w.Rows, Cols: s.Cols / w.Cols}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}
