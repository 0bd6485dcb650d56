package wfc

import "iter"

// Bounds is the active rectangle of the world: the half-open region
// [X0, X1) x [Y0, Y1). Cells outside the bounds are inert; the engine
// never refines or collapses them.
type Bounds struct {
	X0 int `yaml:"x0"`
	Y0 int `yaml:"y0"`
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
}

// NewBounds returns the rectangle [x0, x1) x [y0, y1).
func NewBounds(x0, y0, x1, y1 int) Bounds {
	return Bounds{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Contains reports whether (x, y) lies inside the rectangle.
func (b Bounds) Contains(x, y int) bool {
	return b.X0 <= x && x < b.X1 && b.Y0 <= y && y < b.Y1
}

// Width returns the horizontal extent of the rectangle.
func (b Bounds) Width() int {
	if b.X1 <= b.X0 {
		return 0
	}
	return b.X1 - b.X0
}

// Height returns the vertical extent of the rectangle.
func (b Bounds) Height() int {
	if b.Y1 <= b.Y0 {
		return 0
	}
	return b.Y1 - b.Y0
}

// Empty reports whether the rectangle contains no cells.
func (b Bounds) Empty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// Cells yields every coordinate inside the rectangle in x-major order:
// all of column X0 first, then column X0+1, and so on. This matches the
// lexicographic (X, Y) order of the world's storage.
func (b Bounds) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for x := b.X0; x < b.X1; x++ {
			for y := b.Y0; y < b.Y1; y++ {
				if !yield(Coord{X: x, Y: y}) {
					return
				}
			}
		}
	}
}
