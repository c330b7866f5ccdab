// Package core provides platform-neutral primitives for the terminal front-end:
// the colored screen buffer, playfield geometry and semantic input actions.
// It has no external dependencies so rendering can be tested without a terminal.
package core

// Rect is an axis-aligned area of the screen, used to lay out lanes and panels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// SplitColumns divides r into n equal-width columns separated by gap cells.
// Leftover width goes to the right margin so columns stay identical.
func (r Rect) SplitColumns(n, gap int) []Rect {
	if n <= 0 {
		return nil
	}
	w := (r.W - gap*(n-1)) / n
	if w < 1 {
		w = 1
	}
	cols := make([]Rect, n)
	for i := range cols {
		cols[i] = NewRect(r.X+i*(w+gap), r.Y, w, r.H)
	}
	return cols
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
