// Package geom provides simple geometric value types used to describe page
// boxes in theme definitions.
package geom

import (
	"strconv"
)

// Rect is an immutable width/height pair in CSS pixel units.
type Rect struct {
	Width  float64
	Height float64
}

// NewRect creates a rectangle with the given dimensions.
func NewRect(width, height float64) Rect {
	return Rect{Width: width, Height: height}
}

// Area returns width multiplied by height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// AspectRatio returns the width to height ratio, 0 when height is not set.
func (r Rect) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return r.Width / r.Height
}

// Scale returns a copy of the rectangle with both dimensions multiplied by
// factor.
func (r Rect) Scale(factor float64) Rect {
	return Rect{Width: r.Width * factor, Height: r.Height * factor}
}

// IsZero reports whether both dimensions are unset.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

func (r Rect) String() string {
	return strconv.FormatFloat(r.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(r.Height, 'f', -1, 64)
}
