package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Color is a linear-light RGB value. It shares Vector3's algebra but is a
// distinct type so positions and radiance cannot be mixed up.
type Color struct {
	R, G, B float64
}

// Black is the zero color, also used as the background
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) vec() r3.Vec {
	return r3.Vec{X: c.R, Y: c.G, Z: c.B}
}

func colorFromVec(v r3.Vec) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return colorFromVec(r3.Add(c.vec(), other.vec()))
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return colorFromVec(r3.Scale(scalar, c.vec()))
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

// Clamp returns a color with components clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// IsBlack reports whether every channel is zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Channels returns the color as an array indexed R, G, B
func (c Color) Channels() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// ApproxEqual reports whether two colors differ by at most tolerance per channel
func (c Color) ApproxEqual(other Color, tolerance float64) bool {
	return math.Abs(c.R-other.R) <= tolerance &&
		math.Abs(c.G-other.G) <= tolerance &&
		math.Abs(c.B-other.B) <= tolerance
}
