package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateVector is raised when a zero-length vector is normalized
var ErrDegenerateVector = errors.New("cannot normalize a zero-length vector")

// degenerateLengthSquared is the squared length below which a vector has no direction
const degenerateLengthSquared = 1e-24

// Vector3 represents a position or direction in world space.
// The algebra is shared with Color through gonum's r3 package.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new Vector3
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) vec() r3.Vec {
	return r3.Vec(v)
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3(r3.Add(v.vec(), other.vec()))
}

// Subtract returns the difference of two vectors
func (v Vector3) Subtract(other Vector3) Vector3 {
	return Vector3(r3.Sub(v.vec(), other.vec()))
}

// Multiply returns the vector scaled by a scalar
func (v Vector3) Multiply(scalar float64) Vector3 {
	return Vector3(r3.Scale(scalar, v.vec()))
}

// Negate returns the negative of the vector
func (v Vector3) Negate() Vector3 {
	return v.Multiply(-1)
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3(r3.Cross(v.vec(), other.vec()))
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return r3.Norm(v.vec())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector3) LengthSquared() float64 {
	return r3.Norm2(v.vec())
}

// IsDegenerate reports whether the vector is too short to have a direction
func (v Vector3) IsDegenerate() bool {
	return v.LengthSquared() < degenerateLengthSquared
}

// TryNormalize returns a unit vector in the same direction, or
// ErrDegenerateVector for a zero-length vector.
func (v Vector3) TryNormalize() (Vector3, error) {
	if v.IsDegenerate() {
		return Vector3{}, fmt.Errorf("%w: %v", ErrDegenerateVector, v)
	}
	return v.Multiply(1 / v.Length()), nil
}

// Normalize returns a unit vector in the same direction.
// It panics with ErrDegenerateVector when v has zero length; callers that
// cannot rule that out must use TryNormalize.
func (v Vector3) Normalize() Vector3 {
	n, err := v.TryNormalize()
	if err != nil {
		panic(err)
	}
	return n
}

// ApproxEqual reports whether two vectors differ by at most tolerance per component
func (v Vector3) ApproxEqual(other Vector3, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance
}

// Vec2 holds a pair of sample values
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}
