package core

import "math"

// Ray is a half-line with a valid parametric interval [MinT, MaxT].
// Rays are values and are never modified after construction.
type Ray struct {
	Origin    Vector3
	Direction Vector3
	MinT      float64
	MaxT      float64
}

// NewRay creates a ray valid over [0, +Inf]
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: 0, MaxT: math.Inf(1)}
}

// NewRayInterval creates a ray valid over [minT, maxT]
func NewRayInterval(origin, direction Vector3, minT, maxT float64) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: minT, MaxT: maxT}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t >= r.MinT && t <= r.MaxT
}
