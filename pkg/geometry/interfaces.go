package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Shape is implemented by every primitive that can be hit by rays.
// The set is closed: *Sphere and *Triangle.
type Shape interface {
	// Intersect returns the nearest hit inside the ray's [MinT, MaxT] interval.
	// A miss is reported as (Intersection{}, false) and is not an error.
	Intersect(ray core.Ray) (Intersection, bool)
}
