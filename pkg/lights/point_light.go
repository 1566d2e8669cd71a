package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an idealized light at a single position.
// It has no color: direct lighting is the surface color scaled by N·L.
type PointLight struct {
	Position core.Vector3
}

// NewPointLight creates a point light at position
func NewPointLight(position core.Vector3) PointLight {
	return PointLight{Position: position}
}

// DirectionFrom returns the unit direction from point towards the light.
// It panics with core.ErrDegenerateVector when point coincides with the light.
func (l PointLight) DirectionFrom(point core.Vector3) core.Vector3 {
	return l.Position.Subtract(point).Normalize()
}

// DistanceFrom returns the distance from point to the light
func (l PointLight) DistanceFrom(point core.Vector3) float64 {
	return l.Position.Subtract(point).Length()
}
