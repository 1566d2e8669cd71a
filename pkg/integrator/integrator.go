package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray.
	// depth is the remaining number of secondary bounces; negative means none.
	RayColor(ray core.Ray, scene *scene.Scene, depth int) core.Color
}
