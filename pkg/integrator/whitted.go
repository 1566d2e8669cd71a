package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted-style ray tracing:
// shadowed point-light diffuse shading plus mirror reflection and refraction
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor returns the color seen along ray. Secondary rays are only traced
// while depth > 0; a negative depth contributes nothing.
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene, depth int) core.Color {
	if depth < 0 {
		return core.Black
	}

	hit, isHit := s.Intersect(ray)
	if !isHit {
		return s.Background
	}

	m := hit.Material
	color := wi.calculateDirectLighting(s, hit).Multiply(m.DiffuseWeight())

	if depth > 0 && m.Reflectivity > 0 {
		reflected := wi.RayColor(hit.ReflectedRay(), s, depth-1)
		color = color.Add(reflected.Multiply(m.Reflectivity))
	}

	if depth > 0 && m.Transparency > 0 {
		refracted := wi.RayColor(hit.RefractedRay(), s, depth-1)
		color = color.Add(refracted.Multiply(m.Transparency))
	}

	return color
}

// calculateDirectLighting sums the unshadowed Lambert term of every light
func (wi *WhittedIntegrator) calculateDirectLighting(s *scene.Scene, hit geometry.Intersection) core.Color {
	direct := core.Black

	for _, light := range s.Lights {
		shadowRay := hit.ShadowRay(light.Position)
		if s.Occluded(shadowRay) {
			continue
		}

		ndotL := min(1.0, max(0.0, hit.Normal.Dot(shadowRay.Direction)))
		direct = direct.Add(hit.Material.Color.Multiply(ndotL))
	}

	return direct
}
