package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned when material parameters violate the energy budget
var ErrInvalidMaterial = errors.New("invalid material")

// Material describes how a surface blends direct light, mirror reflection and refraction.
// The shading weights are (1 - Reflectivity - Transparency) for direct light,
// Reflectivity for the mirror term and Transparency for the refracted term.
type Material struct {
	Color           core.Color // Diffuse (Lambertian) color
	Reflectivity    float64    // Weight of the mirror reflection in [0,1]
	Transparency    float64    // Weight of the refracted ray in [0,1]
	RefractiveIndex float64    // Index of refraction, > 0
}

// New creates a material and checks that Reflectivity and Transparency are
// in [0,1], that together they do not exceed 1, and that the refractive index is positive.
func New(color core.Color, reflectivity, transparency, refractiveIndex float64) (Material, error) {
	m := Material{
		Color:           color,
		Reflectivity:    reflectivity,
		Transparency:    transparency,
		RefractiveIndex: refractiveIndex,
	}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// MustNew is like New but panics on invalid parameters. Use for built-in scenes.
func MustNew(color core.Color, reflectivity, transparency, refractiveIndex float64) Material {
	m, err := New(color, reflectivity, transparency, refractiveIndex)
	if err != nil {
		panic(err)
	}
	return m
}

// NewDiffuse creates a purely Lambertian material
func NewDiffuse(color core.Color) Material {
	return Material{Color: color, RefractiveIndex: 1.0}
}

// Validate checks the material's energy budget
func (m Material) Validate() error {
	// budgetTolerance absorbs rounding in sums like 0.2 + 0.8
	const budgetTolerance = 1e-9

	if m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("%w: reflectivity %g outside [0,1]", ErrInvalidMaterial, m.Reflectivity)
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return fmt.Errorf("%w: transparency %g outside [0,1]", ErrInvalidMaterial, m.Transparency)
	}
	if m.Reflectivity+m.Transparency > 1+budgetTolerance {
		return fmt.Errorf("%w: reflectivity + transparency = %g exceeds 1",
			ErrInvalidMaterial, m.Reflectivity+m.Transparency)
	}
	if !(m.RefractiveIndex > 0) {
		return fmt.Errorf("%w: refractive index %g must be positive", ErrInvalidMaterial, m.RefractiveIndex)
	}
	return nil
}

// DiffuseWeight returns the weight of the direct lighting term
func (m Material) DiffuseWeight() float64 {
	return 1 - m.Reflectivity - m.Transparency
}

// IsReflective reports whether the material spawns reflection rays
func (m Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// IsTransparent reports whether the material spawns refraction rays
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}
