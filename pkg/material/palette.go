package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Materials used by the built-in scenes
var (
	WhiteDiffuse     = NewDiffuse(core.NewColor(0.9, 0.9, 0.9))
	GreenDiffuse     = NewDiffuse(core.NewColor(0.1, 0.6, 0.1))
	RedDiffuse       = NewDiffuse(core.NewColor(1.0, 0.1, 0.1))
	BlueDiffuse      = NewDiffuse(core.NewColor(0.0, 0.2, 0.9))
	YellowReflective = MustNew(core.NewColor(1.0, 0.6, 0.1), 0.2, 0.0, 1.0)
	Glass            = MustNew(core.NewColor(1.0, 1.0, 1.0), 0.2, 0.8, 1.3)
)

// Palette maps material names to the built-in materials.
// Scene files refer to these names.
func Palette() map[string]Material {
	return map[string]Material{
		"white":             WhiteDiffuse,
		"green":             GreenDiffuse,
		"red":               RedDiffuse,
		"blue":              BlueDiffuse,
		"yellow-reflective": YellowReflective,
		"glass":             Glass,
	}
}
