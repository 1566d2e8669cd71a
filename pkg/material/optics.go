package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Reflect mirrors d about the surface normal n: r = d - 2(n·d)n
func Reflect(d, n core.Vector3) core.Vector3 {
	return d.Subtract(n.Multiply(2 * n.Dot(d)))
}

// Refract bends unit direction d through a surface with unit normal n facing
// against d, using eta = n1/n2. It returns false on total internal reflection.
func Refract(d, n core.Vector3, eta float64) (core.Vector3, bool) {
	cosThetaI := -d.Dot(n)
	c := 1 - eta*eta*(1-cosThetaI*cosThetaI)
	if c < 0 {
		return core.Vector3{}, false
	}
	return d.Multiply(eta).Add(n.Multiply(eta*cosThetaI - math.Sqrt(c))), true
}
