package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// RayEpsilon offsets secondary rays from the surface they leave
const RayEpsilon = 0.01

// Intersection contains information about a ray-object intersection
type Intersection struct {
	T           float64           // Parameter t along the ray
	Position    core.Vector3      // Point of intersection
	Normal      core.Vector3      // Unit surface normal, facing the incoming ray
	FrontFacing bool              // Whether the geometric normal already faced the ray
	Material    material.Material // Material of the surface that was hit
	Ray         core.Ray          // Incoming ray
}

// SetFaceNormal orients the normal against the incoming ray and records front/back face
func (h *Intersection) SetFaceNormal(ray core.Ray, outwardNormal core.Vector3) {
	h.FrontFacing = -ray.Direction.Dot(outwardNormal) > 0
	if h.FrontFacing {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ShadowRay returns a ray from the hit point towards lightPos.
// Its interval ends at the light so geometry behind the light does not occlude it.
func (h *Intersection) ShadowRay(lightPos core.Vector3) core.Ray {
	toLight := lightPos.Subtract(h.Position)
	distance := toLight.Length()
	return core.NewRayInterval(h.Position, toLight.Normalize(), RayEpsilon, distance)
}

// ReflectedRay returns the mirror reflection of the incoming ray
func (h *Intersection) ReflectedRay() core.Ray {
	direction := material.Reflect(h.Ray.Direction, h.Normal)
	return core.NewRayInterval(h.Position, direction, RayEpsilon, math.Inf(1))
}

// RefractedRay returns the ray transmitted through the surface by Snell's law.
// Under total internal reflection the reflected ray is returned instead.
func (h *Intersection) RefractedRay() core.Ray {
	eta := 1 / h.Material.RefractiveIndex
	if !h.FrontFacing {
		eta = 1 / eta // leaving the material
	}

	direction, ok := material.Refract(h.Ray.Direction, h.Normal, eta)
	if !ok {
		return h.ReflectedRay()
	}
	return core.NewRayInterval(h.Position, direction, RayEpsilon, math.Inf(1))
}
