package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vector3      // The three vertices
	Material   material.Material // Material of the triangle

	edge1, edge2 core.Vector3 // V1-V0 and V2-V0
	planeNormal  core.Vector3 // edge1 × edge2, not normalized
	planeLength  float64      // |planeNormal|, twice the triangle's area
	normal       core.Vector3 // Cached unit normal
}

// NewTriangle creates a new triangle from three vertices.
// The vertices must not be collinear; use ValidateTriangle for untrusted input.
func NewTriangle(v0, v1, v2 core.Vector3, mat material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
	}
	t.edge1 = v1.Subtract(v0)
	t.edge2 = v2.Subtract(v0)
	t.planeNormal = t.edge1.Cross(t.edge2)
	t.planeLength = t.planeNormal.Length()
	t.normal = t.planeNormal.Normalize()
	return t
}

// ValidateTriangle reports an error when the vertices do not span a plane
func ValidateTriangle(v0, v1, v2 core.Vector3) error {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0))
	if _, err := n.TryNormalize(); err != nil {
		return fmt.Errorf("degenerate triangle %v %v %v: %w", v0, v1, v2, err)
	}
	return nil
}

// NewQuad splits the planar quad a-b-c-d into the triangles (a,b,c) and (a,c,d)
func NewQuad(a, b, c, d core.Vector3, mat material.Material) []Shape {
	return []Shape{
		NewTriangle(a, b, c, mat),
		NewTriangle(a, c, d, mat),
	}
}

// Intersect intersects the ray with the triangle's plane and then checks
// that the hit lies inside the triangle using sub-triangle areas.
func (t *Triangle) Intersect(ray core.Ray) (Intersection, bool) {
	n := t.planeNormal

	denom := n.Dot(ray.Direction)
	if denom == 0 {
		return Intersection{}, false // ray parallel to the plane
	}

	tHit := n.Dot(t.V0.Subtract(ray.Origin)) / denom
	if !ray.Contains(tHit) {
		return Intersection{}, false
	}

	q := ray.At(tHit)
	r := q.Subtract(t.V0)
	e1r := t.edge1.Cross(r)
	re2 := r.Cross(t.edge2)

	if e1r.Dot(n) < 0 || re2.Dot(n) < 0 {
		return Intersection{}, false
	}
	if (e1r.Length()+re2.Length())/t.planeLength >= 1 {
		return Intersection{}, false
	}

	hit := Intersection{
		T:        tHit,
		Position: q,
		Material: t.Material,
		Ray:      ray,
	}
	hit.SetFaceNormal(ray, t.normal)

	return hit, true
}

// Normal returns the triangle's geometric unit normal
func (t *Triangle) Normal() core.Vector3 {
	return t.normal
}
