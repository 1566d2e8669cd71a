package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadFile reads a JSON scene description and builds the scene
func LoadFile(path string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	s, err := FromDescription(sf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromDescription builds and validates a scene from a decoded description.
// Zero sampling sizes keep the defaults, as does an absent maxDepth.
func FromDescription(sf *loaders.SceneFile) (*Scene, error) {
	s := New(sf.Name)
	s.SamplingConfig = s.SamplingConfig.Merge(SamplingConfig{
		Width:          sf.Sampling.Width,
		Height:         sf.Sampling.Height,
		SamplesPerSide: sf.Sampling.SamplesPerSide,
	})
	if sf.Sampling.MaxDepth != nil {
		s.SamplingConfig.MaxDepth = *sf.Sampling.MaxDepth
	}
	s.CameraConfig = geometry.CameraConfig{
		Eye:         sf.Camera.Eye.Vector3(),
		LookAt:      sf.Camera.LookAt.Vector3(),
		Up:          sf.Camera.Up.Vector3(),
		VFov:        sf.Camera.VFov,
		AspectRatio: sf.Camera.AspectRatio,
	}
	if sf.Background != nil {
		s.Background = sf.Background.Color()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	materials, err := resolveMaterials(sf.Materials)
	if err != nil {
		return nil, err
	}
	lookup := func(kind string, index int, name string) (material.Material, error) {
		m, ok := materials[name]
		if !ok {
			return material.Material{}, fmt.Errorf("%s %d: unknown material %q", kind, index, name)
		}
		return m, nil
	}

	for _, l := range sf.Lights {
		s.AddLight(l.Position.Vector3())
	}

	for i, spec := range sf.Spheres {
		m, err := lookup("sphere", i, spec.Material)
		if err != nil {
			return nil, err
		}
		if !(spec.Radius > 0) {
			return nil, fmt.Errorf("sphere %d: radius %g must be positive", i, spec.Radius)
		}
		s.Add(geometry.NewSphere(spec.Center.Vector3(), spec.Radius, m))
	}

	for i, spec := range sf.Triangles {
		m, err := lookup("triangle", i, spec.Material)
		if err != nil {
			return nil, err
		}
		v0, v1, v2 := spec.Vertices[0].Vector3(), spec.Vertices[1].Vector3(), spec.Vertices[2].Vector3()
		if err := geometry.ValidateTriangle(v0, v1, v2); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		s.Add(geometry.NewTriangle(v0, v1, v2, m))
	}

	for i, spec := range sf.Quads {
		m, err := lookup("quad", i, spec.Material)
		if err != nil {
			return nil, err
		}
		var v [4]core.Vector3
		for j := range v {
			v[j] = spec.Vertices[j].Vector3()
		}
		if err := geometry.ValidateTriangle(v[0], v[1], v[2]); err != nil {
			return nil, fmt.Errorf("quad %d: %w", i, err)
		}
		if err := geometry.ValidateTriangle(v[0], v[2], v[3]); err != nil {
			return nil, fmt.Errorf("quad %d: %w", i, err)
		}
		s.Add(geometry.NewQuad(v[0], v[1], v[2], v[3], m)...)
	}

	return s, nil
}

// resolveMaterials overlays the file's materials on the built-in palette
func resolveMaterials(specs map[string]loaders.MaterialSpec) (map[string]material.Material, error) {
	materials := material.Palette()
	for name, spec := range specs {
		ior := spec.RefractiveIndex
		if ior == 0 {
			ior = 1.0
		}
		m, err := material.New(spec.Color.Color(), spec.Reflectivity, spec.Transparency, ior)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}
	return materials, nil
}
