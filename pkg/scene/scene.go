package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ErrInvalidSampling is returned for sampling settings that cannot be rendered
var ErrInvalidSampling = errors.New("invalid sampling config")

// Scene contains all the elements needed for rendering.
// It is built once and must not be modified while rendering.
type Scene struct {
	Name           string
	Shapes         []geometry.Shape      // Objects in the scene, unordered
	Lights         []lights.PointLight   // Point lights used for direct lighting
	Background     core.Color            // Color of rays that escape the scene
	CameraConfig   geometry.CameraConfig // AspectRatio 0 follows the image size
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width          int // Image width
	Height         int // Image height
	SamplesPerSide int // Stratified samples per pixel side; S×S samples per pixel
	MaxDepth       int // Recursion depth for reflection and refraction rays
}

// DefaultSamplingConfig returns the settings used by the built-in scenes
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:          512,
		Height:         512,
		SamplesPerSide: 3,
		MaxDepth:       3,
	}
}

// Validate checks that the configuration can be rendered
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidSampling, c.Width, c.Height)
	}
	if c.SamplesPerSide < 1 {
		return fmt.Errorf("%w: samples per side %d must be at least 1", ErrInvalidSampling, c.SamplesPerSide)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidSampling, c.MaxDepth)
	}
	return nil
}

// Merge returns c with every positive size and sample count of override
// applied. MaxDepth is not merged because zero is a valid depth; callers
// that override it set it directly.
func (c SamplingConfig) Merge(override SamplingConfig) SamplingConfig {
	if override.Width > 0 {
		c.Width = override.Width
	}
	if override.Height > 0 {
		c.Height = override.Height
	}
	if override.SamplesPerSide > 0 {
		c.SamplesPerSide = override.SamplesPerSide
	}
	return c
}

// New creates an empty scene with a black background and default sampling
func New(name string) *Scene {
	return &Scene{
		Name:           name,
		Shapes:         make([]geometry.Shape, 0),
		Lights:         make([]lights.PointLight, 0),
		Background:     core.Black,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight adds a point light at position
func (s *Scene) AddLight(position core.Vector3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position))
}

// Intersect returns the closest hit along the ray. Every shape is tested
// against the ray's full interval; the nearest hit found wins.
func (s *Scene) Intersect(ray core.Ray) (geometry.Intersection, bool) {
	var closest geometry.Intersection
	hitAnything := false

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Intersect(ray); isHit {
			if !hitAnything || hit.T < closest.T {
				closest = hit
				hitAnything = true
			}
		}
	}

	return closest, hitAnything
}

// Occluded reports whether anything is hit inside the ray's interval
func (s *Scene) Occluded(ray core.Ray) bool {
	for _, shape := range s.Shapes {
		if _, isHit := shape.Intersect(ray); isHit {
			return true
		}
	}
	return false
}

// Validate checks the camera and sampling configuration
func (s *Scene) Validate() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.EffectiveCameraConfig().Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// EffectiveCameraConfig returns the camera config with a zero aspect ratio
// replaced by the sampling width/height
func (s *Scene) EffectiveCameraConfig() geometry.CameraConfig {
	config := s.CameraConfig
	if config.AspectRatio <= 0 && s.SamplingConfig.Height > 0 {
		config.AspectRatio = float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
	}
	return config
}

// NewCamera builds the scene's camera and sets it up for the sampling resolution
func (s *Scene) NewCamera() (*geometry.Camera, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	camera := geometry.NewCamera(s.EffectiveCameraConfig())
	if err := camera.Setup(s.SamplingConfig.Width, s.SamplingConfig.Height); err != nil {
		return nil, err
	}
	return camera, nil
}

// GetPrimitiveCount returns the number of spheres and triangles in the scene
func (s *Scene) GetPrimitiveCount() (spheres, triangles int) {
	for _, shape := range s.Shapes {
		switch shape.(type) {
		case *geometry.Sphere:
			spheres++
		case *geometry.Triangle:
			triangles++
		}
	}
	return spheres, triangles
}
