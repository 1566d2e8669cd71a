package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const boxSceneJSON = `{
	"name": "box",
	"camera": {"eye": [0, 10, 30], "lookAt": [0, 10, -5], "up": [0, 1, 0], "vfov": 52},
	"sampling": {"width": 64, "samplesPerSide": 2},
	"background": [0.1, 0.2, 0.3],
	"lights": [{"position": [0, 30, -5]}, {"position": [10, 30, 0]}],
	"materials": {
		"mirror": {"color": [1, 1, 1], "reflectivity": 0.9},
		"white": {"color": [0.5, 0.5, 0.5]}
	},
	"spheres": [
		{"center": [0, 3, -20], "radius": 3, "material": "mirror"},
		{"center": [5, 3, -20], "radius": 1, "material": "glass"}
	],
	"triangles": [
		{"vertices": [[-20, 0, 50], [20, 0, 50], [20, 0, -50]], "material": "white"}
	],
	"quads": [
		{"vertices": [[-20, 0, -50], [20, 0, -50], [20, 40, -50], [-20, 40, -50]], "material": "red"}
	]
}`

func parseDescription(t *testing.T, content string) *loaders.SceneFile {
	t.Helper()
	sf, err := loaders.ParseSceneFile(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	return sf
}

func TestFromDescription(t *testing.T) {
	s, err := FromDescription(parseDescription(t, boxSceneJSON))
	if err != nil {
		t.Fatalf("FromDescription failed: %v", err)
	}

	if s.Name != "box" {
		t.Errorf("Expected name box, got %q", s.Name)
	}

	// Zero fields keep the defaults
	expectedSampling := SamplingConfig{Width: 64, Height: 512, SamplesPerSide: 2, MaxDepth: 3}
	if s.SamplingConfig != expectedSampling {
		t.Errorf("Expected sampling %+v, got %+v", expectedSampling, s.SamplingConfig)
	}

	if s.Background.R != 0.1 || s.Background.G != 0.2 || s.Background.B != 0.3 {
		t.Errorf("Unexpected background %v", s.Background)
	}
	if len(s.Lights) != 2 {
		t.Errorf("Expected 2 lights, got %d", len(s.Lights))
	}

	spheres, triangles := s.GetPrimitiveCount()
	if spheres != 2 || triangles != 3 {
		t.Errorf("Expected 2 spheres and 3 triangles, got %d and %d", spheres, triangles)
	}

	mirror := s.Shapes[0].(*geometry.Sphere)
	if mirror.Material.Reflectivity != 0.9 || mirror.Material.RefractiveIndex != 1.0 {
		t.Errorf("Expected custom mirror material with default index, got %+v", mirror.Material)
	}
	glass := s.Shapes[1].(*geometry.Sphere)
	if glass.Material != material.Glass {
		t.Errorf("Expected palette glass, got %+v", glass.Material)
	}
	floor := s.Shapes[2].(*geometry.Triangle)
	if floor.Material.Color.R != 0.5 {
		t.Errorf("Expected file material to override palette white, got %+v", floor.Material)
	}
}

func TestFromDescription_MaxDepth(t *testing.T) {
	tests := []struct {
		name     string
		sampling string
		expected int
	}{
		{"absent keeps default", `{"width": 8, "height": 8}`, 3},
		{"zero disables secondary rays", `{"width": 8, "height": 8, "maxDepth": 0}`, 0},
		{"explicit depth", `{"width": 8, "height": 8, "maxDepth": 5}`, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `{
				"name": "depth",
				"camera": {"eye": [0, 0, 5], "lookAt": [0, 0, 0], "up": [0, 1, 0], "vfov": 45},
				"sampling": ` + tt.sampling + `,
				"lights": [{"position": [0, 10, 0]}],
				"spheres": [{"center": [0, 0, 0], "radius": 1, "material": "green"}]
			}`
			s, err := FromDescription(parseDescription(t, content))
			if err != nil {
				t.Fatalf("FromDescription failed: %v", err)
			}
			if s.SamplingConfig.MaxDepth != tt.expected {
				t.Errorf("Expected max depth %d, got %d", tt.expected, s.SamplingConfig.MaxDepth)
			}
		})
	}
}

func TestFromDescription_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(sf *loaders.SceneFile)
		errorMsg string
	}{
		{
			name:     "unknown material",
			mutate:   func(sf *loaders.SceneFile) { sf.Spheres[0].Material = "chrome" },
			errorMsg: `unknown material "chrome"`,
		},
		{
			name:     "non-positive radius",
			mutate:   func(sf *loaders.SceneFile) { sf.Spheres[1].Radius = 0 },
			errorMsg: "radius",
		},
		{
			name: "degenerate triangle",
			mutate: func(sf *loaders.SceneFile) {
				sf.Triangles[0].Vertices[2] = sf.Triangles[0].Vertices[1]
			},
			errorMsg: "triangle 0",
		},
		{
			name: "over budget material",
			mutate: func(sf *loaders.SceneFile) {
				sf.Materials["mirror"] = loaders.MaterialSpec{
					Color:        loaders.Vec3Spec{1, 1, 1},
					Reflectivity: 0.7,
					Transparency: 0.7,
				}
			},
			errorMsg: `material "mirror"`,
		},
		{
			name:     "bad field of view",
			mutate:   func(sf *loaders.SceneFile) { sf.Camera.VFov = 0 },
			errorMsg: "invalid camera",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf := parseDescription(t, boxSceneJSON)
			tt.mutate(sf)

			_, err := FromDescription(sf)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestFromDescription_InvalidMaterialWrapsSentinel(t *testing.T) {
	sf := parseDescription(t, boxSceneJSON)
	sf.Materials["mirror"] = loaders.MaterialSpec{Color: loaders.Vec3Spec{1, 1, 1}, Reflectivity: 1.5}

	if _, err := FromDescription(sf); !errors.Is(err, material.ErrInvalidMaterial) {
		t.Errorf("Expected ErrInvalidMaterial, got %v", err)
	}
}
