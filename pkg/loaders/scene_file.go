package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Vec3Spec is a JSON triple, used for positions and colors
type Vec3Spec [3]float64

// Vector3 converts the triple to a position or direction
func (v Vec3Spec) Vector3() core.Vector3 {
	return core.NewVector3(v[0], v[1], v[2])
}

// Color converts the triple to an RGB color
func (v Vec3Spec) Color() core.Color {
	return core.NewColor(v[0], v[1], v[2])
}

// SceneFile is the on-disk scene description. Materials are referenced by
// name; names not defined in Materials fall back to the built-in palette.
type SceneFile struct {
	Name       string                  `json:"name"`
	Camera     CameraSpec              `json:"camera"`
	Sampling   SamplingSpec            `json:"sampling"`
	Background *Vec3Spec               `json:"background,omitempty"`
	Lights     []LightSpec             `json:"lights"`
	Materials  map[string]MaterialSpec `json:"materials,omitempty"`
	Spheres    []SphereSpec            `json:"spheres,omitempty"`
	Triangles  []TriangleSpec          `json:"triangles,omitempty"`
	Quads      []QuadSpec              `json:"quads,omitempty"`
}

type CameraSpec struct {
	Eye         Vec3Spec `json:"eye"`
	LookAt      Vec3Spec `json:"lookAt"`
	Up          Vec3Spec `json:"up"`
	VFov        float64  `json:"vfov"`
	AspectRatio float64  `json:"aspectRatio,omitempty"` // 0 means width/height
}

type SamplingSpec struct {
	Width          int  `json:"width"`
	Height         int  `json:"height"`
	SamplesPerSide int  `json:"samplesPerSide"`
	MaxDepth       *int `json:"maxDepth,omitempty"` // nil keeps the default, 0 disables secondary rays
}

type LightSpec struct {
	Position Vec3Spec `json:"position"`
}

type MaterialSpec struct {
	Color           Vec3Spec `json:"color"`
	Reflectivity    float64  `json:"reflectivity,omitempty"`
	Transparency    float64  `json:"transparency,omitempty"`
	RefractiveIndex float64  `json:"refractiveIndex,omitempty"` // 0 means 1.0
}

type SphereSpec struct {
	Center   Vec3Spec `json:"center"`
	Radius   float64  `json:"radius"`
	Material string   `json:"material"`
}

type TriangleSpec struct {
	Vertices [3]Vec3Spec `json:"vertices"`
	Material string      `json:"material"`
}

// QuadSpec is a planar quad split into two triangles (v0,v1,v2) and (v0,v2,v3)
type QuadSpec struct {
	Vertices [4]Vec3Spec `json:"vertices"`
	Material string      `json:"material"`
}

// LoadSceneFile reads a scene description from a JSON file
func LoadSceneFile(path string) (*SceneFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// ParseSceneFile decodes a scene description. Unknown fields are rejected
// so typos do not silently fall back to defaults.
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return &sf, nil
}

// SaveSceneFile writes a scene description as indented JSON
func SaveSceneFile(path string, sf *SceneFile) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sf); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return file.Close()
}
