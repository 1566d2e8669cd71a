package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultLightPosition is the point light shared by the built-in scenes
var DefaultLightPosition = core.NewVector3(0, 30, -5)

// defaultCameraConfig looks down the -Z axis into the box.
// The aspect ratio follows the image size.
func defaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Eye:    core.NewVector3(0, 10, 30),
		LookAt: core.NewVector3(0, 10, -5),
		Up:     core.NewVector3(0, 1, 0),
		VFov:   52,
	}
}

// cornellVertices lists the box walls as triangles, three vertices each
var cornellVertices = []core.Vector3{
	core.NewVector3(-20, 0, 50), core.NewVector3(20, 0, 50), core.NewVector3(20, 0, -50),      // Floor 1
	core.NewVector3(-20, 0, 50), core.NewVector3(20, 0, -50), core.NewVector3(-20, 0, -50),    // Floor 2
	core.NewVector3(-20, 0, -50), core.NewVector3(20, 0, -50), core.NewVector3(20, 40, -50),   // Back wall 1
	core.NewVector3(-20, 0, -50), core.NewVector3(20, 40, -50), core.NewVector3(-20, 40, -50), // Back wall 2
	core.NewVector3(-20, 40, 50), core.NewVector3(-20, 40, -50), core.NewVector3(20, 40, 50),  // Ceiling 1
	core.NewVector3(20, 40, 50), core.NewVector3(-20, 40, -50), core.NewVector3(20, 40, -50),  // Ceiling 2
	core.NewVector3(-20, 0, 50), core.NewVector3(-20, 40, -50), core.NewVector3(-20, 40, 50),  // Red wall 1
	core.NewVector3(-20, 0, 50), core.NewVector3(-20, 0, -50), core.NewVector3(-20, 40, -50),  // Red wall 2
	core.NewVector3(20, 0, 50), core.NewVector3(20, 40, -50), core.NewVector3(20, 40, 50),     // Green wall 1
	core.NewVector3(20, 0, 50), core.NewVector3(20, 0, -50), core.NewVector3(20, 40, -50),     // Green wall 2
}

func cornellTriangle(index int, m material.Material) *geometry.Triangle {
	v := cornellVertices[index*3 : index*3+3]
	return geometry.NewTriangle(v[0], v[1], v[2], m)
}

// addDiffuseSpheres adds the green, blue and red spheres resting on the floor
func addDiffuseSpheres(s *Scene) {
	s.Add(
		geometry.NewSphere(core.NewVector3(-7, 3, -20), 3, material.GreenDiffuse),
		geometry.NewSphere(core.NewVector3(0, 3, -20), 3, material.BlueDiffuse),
		geometry.NewSphere(core.NewVector3(7, 3, -20), 3, material.RedDiffuse),
	)
}

// NewCornellScene creates a Cornell box with diffuse,
// reflective and refractive spheres lit by one point light
func NewCornellScene() *Scene {
	s := New("cornell")
	s.CameraConfig = defaultCameraConfig()
	s.AddLight(DefaultLightPosition)

	addDiffuseSpheres(s)

	s.Add(
		cornellTriangle(0, material.WhiteDiffuse), // Floor
		cornellTriangle(1, material.WhiteDiffuse),
		cornellTriangle(2, material.WhiteDiffuse), // Back wall
		cornellTriangle(3, material.WhiteDiffuse),
		cornellTriangle(4, material.WhiteDiffuse), // Ceiling
		cornellTriangle(5, material.WhiteDiffuse),
		cornellTriangle(6, material.RedDiffuse), // Left wall
		cornellTriangle(7, material.RedDiffuse),
		cornellTriangle(8, material.GreenDiffuse), // Right wall
		cornellTriangle(9, material.GreenDiffuse),
	)

	s.Add(
		geometry.NewSphere(core.NewVector3(7, 3, 0), 3, material.YellowReflective),
		geometry.NewSphere(core.NewVector3(9, 10, 0), 3, material.YellowReflective),
		geometry.NewSphere(core.NewVector3(-7, 3, 0), 3, material.Glass),
		geometry.NewSphere(core.NewVector3(-9, 10, 0), 3, material.Glass),
	)

	return s
}

// NewSpheresScene creates the three diffuse spheres standing on the floor
func NewSpheresScene() *Scene {
	s := New("spheres")
	s.CameraConfig = defaultCameraConfig()
	s.AddLight(DefaultLightPosition)

	addDiffuseSpheres(s)
	s.Add(
		cornellTriangle(0, material.WhiteDiffuse),
		cornellTriangle(1, material.WhiteDiffuse),
	)
	return s
}

// NewSingleSphereScene creates one matte green sphere in empty space
func NewSingleSphereScene() *Scene {
	s := New("sphere")
	s.CameraConfig = defaultCameraConfig()
	s.AddLight(DefaultLightPosition)
	s.Add(geometry.NewSphere(core.NewVector3(0, 3, -20), 3, material.GreenDiffuse))
	return s
}
