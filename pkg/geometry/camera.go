package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for camera parameters that cannot form a view
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye         core.Vector3 // Camera position
	LookAt      core.Vector3 // Point the camera looks at
	Up          core.Vector3 // Up direction
	VFov        float64      // Vertical field of view in degrees
	AspectRatio float64      // Image width / height
}

// Validate checks that the configuration describes a usable pinhole camera
func (c CameraConfig) Validate() error {
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical fov %g must be in (0, 180) degrees", ErrInvalidCamera, c.VFov)
	}
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidCamera, c.AspectRatio)
	}
	view := c.Eye.Subtract(c.LookAt)
	if view.IsDegenerate() {
		return fmt.Errorf("%w: eye and look-at coincide", ErrInvalidCamera)
	}
	if c.Up.Cross(view).IsDegenerate() {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

// Camera is a pinhole camera mapping pixel coordinates to primary rays.
// The basis is fixed by NewCamera, the image mapping by Setup.
type Camera struct {
	config  CameraConfig
	u, v, w core.Vector3 // Orthonormal basis; w points backwards

	width, height         float64
	halfWidth, halfHeight float64 // Image plane extent at unit distance
}

// NewCamera builds the camera basis from config.
// config must pass Validate.
func NewCamera(config CameraConfig) *Camera {
	w := config.Eye.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)

	return &Camera{
		config:     config,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: halfHeight,
		halfWidth:  config.AspectRatio * halfHeight,
	}
}

// Setup fixes the image resolution used by GetRay and Project
func (c *Camera) Setup(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidCamera, width, height)
	}
	c.width = float64(width)
	c.height = float64(height)
	return nil
}

// GetRay returns the primary ray through fractional pixel coordinates (x, y).
// (0, 0) is the top-left corner of the image and (width, height) the bottom-right.
func (c *Camera) GetRay(x, y float64) core.Ray {
	sx := 2*x/c.width - 1
	sy := 1 - 2*y/c.height

	direction := c.w.Negate().
		Add(c.u.Multiply(sx * c.halfWidth)).
		Add(c.v.Multiply(sy * c.halfHeight)).
		Normalize()

	return core.NewRay(c.config.Eye, direction)
}

// Project maps a world-space point to fractional pixel coordinates.
// It returns false for points on or behind the image plane's eye side.
func (c *Camera) Project(p core.Vector3) (x, y float64, ok bool) {
	d := p.Subtract(c.config.Eye)
	depth := -d.Dot(c.w)
	if depth <= 0 {
		return 0, 0, false
	}

	sx := d.Dot(c.u) / depth / c.halfWidth
	sy := d.Dot(c.v) / depth / c.halfHeight

	x = (sx + 1) / 2 * c.width
	y = (1 - sy) / 2 * c.height
	return x, y, true
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vector3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
