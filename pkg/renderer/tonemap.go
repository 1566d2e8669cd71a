package renderer

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	displayGamma   = 2.2
	maxChannel     = 0.999 // keeps 256·x below 256
	quantizeLevels = 256
)

// ToneMap converts a linear color to 8-bit display values:
// gamma 1/2.2, clamp to [0, 0.999], then scale by 256 and truncate.
// The work is done in single precision.
func ToneMap(c core.Color) [3]uint8 {
	return [3]uint8{
		toneMapChannel(c.R),
		toneMapChannel(c.G),
		toneMapChannel(c.B),
	}
}

func toneMapChannel(x float64) uint8 {
	v := math32.Pow(float32(x), 1/float32(displayGamma))
	if math32.IsNaN(v) {
		v = 0 // negative channels
	}
	v = math32.Max(0, math32.Min(maxChannel, v))
	return uint8(quantizeLevels * v)
}

// ToRGBA tone maps a linear color into an opaque RGBA pixel
func ToRGBA(c core.Color) color.RGBA {
	rgb := ToneMap(c)
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}
