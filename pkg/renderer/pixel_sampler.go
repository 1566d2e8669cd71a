package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// TraceFunc returns the color carried back along a primary ray
type TraceFunc func(ray core.Ray) core.Color

// SamplePixel averages samplesPerSide² jittered samples over pixel (i, j).
// The pixel is split into an S×S grid of cells and one sample is drawn
// uniformly inside each cell. With one sample per side the pixel centre is
// used, so the result equals a single unsupersampled trace.
func SamplePixel(camera *geometry.Camera, i, j, samplesPerSide int, sampler core.Sampler, trace TraceFunc) core.Color {
	if samplesPerSide <= 1 {
		return trace(camera.GetRay(float64(i)+0.5, float64(j)+0.5))
	}

	s := float64(samplesPerSide)
	colorAccum := core.Black

	for m := 0; m < samplesPerSide; m++ { // cell row
		for n := 0; n < samplesPerSide; n++ { // cell column
			// Row jitter is drawn before column jitter
			v := sampler.Get1D()
			u := sampler.Get1D()

			xOffset := (1-u)*float64(n)/s + u*float64(n+1)/s
			yOffset := (1-v)*float64(m)/s + v*float64(m+1)/s

			ray := camera.GetRay(float64(i)+xOffset, float64(j)+yOffset)
			colorAccum = colorAccum.Add(trace(ray))
		}
	}

	return colorAccum.Multiply(1.0 / (s * s))
}
