package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// MockSampler returns a fixed value for every draw
type MockSampler struct {
	value float64
	draws int
}

func (m *MockSampler) Get1D() float64 {
	m.draws++
	return m.value
}

func (m *MockSampler) Get2D() core.Vec2 {
	return core.NewVec2(m.Get1D(), m.Get1D())
}

// SequenceSampler returns its values in order, wrapping around
type SequenceSampler struct {
	values []float64
	next   int
}

func (s *SequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *SequenceSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func createTestCamera(t *testing.T, width, height int) *geometry.Camera {
	t.Helper()
	config := geometry.CameraConfig{
		Eye:         core.NewVector3(0, 0, 0),
		LookAt:      core.NewVector3(0, 0, -1),
		Up:          core.NewVector3(0, 1, 0),
		VFov:        60,
		AspectRatio: float64(width) / float64(height),
	}
	camera := geometry.NewCamera(config)
	if err := camera.Setup(width, height); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return camera
}

// recordingTrace returns a trace function that records where each ray lands in image space
func recordingTrace(t *testing.T, camera *geometry.Camera, positions *[][2]float64, c core.Color) TraceFunc {
	return func(ray core.Ray) core.Color {
		x, y, ok := camera.Project(ray.At(1))
		if !ok {
			t.Fatalf("Ray %v does not project onto the image", ray)
		}
		*positions = append(*positions, [2]float64{x, y})
		return c
	}
}

func TestSamplePixel_SingleSampleUsesPixelCenter(t *testing.T) {
	camera := createTestCamera(t, 16, 16)
	sampler := &MockSampler{value: 0.9}

	var positions [][2]float64
	expected := core.NewColor(0.25, 0.5, 0.75)
	color := SamplePixel(camera, 3, 7, 1, sampler, recordingTrace(t, camera, &positions, expected))

	if color != expected {
		t.Errorf("Expected the single trace color %v, got %v", expected, color)
	}
	if len(positions) != 1 {
		t.Fatalf("Expected exactly one trace, got %d", len(positions))
	}
	if math.Abs(positions[0][0]-3.5) > 1e-9 || math.Abs(positions[0][1]-7.5) > 1e-9 {
		t.Errorf("Expected ray through pixel center (3.5, 7.5), got %v", positions[0])
	}
	if sampler.draws != 0 {
		t.Errorf("Expected no random draws for a single sample, got %d", sampler.draws)
	}
}

func TestSamplePixel_SingleSampleEqualsDirectTrace(t *testing.T) {
	camera := createTestCamera(t, 8, 8)
	trace := func(ray core.Ray) core.Color {
		return core.NewColor(ray.Direction.X, ray.Direction.Y, -ray.Direction.Z)
	}

	for _, p := range [][2]int{{0, 0}, {4, 2}, {7, 7}} {
		expected := trace(camera.GetRay(float64(p[0])+0.5, float64(p[1])+0.5))
		got := SamplePixel(camera, p[0], p[1], 1, core.NewSeededSampler(1), trace)
		if got != expected {
			t.Errorf("Pixel %v: expected %v, got %v", p, expected, got)
		}
	}
}

func TestSamplePixel_Stratified(t *testing.T) {
	tests := []struct {
		name   string
		jitter float64
		offset float64 // expected position inside each cell, as a fraction of the cell
	}{
		{"cell corners", 0.0, 0.0},
		{"cell centers", 0.5, 0.5},
		{"late in cell", 0.75, 0.75},
	}

	const samplesPerSide = 3
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := createTestCamera(t, 10, 10)
			sampler := &MockSampler{value: tt.jitter}

			var positions [][2]float64
			SamplePixel(camera, 2, 5, samplesPerSide, sampler, recordingTrace(t, camera, &positions, core.Black))

			if len(positions) != samplesPerSide*samplesPerSide {
				t.Fatalf("Expected %d samples, got %d", samplesPerSide*samplesPerSide, len(positions))
			}
			if sampler.draws != 2*samplesPerSide*samplesPerSide {
				t.Errorf("Expected two draws per sample, got %d", sampler.draws)
			}

			// Samples visit cells row by row
			k := 0
			for m := 0; m < samplesPerSide; m++ {
				for n := 0; n < samplesPerSide; n++ {
					expectedX := 2 + (float64(n)+tt.offset)/samplesPerSide
					expectedY := 5 + (float64(m)+tt.offset)/samplesPerSide
					if math.Abs(positions[k][0]-expectedX) > 1e-9 || math.Abs(positions[k][1]-expectedY) > 1e-9 {
						t.Errorf("Cell (%d,%d): expected (%f, %f), got %v", m, n, expectedX, expectedY, positions[k])
					}
					k++
				}
			}
		})
	}
}

func TestSamplePixel_RowJitterDrawnFirst(t *testing.T) {
	camera := createTestCamera(t, 10, 10)
	// Per cell: first draw jitters the row (y), second the column (x)
	sampler := &SequenceSampler{values: []float64{
		0.1, 0.9, // cell (0,0)
		0.2, 0.8, // cell (0,1)
		0.3, 0.7, // cell (1,0)
		0.4, 0.6, // cell (1,1)
	}}

	var positions [][2]float64
	SamplePixel(camera, 4, 6, 2, sampler, recordingTrace(t, camera, &positions, core.Black))

	expected := [][2]float64{
		{4 + 0.9/2, 6 + 0.1/2},
		{4 + (1+0.8)/2, 6 + 0.2/2},
		{4 + 0.7/2, 6 + (1+0.3)/2},
		{4 + (1+0.6)/2, 6 + (1+0.4)/2},
	}
	if len(positions) != len(expected) {
		t.Fatalf("Expected %d samples, got %d", len(expected), len(positions))
	}
	for k, e := range expected {
		if math.Abs(positions[k][0]-e[0]) > 1e-9 || math.Abs(positions[k][1]-e[1]) > 1e-9 {
			t.Errorf("Sample %d: expected %v, got %v", k, e, positions[k])
		}
	}
	if sampler.next != 8 {
		t.Errorf("Expected 8 draws, got %d", sampler.next)
	}
}

func TestSamplePixel_AveragesSamples(t *testing.T) {
	camera := createTestCamera(t, 4, 4)

	// Left half of the pixel is white, right half black
	trace := func(ray core.Ray) core.Color {
		x, _, _ := camera.Project(ray.At(1))
		if x < 1.5 {
			return core.NewColor(1, 1, 1)
		}
		return core.Black
	}

	color := SamplePixel(camera, 1, 1, 4, core.NewSeededSampler(7), trace)
	expected := core.NewColor(0.5, 0.5, 0.5)
	if !color.ApproxEqual(expected, 1e-12) {
		t.Errorf("Expected half coverage %v, got %v", expected, color)
	}
}
