package renderer

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MockIntegrator returns a fixed color and counts calls
type MockIntegrator struct {
	color core.Color
	depth atomic.Int64 // last depth seen
	calls atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, s *scene.Scene, depth int) core.Color {
	m.calls.Add(1)
	m.depth.Store(int64(depth))
	return m.color
}

func createSmallScene(name string, width, height, samplesPerSide, maxDepth int) *scene.Scene {
	s, err := scene.Create(name)
	if err != nil {
		panic(err)
	}
	s.SamplingConfig = scene.SamplingConfig{
		Width:          width,
		Height:         height,
		SamplesPerSide: samplesPerSide,
		MaxDepth:       maxDepth,
	}
	return s
}

func newTestRaytracer(t *testing.T, s *scene.Scene, integ integrator.Integrator, config RenderConfig) *Raytracer {
	t.Helper()
	rt, err := NewRaytracer(s, integ, config, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	return rt
}

func TestRenderConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config RenderConfig
		valid  bool
	}{
		{"default", DefaultRenderConfig(), true},
		{"explicit workers", RenderConfig{TileSize: 8, NumWorkers: 3}, true},
		{"zero tile size", RenderConfig{TileSize: 0}, false},
		{"negative workers", RenderConfig{TileSize: 8, NumWorkers: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(scene.New("test"), &MockIntegrator{}, tt.config, nil)
			if tt.valid && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewRaytracer_AutoDetectsWorkers(t *testing.T) {
	rt := newTestRaytracer(t, scene.New("test"), &MockIntegrator{}, DefaultRenderConfig())
	if rt.Config().NumWorkers < 1 {
		t.Errorf("Expected at least one worker, got %d", rt.Config().NumWorkers)
	}
}

func TestRaytracer_RenderWithMockIntegrator(t *testing.T) {
	s := createSmallScene("sphere", 20, 12, 2, 5)
	mock := &MockIntegrator{color: core.NewColor(0.5, 1, 0)}
	rt := newTestRaytracer(t, s, mock, RenderConfig{TileSize: 7, NumWorkers: 3, Seed: 1})

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 12 {
		t.Fatalf("Expected 20x12 image, got %v", img.Bounds())
	}
	expected := ToRGBA(mock.color)
	for y := 0; y < 12; y++ {
		for x := 0; x < 20; x++ {
			if got := img.RGBAAt(x, y); got != expected {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}

	if mock.calls.Load() != 20*12*4 {
		t.Errorf("Expected %d integrator calls, got %d", 20*12*4, mock.calls.Load())
	}
	if mock.depth.Load() != 5 {
		t.Errorf("Expected integrator depth 5, got %d", mock.depth.Load())
	}

	if stats.TotalPixels != 240 || stats.TotalSamples != 960 || stats.SamplesPerPixel != 4 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.TotalTiles != 6 || stats.NumWorkers != 3 {
		t.Errorf("Expected 6 tiles on 3 workers, got %+v", stats)
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	s := createSmallScene("cornell", 24, 24, 2, 2)

	var reference []uint8
	for _, workers := range []int{1, 2, 5} {
		rt := newTestRaytracer(t, s, integrator.NewWhittedIntegrator(), RenderConfig{TileSize: 8, NumWorkers: workers, Seed: 99})
		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		if reference == nil {
			reference = img.Pix
			continue
		}
		if !bytes.Equal(reference, img.Pix) {
			t.Errorf("Image rendered with %d workers differs from single worker render", workers)
		}
	}
}

func TestRaytracer_SingleGreenSphere(t *testing.T) {
	for _, depth := range []int{0, 3} {
		s := createSmallScene("sphere", 64, 64, 1, depth)
		rt := newTestRaytracer(t, s, integrator.NewWhittedIntegrator(), RenderConfig{TileSize: 16, NumWorkers: 2, Seed: 42})

		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Depth %d: render failed: %v", depth, err)
		}

		camera, err := s.NewCamera()
		if err != nil {
			t.Fatal(err)
		}
		x, y, ok := camera.Project(core.NewVector3(0, 3, -20))
		if !ok {
			t.Fatal("Sphere center is behind the camera")
		}

		center := img.RGBAAt(int(x), int(y))
		if center.G == 0 || center.G <= center.R || center.G <= center.B {
			t.Errorf("Depth %d: expected a lit green pixel at the sphere center, got %v", depth, center)
		}

		for _, corner := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
			if c := img.RGBAAt(corner[0], corner[1]); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
				t.Errorf("Depth %d: expected opaque black background at %v, got %v", depth, corner, c)
			}
		}
	}
}

func TestRaytracer_SingleSampleMatchesDirectTrace(t *testing.T) {
	s := createSmallScene("cornell", 16, 16, 1, 3)
	whitted := integrator.NewWhittedIntegrator()
	rt := newTestRaytracer(t, s, whitted, RenderConfig{TileSize: 5, NumWorkers: 4})

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	camera, err := s.NewCamera()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			ray := camera.GetRay(float64(x)+0.5, float64(y)+0.5)
			expected := ToRGBA(whitted.RayColor(ray, s, 3))
			if got := img.RGBAAt(x, y); got != expected {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestRaytracer_CancelledContext(t *testing.T) {
	s := createSmallScene("sphere", 32, 32, 1, 1)
	mock := &MockIntegrator{}
	rt := newTestRaytracer(t, s, mock, RenderConfig{TileSize: 4, NumWorkers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
	if mock.calls.Load() != 0 {
		t.Errorf("Expected no tiles rendered, got %d integrator calls", mock.calls.Load())
	}
}

func TestRaytracer_InvalidSampling(t *testing.T) {
	s := createSmallScene("sphere", 0, 32, 1, 1)
	rt := newTestRaytracer(t, s, &MockIntegrator{}, DefaultRenderConfig())

	if _, _, err := rt.Render(context.Background()); !errors.Is(err, scene.ErrInvalidSampling) {
		t.Errorf("Expected ErrInvalidSampling, got %v", err)
	}
}
