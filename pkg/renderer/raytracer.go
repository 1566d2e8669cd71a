package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidConfig is returned for render settings that cannot be used
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig contains settings for parallel rendering
type RenderConfig struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of tiles rendered concurrently (0 = auto-detect)
	Seed       int64 // Base seed; tile i samples with Seed + i
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
	}
}

// Validate checks the render settings
func (c RenderConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d must be positive", ErrInvalidConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene tile by tile using an integrator
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. The scene must not be modified while rendering.
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      s,
		integrator: integ,
		config:     config,
		logger:     logger,
	}, nil
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render renders the whole image. The result depends only on the scene and
// seed, not on the number of workers. Cancelling ctx stops scheduling tiles
// and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	sampling := rt.scene.SamplingConfig

	camera, err := rt.scene.NewCamera()
	if err != nil {
		return nil, RenderStats{}, err
	}

	img := image.NewRGBA(image.Rect(0, 0, sampling.Width, sampling.Height))
	tiles := NewTileGrid(sampling.Width, sampling.Height, rt.config.TileSize, rt.config.Seed)

	rt.logger.Printf("Rendering %s: %dx%d, %d samples/pixel, depth %d, %d tiles on %d workers\n",
		rt.scene.Name, sampling.Width, sampling.Height,
		sampling.SamplesPerSide*sampling.SamplesPerSide, sampling.MaxDepth,
		len(tiles), rt.config.NumWorkers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.config.NumWorkers)

	var completed atomic.Int64
	progressStep := max(1, len(tiles)/10)

	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rt.renderTile(camera, tile, img)

			done := completed.Add(1)
			if done%int64(progressStep) == 0 || done == int64(len(tiles)) {
				rt.logger.Printf("  %d/%d tiles (%.0f%%)\n", done, len(tiles), 100*float64(done)/float64(len(tiles)))
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		rt.logger.Printf("Rendering cancelled after %d/%d tiles\n", completed.Load(), len(tiles))
		return nil, RenderStats{}, err
	}

	samplesPerPixel := sampling.SamplesPerSide * sampling.SamplesPerSide
	stats := RenderStats{
		TotalPixels:     sampling.Width * sampling.Height,
		TotalSamples:    sampling.Width * sampling.Height * samplesPerPixel,
		SamplesPerPixel: samplesPerPixel,
		TotalTiles:      len(tiles),
		NumWorkers:      rt.config.NumWorkers,
		Duration:        time.Since(startTime),
	}
	rt.logger.Printf("Render completed in %v (%.0f samples/sec)\n", stats.Duration, stats.SamplesPerSecond())

	return img, stats, nil
}

// renderTile renders pixels within the tile bounds directly into img.
// Tiles never overlap, so concurrent tiles write disjoint pixels.
func (rt *Raytracer) renderTile(camera *geometry.Camera, tile *Tile, img *image.RGBA) {
	sampling := rt.scene.SamplingConfig
	trace := func(ray core.Ray) core.Color {
		return rt.integrator.RayColor(ray, rt.scene, sampling.MaxDepth)
	}

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			c := SamplePixel(camera, i, j, sampling.SamplesPerSide, tile.Sampler, trace)
			img.SetRGBA(i, j, ToRGBA(c))
		}
	}
}
