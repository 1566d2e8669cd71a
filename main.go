package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// sceneDepth is the -depth value that keeps the scene's recursion depth
const sceneDepth = -1

// Config holds the command line options
type Config struct {
	SceneType      string
	Width          int
	Height         int
	SamplesPerSide int
	MaxDepth       int // sceneDepth keeps the scene's depth
	NumWorkers     int
	Seed           int64
	OutputPath     string
}

func main() {
	config := Config{MaxDepth: sceneDepth}
	flag.StringVar(&config.SceneType, "scene", "cornell", "Built-in scene name, scene file name in scenes/, or path to a .json scene")
	flag.IntVar(&config.Width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&config.SamplesPerSide, "samples", 0, "Stratified samples per pixel side (0 = scene default)")
	flag.IntVar(&config.MaxDepth, "depth", sceneDepth, "Reflection/refraction depth, 0 for direct lighting only (-1 = scene default)")
	flag.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&config.Seed, "seed", renderer.DefaultRenderConfig().Seed, "Base random seed for sample jitter")
	flag.StringVar(&config.OutputPath, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if *list {
		if err := listScenes(); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Run with -list to see the available scenes.")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

func listScenes() error {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	fmt.Println("Available scenes:")
	for _, info := range scenes {
		if info.Type == "file" {
			fmt.Printf("  %-10s %s\n", info.ID, info.FilePath)
			continue
		}
		fmt.Printf("  %-10s %s\n", info.ID, info.Description)
	}
	return nil
}

func run(config Config) error {
	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(config.SceneType)
	if err != nil {
		return err
	}
	applyOverrides(selectedScene, config)

	spheres, triangles := selectedScene.GetPrimitiveCount()
	fmt.Printf("Scene %s: %d spheres, %d triangles, %d lights\n",
		selectedScene.Name, spheres, triangles, len(selectedScene.Lights))

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = config.NumWorkers
	renderConfig.Seed = config.Seed

	raytracer, err := renderer.NewRaytracer(selectedScene, integrator.NewWhittedIntegrator(), renderConfig, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Samples per pixel: %d, average luminance %.3f\n",
		stats.SamplesPerPixel, renderer.CalculateAverageLuminance(img))

	filename, err := outputPath(config.OutputPath, selectedScene.Name, time.Now())
	if err != nil {
		return err
	}
	if err := renderer.SavePNG(filename, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a scene by name or file path
func createScene(sceneType string) (*scene.Scene, error) {
	s, err := scene.Create(sceneType)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	return s, nil
}

// applyOverrides replaces the scene's recommended sampling with the flags
// that were given. Depth 0 is a real setting, so only sceneDepth is ignored.
func applyOverrides(s *scene.Scene, config Config) {
	s.SamplingConfig = s.SamplingConfig.Merge(scene.SamplingConfig{
		Width:          config.Width,
		Height:         config.Height,
		SamplesPerSide: config.SamplesPerSide,
	})
	if config.MaxDepth != sceneDepth {
		s.SamplingConfig.MaxDepth = config.MaxDepth
	}
}

// outputPath returns the explicit path, or a timestamped file under
// output/<scene>/, creating that directory
func outputPath(explicit, sceneName string, now time.Time) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	dirName := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, sceneName)
	if dirName == "" {
		dirName = "scene"
	}

	outputDir := filepath.Join("output", dirName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	timestamp := now.Format("20060102_150405")
	return filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp)), nil
}
