package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageData contains a decoded image in row-major order, top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color // Channels scaled to [0, 1]
	RGB8   []uint8      // Raw 8-bit channels, 3 per pixel
}

// At returns the 8-bit channels of pixel (x, y)
func (d *ImageData) At(x, y int) [3]uint8 {
	i := (y*d.Width + x) * 3
	return [3]uint8{d.RGB8[i], d.RGB8[i+1], d.RGB8[i+2]}
}

// LoadImage loads a PNG or JPEG image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := &ImageData{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
		RGB8:   make([]uint8, width*height*3),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			i := y*width + x
			data.Pixels[i] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
			data.RGB8[i*3] = uint8(r >> 8)
			data.RGB8[i*3+1] = uint8(g >> 8)
			data.RGB8[i*3+2] = uint8(b >> 8)
		}
	}

	return data, nil
}
