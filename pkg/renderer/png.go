package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// SavePNG writes img to path. The image is encoded into a temporary file in
// the same directory and renamed into place, so a failed write never leaves
// a partial file at path.
func SavePNG(path string, img image.Image) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".render-*.png")
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = png.Encode(tmp, img); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}
	// CreateTemp opens the file 0600; rendered images are world-readable
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("error setting permissions on %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("error flushing %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("error moving image into place: %w", err)
	}
	return nil
}
