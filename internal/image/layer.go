// Package image provides graph image loading and pixel access.
package image

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"plot-digitizer/pkg/colorutil"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Layer holds a decoded graph image.
type Layer struct {
	Path  string      // Original file path
	Image image.Image // Loaded image data
}

// Load loads an image from the specified path.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Layer{Path: path, Image: img}, nil
}

// FromImage wraps an already-decoded image.
func FromImage(img image.Image) *Layer {
	return &Layer{Image: img}
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// RGBAt returns the normalized color at (x, y). The second result is
// false when the coordinates fall outside the image or no image is
// loaded.
func (l *Layer) RGBAt(x, y int) (colorutil.RGB, bool) {
	if l == nil || l.Image == nil {
		return colorutil.RGB{}, false
	}
	bounds := l.Image.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return colorutil.RGB{}, false
	}
	return colorutil.FromColor(l.Image.At(x, y)), true
}

// SupportedFormats returns the list of supported image file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
