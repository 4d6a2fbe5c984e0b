// Package image loads map bitmaps whose colours are already in use, so they
// can be reserved alongside the definition list.
package image

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp" // Register BMP format

	"github.com/jmylchreest/colourfactory/internal/colour"
	"github.com/jmylchreest/colourfactory/internal/security"
)

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: BMP, PNG.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if err := ValidateImagePath(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(security.NewLimitedReader(file, security.MaxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// ValidateImagePath checks that path is an existing file with a supported
// image extension.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s: %w", path, err)
		}
		return fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !isImageFile(path) {
		return fmt.Errorf("unsupported image type %q (supported: %s)",
			filepath.Ext(path), strings.Join(SupportedImageExtensions(), ", "))
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".bmp", ".png"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// Colours returns the distinct colours of img in row-major scan order.
// Fully transparent pixels are skipped; any other alpha is ignored.
func Colours(img image.Image) []colour.RGB {
	bounds := img.Bounds()
	seen := make(map[colour.RGB]struct{})
	var out []colour.RGB

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			rgb := colour.RGB{R: c.R, G: c.G, B: c.B}
			if _, ok := seen[rgb]; ok {
				continue
			}
			seen[rgb] = struct{}{}
			out = append(out, rgb)
		}
	}

	return out
}
