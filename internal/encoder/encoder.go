// Package encoder writes generated palettes as a text listing, a BMP pixel
// grid, a JSON document and an enlarged PNG swatch.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrEncoding is returned when an output file cannot be created or written.
var ErrEncoding = errors.New("failed to write output")

// WriteFile creates path (and its directory) and hands the file to write.
// The file is closed on every path; a failed close is reported like a failed write.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Output directory chosen by the user
			return fmt.Errorf("%w: %s: %w", ErrEncoding, path, err)
		}
	}

	f, err := os.Create(path) // #nosec G304 - Output path chosen by the user
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncoding, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrEncoding, path, closeErr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncoding, path, err)
	}
	return nil
}
