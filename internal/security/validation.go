// Package security provides input limits and path validation for colourfactory.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxSourceBytes caps how much data is read from a (possibly compressed) reserved list.
const MaxSourceBytes = 100 * 1024 * 1024

// ErrSizeLimit is returned once a LimitedReader has handed out its whole budget.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of reporting EOF, so a truncated
// list is never mistaken for a complete one.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Probe so an input of exactly the limit still ends cleanly.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n == 0 && errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// ValidateOutputName checks that an output file name stays inside its directory.
func ValidateOutputName(name string) error {
	if name == "" {
		return fmt.Errorf("empty output file name")
	}

	if filepath.IsAbs(name) {
		return fmt.Errorf("output file name must be relative to the output directory: %s", name)
	}

	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output file name would escape the output directory: %s", name)
	}

	return nil
}

// SafeUint8 safely converts an integer to uint8 with bounds checking.
// Values outside 0-255 are clamped to the valid range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}
