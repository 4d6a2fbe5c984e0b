// Package compression opens reserved-list sources that may be compressed or archived.
package compression

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/colourfactory/internal/security"
)

// Format identifies how a source file is stored on disk.
type Format int

const (
	// FormatPlain is an uncompressed text file.
	FormatPlain Format = iota
	// FormatGzip is a single gzip-compressed file.
	FormatGzip
	// FormatXz is a single xz-compressed file.
	FormatXz
	// FormatBzip2 is a single bzip2-compressed file.
	FormatBzip2
	// FormatZip is a zip archive holding the list.
	FormatZip
)

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatXz:
		return "xz"
	case FormatBzip2:
		return "bzip2"
	case FormatZip:
		return "zip"
	default:
		return "plain"
	}
}

// DetectFormat picks the storage format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return FormatGzip
	case ".xz":
		return FormatXz
	case ".bz2":
		return FormatBzip2
	case ".zip":
		return FormatZip
	default:
		return FormatPlain
	}
}

// Open opens path for reading, transparently decompressing it.
// The returned reader is limited to security.MaxSourceBytes of decompressed data.
// Errors from opening the file itself are returned as is, so callers can test
// them with errors.Is(err, fs.ErrNotExist).
func Open(path string) (io.ReadCloser, error) {
	format := DetectFormat(path)
	if format == FormatZip {
		return openFromZip(path, "definition.csv")
	}

	file, err := os.Open(path) // #nosec G304 - User-specified reserved list, intended to be read
	if err != nil {
		return nil, err
	}

	var r io.Reader
	closers := []io.Closer{file}

	switch format {
	case FormatGzip:
		gzr, err := newGzipReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		r = gzr
		closers = append([]io.Closer{gzr}, closers...)
	case FormatXz:
		xzr, err := newXzReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		r = xzr
	case FormatBzip2:
		r = newBzip2Reader(file)
	default:
		r = file
	}

	return &source{
		Reader:  security.NewLimitedReader(r, security.MaxSourceBytes),
		closers: closers,
	}, nil
}

// source ties a (decompressing) reader to the handles that must be released with it.
type source struct {
	io.Reader
	closers []io.Closer
}

// Close releases every handle and returns the first error.
func (s *source) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = fmt.Errorf("failed to close source: %w", err)
		}
	}
	return first
}
