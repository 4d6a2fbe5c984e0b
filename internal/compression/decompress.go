package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// newGzipReader wraps r in a gzip decompressor.
func newGzipReader(r io.Reader) (*gzip.Reader, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gzr, nil
}

// newXzReader wraps r in an xz decompressor.
func newXzReader(r io.Reader) (*xz.Reader, error) {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return xzr, nil
}

// newBzip2Reader wraps r in a bzip2 decompressor.
func newBzip2Reader(r io.Reader) io.Reader {
	return bzip2.NewReader(r)
}
