package compression

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/colourfactory/internal/security"
)

// openFromZip opens the best matching list inside a zip archive.
// An entry named targetFile wins; otherwise the first .csv entry is used.
func openFromZip(path, targetFile string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		file     *zip.File
		priority int
	}

	selectFile := func(name string) int {
		if strings.EqualFold(filepath.Base(name), targetFile) {
			return 100
		}
		if strings.EqualFold(filepath.Ext(name), ".csv") {
			return 10
		}
		return 0
	}

	var best *candidate
	var foundFiles []string

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		foundFiles = append(foundFiles, f.Name)
		priority := selectFile(f.Name)
		if priority == 0 {
			continue
		}

		if best == nil || priority > best.priority {
			best = &candidate{file: f, priority: priority}
			if priority >= 100 {
				break
			}
		}
	}

	if best == nil {
		zr.Close()
		return nil, fmt.Errorf("no %s or .csv entry in zip archive (found: %s)", targetFile, strings.Join(foundFiles, ", "))
	}

	rc, err := best.file.Open()
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("failed to open %s in zip archive: %w", best.file.Name, err)
	}

	return &source{
		Reader:  security.NewLimitedReader(rc, security.MaxSourceBytes),
		closers: []io.Closer{rc, zr},
	}, nil
}
