package compression

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

const sample = "1;10;20;30;land;false;plains;1\n2;40;50;60;sea;true;ocean;0\n"

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()
	w := gzip.NewWriter(f)
	if _, err := io.WriteString(w, content); err != nil {
		t.Fatalf("Failed to write gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
}

func writeXz(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("Failed to create xz writer: %v", err)
	}
	if _, err := io.WriteString(w, content); err != nil {
		t.Fatalf("Failed to write xz: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close xz: %v", err)
	}
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range entries {
		ew, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create zip entry: %v", err)
		}
		if _, err := io.WriteString(ew, content); err != nil {
			t.Fatalf("Failed to write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s) returned error: %v", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	return string(data)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"definition.csv", FormatPlain},
		{"definition.csv.gz", FormatGzip},
		{"definition.csv.XZ", FormatXz},
		{"definition.csv.bz2", FormatBzip2},
		{"mod.zip", FormatZip},
		{"noext", FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectFormat(tt.path); got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "definition.csv")
	if err := os.WriteFile(plain, []byte(sample), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	gz := filepath.Join(dir, "definition.csv.gz")
	writeGzip(t, gz, sample)
	xzPath := filepath.Join(dir, "definition.csv.xz")
	writeXz(t, xzPath, sample)
	zipPath := filepath.Join(dir, "mod.zip")
	writeZip(t, zipPath, map[string]string{
		"descriptor.mod":     "name=test",
		"map/adjacency.csv":  "From;To\n",
		"map/definition.csv": sample,
	})

	for _, path := range []string{plain, gz, xzPath, zipPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			if got := readAll(t, path); got != sample {
				t.Errorf("content = %q, want %q", got, sample)
			}
		})
	}
}

func TestOpenZipFallsBackToCSV(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "mod.zip")
	writeZip(t, zipPath, map[string]string{
		"readme.txt":    "hello",
		"map/provs.csv": sample,
	})

	if got := readAll(t, zipPath); got != sample {
		t.Errorf("content = %q, want %q", got, sample)
	}
}

func TestOpenZipWithoutCSV(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "mod.zip")
	writeZip(t, zipPath, map[string]string{"readme.txt": "hello"})

	_, err := Open(zipPath)
	if err == nil {
		t.Fatal("Expected error for archive without csv entries")
	}
	if !strings.Contains(err.Error(), "readme.txt") {
		t.Errorf("Expected error to list archive entries, got: %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"definition.csv", "definition.csv.xz", "mod.zip"} {
		t.Run(name, func(t *testing.T) {
			_, err := Open(filepath.Join(dir, name))
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Expected fs.ErrNotExist, got: %v", err)
			}
		})
	}
}

func TestOpenCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "definition.csv.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("Expected error for corrupt gzip data")
	}
}
