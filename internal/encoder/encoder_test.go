package encoder

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/jmylchreest/colourfactory/internal/colour"
)

func samplePalette(n int) *colour.Palette {
	p := colour.NewPalette(nil)
	for i := 0; i < n; i++ {
		p.Append(colour.RGB{R: uint8(10 * (i + 1)), G: uint8(i), B: 3})
	}
	return p
}

func TestWriteText(t *testing.T) {
	p := colour.NewPalette([]colour.RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 0, G: 0, B: 0},
	})

	var buf bytes.Buffer
	if err := WriteText(&buf, p); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}

	want := "(R, G, B)\n" +
		"(255, 0, 0) ff0000\n" +
		"(0, 255, 0) ff00\n" +
		"(0, 0, 255) ff\n" +
		"(0, 0, 0) 0\n"
	if buf.String() != want {
		t.Errorf("WriteText output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, colour.NewPalette(nil)); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}
	if buf.String() != TextHeader+"\n" {
		t.Errorf("output = %q, want header only", buf.String())
	}
}

func TestSide(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4}, {16, 4}, {17, 5}, {50000, 224},
	}
	for _, tt := range tests {
		if got := Side(tt.n); got != tt.want {
			t.Errorf("Side(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPixelGrid(t *testing.T) {
	p := samplePalette(10)
	img := PixelGrid(p)

	side := Side(10)
	if side != 4 {
		t.Fatalf("Side(10) = %d, want 4", side)
	}
	if b := img.Bounds(); b.Dx() != side || b.Dy() != side {
		t.Fatalf("bounds = %v, want %dx%d", b, side, side)
	}
	if len(img.Pix) != side*side*4 {
		t.Fatalf("pixel buffer holds %d bytes, want %d", len(img.Pix), side*side*4)
	}

	white := 0
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if img.RGBAAt(x, y) == Fill {
				white++
			}
		}
	}
	if white != side*side-10 {
		t.Errorf("white pixels = %d, want %d", white, side*side-10)
	}

	// First colour sits bottom-left, the fifth starts the second column.
	if got := img.RGBAAt(0, 3); got != p.Colors[0].RGBA() {
		t.Errorf("pixel (0,3) = %v, want %v", got, p.Colors[0].RGBA())
	}
	if got := img.RGBAAt(0, 0); got != p.Colors[3].RGBA() {
		t.Errorf("pixel (0,0) = %v, want %v", got, p.Colors[3].RGBA())
	}
	if got := img.RGBAAt(1, 3); got != p.Colors[4].RGBA() {
		t.Errorf("pixel (1,3) = %v, want %v", got, p.Colors[4].RGBA())
	}
	if !img.Opaque() {
		t.Error("Expected an opaque grid")
	}
}

func TestWriteBMP(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		side     int
		fileSize int
	}{
		// 4 pixels * 3 bytes = 12, already aligned.
		{name: "aligned rows", n: 10, side: 4, fileSize: 54 + 4*12},
		// 3 pixels * 3 bytes = 9, padded to 12.
		{name: "padded rows", n: 5, side: 3, fileSize: 54 + 3*12},
		{name: "single colour", n: 1, side: 1, fileSize: 54 + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePalette(tt.n)

			var buf bytes.Buffer
			if err := WriteBMP(&buf, p); err != nil {
				t.Fatalf("WriteBMP returned error: %v", err)
			}
			data := buf.Bytes()

			if len(data) != tt.fileSize {
				t.Fatalf("file is %d bytes, want %d", len(data), tt.fileSize)
			}
			if string(data[0:2]) != "BM" {
				t.Errorf("signature = %q, want BM", data[0:2])
			}
			if got := binary.LittleEndian.Uint32(data[2:6]); int(got) != tt.fileSize {
				t.Errorf("header file size = %d, want %d", got, tt.fileSize)
			}
			if got := binary.LittleEndian.Uint32(data[10:14]); got != 54 {
				t.Errorf("pixel offset = %d, want 54", got)
			}
			if got := binary.LittleEndian.Uint32(data[14:18]); got != 40 {
				t.Errorf("DIB header size = %d, want 40", got)
			}
			if got := binary.LittleEndian.Uint32(data[18:22]); int(got) != tt.side {
				t.Errorf("width = %d, want %d", got, tt.side)
			}
			if got := binary.LittleEndian.Uint32(data[22:26]); int(got) != tt.side {
				t.Errorf("height = %d, want %d", got, tt.side)
			}
			if got := binary.LittleEndian.Uint16(data[28:30]); got != 24 {
				t.Errorf("bits per pixel = %d, want 24", got)
			}
			if got := binary.LittleEndian.Uint32(data[30:34]); got != 0 {
				t.Errorf("compression = %d, want 0", got)
			}

			// Bottom row is stored first, blue-green-red: the first colour opens the pixel data.
			first := p.Colors[0]
			if data[54] != first.B || data[55] != first.G || data[56] != first.R {
				t.Errorf("first stored pixel = %v, want BGR of %v", data[54:57], first)
			}

			decoded, err := bmp.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("bmp.Decode returned error: %v", err)
			}
			assertSameImage(t, decoded, PixelGrid(p))
		})
	}
}

func assertSameImage(t *testing.T, got image.Image, want *image.RGBA) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gr, gg, gb, _ := got.At(x, y).RGBA()
			wr, wg, wb, _ := want.At(x, y).RGBA()
			if gr != wr || gg != wg || gb != wb {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestWriteSwatch(t *testing.T) {
	p := samplePalette(5)

	var buf bytes.Buffer
	if err := WriteSwatch(&buf, p, 4); err != nil {
		t.Fatalf("WriteSwatch returned error: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode returned error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Fatalf("bounds = %v, want 12x12", b)
	}

	// Every pixel of the bottom-left block is the first colour.
	want := p.Colors[0]
	for y := 8; y < 12; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				t.Fatalf("pixel (%d,%d) is not %v", x, y, want)
			}
		}
	}

	for _, scale := range []int{0, MaxSwatchScale + 1} {
		if err := WriteSwatch(io.Discard, p, scale); err == nil {
			t.Errorf("Expected error for scale %d", scale)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	p := colour.NewPalette([]colour.RGB{{R: 0, G: 255, B: 0}, {R: 1, G: 2, B: 3}})
	meta := Metadata{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Count:       2,
		MinContrast: 10,
		Clamp:       "0,0,0,255,255,255",
		Reserved:    7,
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewDocument(p, meta)); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.RunID != "run-1" || doc.Reserved != 7 || doc.Clamp != meta.Clamp {
		t.Errorf("metadata not preserved: %+v", doc.Metadata)
	}
	if len(doc.Colors) != 2 {
		t.Fatalf("colors = %d, want 2", len(doc.Colors))
	}
	if doc.Colors[0].Hex != "#00ff00" || doc.Colors[0].Packed != "ff00" {
		t.Errorf("first colour = %+v", doc.Colors[0])
	}
	if doc.Colors[1].Hex != "#010203" || doc.Colors[1].Contrast != 1 {
		t.Errorf("second colour = %+v", doc.Colors[1])
	}
	if doc.Summary.Count != 2 || doc.Summary.MaxContrast != 149 {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if !strings.Contains(buf.String(), "\"run_id\": \"run-1\"") {
		t.Errorf("expected flattened run_id field, got:\n%s", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "unreserved.txt")

	err := WriteFile(path, func(w io.Writer) error {
		return WriteText(w, samplePalette(2))
	})
	if err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), TextHeader) {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("writer fails", func(t *testing.T) {
		boom := errors.New("boom")
		err := WriteFile(filepath.Join(dir, "out.txt"), func(io.Writer) error { return boom })
		if !errors.Is(err, ErrEncoding) || !errors.Is(err, boom) {
			t.Errorf("Expected ErrEncoding wrapping the cause, got: %v", err)
		}
	})

	t.Run("path is a directory", func(t *testing.T) {
		err := WriteFile(dir, func(io.Writer) error { return nil })
		if !errors.Is(err, ErrEncoding) {
			t.Errorf("Expected ErrEncoding, got: %v", err)
		}
	})
}
