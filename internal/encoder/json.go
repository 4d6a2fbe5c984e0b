package encoder

import (
	"encoding/json"
	"io"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/colourfactory/internal/colour"
)

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex      string     `json:"hex"`
	Packed   string     `json:"packed"`
	RGB      colour.RGB `json:"rgb"`
	Contrast int        `json:"contrast"`
}

// Metadata describes the run that produced a palette.
type Metadata struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Count       int       `json:"count"`
	MinContrast int       `json:"min_contrast"`
	Clamp       string    `json:"clamp"`
	Sorted      bool      `json:"sorted"`
	Reserved    int       `json:"reserved"`
}

// Document is the JSON export of a palette.
type Document struct {
	Metadata
	Summary colour.Summary `json:"summary"`
	Colors  []ColorJSON    `json:"colors"`
}

// NewDocument builds the JSON export for p.
func NewDocument(p *colour.Palette, meta Metadata) Document {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		cf, _ := colorful.MakeColor(c.RGBA())
		colors[i] = ColorJSON{
			Hex:      cf.Hex(),
			Packed:   c.PackedHex(),
			RGB:      c,
			Contrast: c.Contrast(),
		}
	}

	return Document{
		Metadata: meta,
		Summary:  colour.Summarise(p),
		Colors:   colors,
	}
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
