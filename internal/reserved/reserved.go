// Package reserved loads the list of colours that generation must avoid.
//
// The list is a semicolon-delimited province table (a Clausewitz
// definition.csv): each row carries an identifier followed by the red, green
// and blue channel values. Only fields two to four are read.
package reserved

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/colourfactory/internal/colour"
	"github.com/jmylchreest/colourfactory/internal/compression"
)

const (
	// MinFields is the number of fields a row needs: id, red, green, blue.
	MinFields = 4

	maxLineBytes = 1024 * 1024
)

var (
	// ErrSourceUnavailable is returned when the reserved list cannot be opened.
	ErrSourceUnavailable = errors.New("reserved list unavailable")

	// ErrMalformedRecord is returned when a row lacks the red, green and blue fields.
	ErrMalformedRecord = errors.New("malformed reserved record")
)

// RecordError describes a row that could not be parsed.
type RecordError struct {
	Line   int
	Fields int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %v: %v", e.Line, ErrMalformedRecord, e.Err)
	}
	return fmt.Sprintf("line %d: %v: expected at least %d fields, got %d", e.Line, ErrMalformedRecord, MinFields, e.Fields)
}

// Unwrap lets errors.Is match ErrMalformedRecord.
func (e *RecordError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRecord, e.Err}
	}
	return []error{ErrMalformedRecord}
}

// Set is a read-only lookup of reserved colour keys.
type Set struct {
	keys map[string]struct{}
}

// Empty returns a set with no reserved colours.
func Empty() *Set {
	return &Set{keys: make(map[string]struct{})}
}

// Add records a raw key.
func (s *Set) Add(key string) {
	s.keys[key] = struct{}{}
}

// AddColours reserves each colour and returns how many keys were new.
func (s *Set) AddColours(colours []colour.RGB) int {
	before := len(s.keys)
	for _, c := range colours {
		s.Add(c.Key())
	}
	return len(s.keys) - before
}

// Contains reports whether key is reserved.
func (s *Set) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// ContainsRGB reports whether the colour's key is reserved.
func (s *Set) ContainsRGB(c colour.RGB) bool {
	return s.Contains(c.Key())
}

// Len returns the number of distinct keys.
func (s *Set) Len() int {
	return len(s.keys)
}

// Load opens the reserved list at path (optionally compressed) and parses it.
// Open failures wrap ErrSourceUnavailable together with the cause, so callers
// can separate a missing file (fs.ErrNotExist) from other filesystem errors.
func Load(path string) (*Set, error) {
	rc, err := compression.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	defer rc.Close()

	set, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return set, nil
}

// Parse reads semicolon-delimited rows and keys each by its red, green and
// blue field strings concatenated. Blank rows are skipped. Each line is one
// row; quotes carry no meaning, so a stray quote cannot swallow later rows.
func Parse(r io.Reader) (*Set, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	set := Empty()
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, ";")
		if len(fields) < MinFields {
			return nil, &RecordError{Line: line, Fields: len(fields)}
		}

		set.Add(colour.Key(
			strings.TrimSpace(fields[1]),
			strings.TrimSpace(fields[2]),
			strings.TrimSpace(fields[3]),
		))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &RecordError{Line: line + 1, Err: err}
		}
		return nil, fmt.Errorf("failed to read reserved list after line %d: %w", line, err)
	}

	return set, nil
}
