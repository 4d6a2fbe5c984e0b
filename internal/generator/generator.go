// Package generator produces unreserved colours by walking RGB space with an odometer.
package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourfactory/internal/colour"
)

const (
	// MaxAttempts bounds a generation run to the size of the 24-bit colour space.
	MaxAttempts = 1 << 24

	// DefaultMaxCount is the default cap on colours per request.
	DefaultMaxCount = 50000

	// MaxContrast is the largest accepted minimum contrast.
	MaxContrast = 255
)

// ErrExhausted is returned when the walk cannot produce the requested number of colours.
var ErrExhausted = errors.New("could not generate the requested number of colours")

// ExhaustedError reports how far a failed run got.
type ExhaustedError struct {
	Requested int
	Generated int
	Attempts  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: generated %d of %d after %d attempts", ErrExhausted, e.Generated, e.Requested, e.Attempts)
}

// Unwrap lets errors.Is match ErrExhausted.
func (e *ExhaustedError) Unwrap() error {
	return ErrExhausted
}

// Clamp bounds each channel to an inclusive [min, max] range.
type Clamp struct {
	MinR, MinG, MinB uint8
	MaxR, MaxG, MaxB uint8
}

// FullClamp covers the whole RGB cube.
func FullClamp() Clamp {
	return Clamp{MaxR: 255, MaxG: 255, MaxB: 255}
}

// Validate checks that every minimum is at or below its maximum.
func (c Clamp) Validate() error {
	if c.MinR > c.MaxR {
		return fmt.Errorf("red minimum %d exceeds maximum %d", c.MinR, c.MaxR)
	}
	if c.MinG > c.MaxG {
		return fmt.Errorf("green minimum %d exceeds maximum %d", c.MinG, c.MaxG)
	}
	if c.MinB > c.MaxB {
		return fmt.Errorf("blue minimum %d exceeds maximum %d", c.MinB, c.MaxB)
	}
	return nil
}

// String formats the clamp as "minR,minG,minB,maxR,maxG,maxB".
func (c Clamp) String() string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", c.MinR, c.MinG, c.MinB, c.MaxR, c.MaxG, c.MaxB)
}

// ParseClamp parses six comma-separated channel bounds in the order
// minR,minG,minB,maxR,maxG,maxB.
func ParseClamp(s string) (Clamp, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return Clamp{}, fmt.Errorf("clamp needs 6 comma-separated values, got %d", len(parts))
	}

	var vals [6]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Clamp{}, fmt.Errorf("clamp value %q must be between 0 and 255", strings.TrimSpace(p))
		}
		vals[i] = uint8(v)
	}

	c := Clamp{
		MinR: vals[0], MinG: vals[1], MinB: vals[2],
		MaxR: vals[3], MaxG: vals[4], MaxB: vals[5],
	}
	if err := c.Validate(); err != nil {
		return Clamp{}, err
	}
	return c, nil
}

// Request describes one generation attempt.
type Request struct {
	Count       int
	MinContrast int
	Clamp       Clamp
}

// Validate checks the request against the bounds the generator assumes.
func (r Request) Validate(maxCount int) error {
	if r.Count < 1 || r.Count > maxCount {
		return fmt.Errorf("count must be between 1 and %d, got %d", maxCount, r.Count)
	}
	if r.MinContrast < 1 || r.MinContrast > MaxContrast {
		return fmt.Errorf("minimum contrast must be between 1 and %d, got %d", MaxContrast, r.MinContrast)
	}
	return r.Clamp.Validate()
}

// Lookup answers whether a colour key is reserved.
type Lookup interface {
	Contains(key string) bool
}

// Options tunes a generation run. The zero value uses a null logger and
// the MaxAttempts ceiling.
type Options struct {
	Logger hclog.Logger
	// Progress, if set, is called after each accepted colour.
	Progress func(generated, requested int)
	// MaxAttempts overrides the attempt ceiling when positive.
	MaxAttempts int
}

// Generate walks the clamped RGB space and returns req.Count colours that are
// neither reserved nor repeated. The request is assumed valid.
//
// Each step widens when the current colour is close in contrast to the last
// accepted one and narrows when it is already far away, but never drops
// below 1. The run fails with ErrExhausted rather than returning fewer colours.
func Generate(reserved Lookup, req Request, opts Options) (*colour.Palette, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	maxAttempts := MaxAttempts
	if opts.MaxAttempts > 0 {
		maxAttempts = opts.MaxAttempts
	}

	logger.Debug("starting generation", "count", req.Count, "min_contrast", req.MinContrast, "clamp", req.Clamp.String())

	odo := NewOdometer(req.Clamp)
	palette := colour.NewPalette(make([]colour.RGB, 0, req.Count))
	seen := make(map[string]struct{}, req.Count)

	previous := 0
	attempts := 0
	offset := 0

	for palette.Len() < req.Count {
		r, g, b := odo.Channels()
		current := absInt(colour.Contrast(r, g, b) - previous)
		step := max(req.MinContrast-current, 1)

		odo.Advance(step)

		if odo.Offset() != offset {
			offset = odo.Offset()
			logger.Trace("odometer cycle complete", "offset", offset, "generated", palette.Len(), "attempts", attempts)
		}

		if odo.InClamp() {
			c := odo.RGB()
			key := c.Key()
			_, dup := seen[key]
			if !dup && (reserved == nil || !reserved.Contains(key)) {
				palette.Append(c)
				seen[key] = struct{}{}
				// The delta measured before this step becomes the new reference.
				previous = current
				if opts.Progress != nil {
					opts.Progress(palette.Len(), req.Count)
				}
			}
		}

		attempts++

		if palette.Len() < req.Count && (attempts > maxAttempts || odo.Spent()) {
			logger.Debug("generation exhausted", "generated", palette.Len(), "attempts", attempts, "offset", odo.Offset())
			return nil, &ExhaustedError{
				Requested: req.Count,
				Generated: palette.Len(),
				Attempts:  attempts,
			}
		}
	}

	logger.Debug("generation complete", "generated", palette.Len(), "attempts", attempts)
	return palette, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
