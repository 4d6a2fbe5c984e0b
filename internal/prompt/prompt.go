// Package prompt collects a generation request interactively, asking again
// until every answer is in range.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/colourfactory/internal/generator"
	"github.com/jmylchreest/colourfactory/internal/security"
)

// ErrNoInput is returned when input ends before every question is answered.
var ErrNoInput = errors.New("input ended before the request was complete")

// Answers is a validated interactive request.
type Answers struct {
	Request generator.Request
	Sort    bool
}

// Collector asks for a generation request on a line-oriented stream.
type Collector struct {
	scanner  *bufio.Scanner
	out      io.Writer
	maxCount int
}

// NewCollector creates a Collector reading answers from in and writing questions to out.
func NewCollector(in io.Reader, out io.Writer, maxCount int) *Collector {
	if maxCount < 1 {
		maxCount = generator.DefaultMaxCount
	}
	return &Collector{
		scanner:  bufio.NewScanner(in),
		out:      out,
		maxCount: maxCount,
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 - File descriptors fit in int
}

// Collect asks every question in turn: count, minimum contrast, channel
// minimums, channel maximums (each at least its minimum) and whether to sort.
func (c *Collector) Collect() (Answers, error) {
	var a Answers
	var err error

	a.Request.Count, err = c.askInt(fmt.Sprintf("Number of colours to generate (1-%d): ", c.maxCount), 1, c.maxCount)
	if err != nil {
		return Answers{}, err
	}

	a.Request.MinContrast, err = c.askInt("Minimum contrast between colours (luminance based) (1-255): ", 1, generator.MaxContrast)
	if err != nil {
		return Answers{}, err
	}

	var mins [3]int
	for i, name := range []string{"red", "green", "blue"} {
		mins[i], err = c.askInt(fmt.Sprintf("Minimum %s value (0-255): ", name), 0, 255)
		if err != nil {
			return Answers{}, err
		}
	}

	var maxes [3]int
	for i, name := range []string{"red", "green", "blue"} {
		maxes[i], err = c.askInt(fmt.Sprintf("Maximum %s value (%d-255): ", name, mins[i]), mins[i], 255)
		if err != nil {
			return Answers{}, err
		}
	}

	a.Request.Clamp = generator.Clamp{
		MinR: security.SafeUint8(mins[0]), MinG: security.SafeUint8(mins[1]), MinB: security.SafeUint8(mins[2]),
		MaxR: security.SafeUint8(maxes[0]), MaxG: security.SafeUint8(maxes[1]), MaxB: security.SafeUint8(maxes[2]),
	}

	a.Sort, err = c.askYesNo("Sort the generated colours by brightness? (y/n): ")
	if err != nil {
		return Answers{}, err
	}

	return a, nil
}

// askInt repeats question until the answer is an integer in [lo, hi].
func (c *Collector) askInt(question string, lo, hi int) (int, error) {
	fmt.Fprint(c.out, question)
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintf(c.out, "Please enter a valid number (%d-%d): ", lo, hi)
	}
}

// askYesNo repeats question until the answer is y or n, in any case.
func (c *Collector) askYesNo(question string) (bool, error) {
	fmt.Fprint(c.out, question)
	for {
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprint(c.out, "Please enter y or n: ")
	}
}

func (c *Collector) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}
