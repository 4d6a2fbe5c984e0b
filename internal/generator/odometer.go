package generator

import (
	"github.com/jmylchreest/colourfactory/internal/colour"
)

// Channel names the odometer state: which channel advances next.
type Channel int

const (
	// AdvanceR steps the red channel.
	AdvanceR Channel = iota
	// AdvanceG steps the green channel.
	AdvanceG
	// AdvanceB steps the blue channel.
	AdvanceB
)

func (c Channel) String() string {
	switch c {
	case AdvanceR:
		return "red"
	case AdvanceG:
		return "green"
	case AdvanceB:
		return "blue"
	default:
		return "unknown"
	}
}

// Odometer walks the clamped RGB cuboid one channel at a time.
//
// The active channel climbs towards its maximum while the other two rest at
// min+offset. On reaching the maximum it rolls over to min+offset and hands
// over to the next channel. When blue rolls over the offset grows by the
// current step, so each full cycle explores a new shell of the cuboid.
// Channel values are ints because min+offset may pass the clamp maximum.
type Odometer struct {
	ch          [3]int
	lo          [3]int
	hi          [3]int
	turn        Channel
	offset      int
	justWrapped bool
}

// NewOdometer returns an odometer at the clamp minimums with red active.
func NewOdometer(c Clamp) *Odometer {
	lo := [3]int{int(c.MinR), int(c.MinG), int(c.MinB)}
	return &Odometer{
		ch:          lo,
		lo:          lo,
		hi:          [3]int{int(c.MaxR), int(c.MaxG), int(c.MaxB)},
		turn:        AdvanceR,
		justWrapped: true,
	}
}

// Advance performs one transition, moving the active channel by step.
func (o *Odometer) Advance(step int) {
	c := o.turn

	// A channel re-entered right after a rollover starts from its bare
	// minimum once, so the min+offset shell does not skip the lower values.
	if o.justWrapped && o.ch[c] == o.lo[c]+o.offset {
		o.ch[c] = o.lo[c]
		o.justWrapped = false
	}

	if o.ch[c] < o.hi[c] {
		o.ch[c] = min(o.ch[c]+step, o.hi[c])
		for other := range o.ch {
			if Channel(other) != c {
				o.ch[other] = o.lo[other] + o.offset
			}
		}
		return
	}

	o.justWrapped = true
	if c != AdvanceB {
		o.ch[c] = o.lo[c] + o.offset
		o.turn = c + 1
		return
	}

	o.offset += step
	o.turn = AdvanceR
	o.ch[AdvanceR] = o.lo[AdvanceR]
	o.ch[AdvanceG] = o.lo[AdvanceG] + o.offset
	o.ch[AdvanceB] = o.lo[AdvanceB] + o.offset
}

// Channels returns the current red, green and blue positions.
func (o *Odometer) Channels() (r, g, b int) {
	return o.ch[AdvanceR], o.ch[AdvanceG], o.ch[AdvanceB]
}

// Turn returns the channel that the next Advance will move.
func (o *Odometer) Turn() Channel {
	return o.turn
}

// Offset returns the per-cycle offset.
func (o *Odometer) Offset() int {
	return o.offset
}

// JustWrapped reports whether the last rollover has not yet been consumed.
func (o *Odometer) JustWrapped() bool {
	return o.justWrapped
}

// InClamp reports whether the current position lies inside the clamp cuboid.
func (o *Odometer) InClamp() bool {
	for i := range o.ch {
		if o.ch[i] < o.lo[i] || o.ch[i] > o.hi[i] {
			return false
		}
	}
	return true
}

// RGB returns the current position as a colour. Only meaningful when InClamp.
func (o *Odometer) RGB() colour.RGB {
	return colour.RGB{R: uint8(o.ch[AdvanceR]), G: uint8(o.ch[AdvanceG]), B: uint8(o.ch[AdvanceB])}
}

// Spent reports whether no future position can fall inside the clamp.
// Every position keeps at least two channels at min+offset, so once the offset
// exceeds the span of two channels every later candidate is out of range.
func (o *Odometer) Spent() bool {
	over := 0
	for i := range o.ch {
		if o.offset > o.hi[i]-o.lo[i] {
			over++
		}
	}
	return over >= 2
}
