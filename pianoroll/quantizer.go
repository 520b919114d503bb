package pianoroll

import (
	"fmt"
	"math"
)

// Quantizer snaps ticks to a grid of Resolution ticks
type Quantizer struct {
	resolution int
	enabled    bool
}

// NewQuantizer fails when the resolution is not positive
func NewQuantizer(resolution int, enabled bool) (Quantizer, error) {
	if resolution <= 0 {
		return Quantizer{}, configError(fmt.Sprintf("quantize resolution must be positive, got %d", resolution))
	}
	return Quantizer{resolution: resolution, enabled: enabled}, nil
}

// Quantize rounds tick to the nearest grid line, halves rounding up.
// A disabled quantizer returns tick unchanged.
func (q Quantizer) Quantize(tick float64) float64 {
	if !q.enabled {
		return tick
	}
	r := float64(q.resolution)
	return math.Floor(tick/r+0.5) * r
}

// Unit is the length of one grid cell in ticks. It is also the shortest
// duration a gesture will commit.
func (q Quantizer) Unit() int {
	return q.resolution
}

func (q Quantizer) Enabled() bool { return q.enabled }

// WithEnabled returns a copy with snapping switched on or off
func (q Quantizer) WithEnabled(enabled bool) Quantizer {
	q.enabled = enabled
	return q
}

// snapTick quantizes and converts to whole ticks
func (q Quantizer) snapTick(tick float64) int {
	return int(math.Round(q.Quantize(tick)))
}
