package pianoroll

import (
	"fmt"
	"math"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Rect is an axis-aligned pixel rectangle
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Transform maps ticks and note numbers to pixels and back.
// It is a value: zooming builds a new Transform instead of mutating one.
type Transform struct {
	pixelsPerTick float64
	pixelsPerKey  float64
	numberOfKeys  int
}

// NewTransform validates the scale parameters and returns a transform
func NewTransform(pixelsPerTick, pixelsPerKey float64, numberOfKeys int) (Transform, error) {
	if !(pixelsPerTick > 0) || math.IsInf(pixelsPerTick, 0) {
		return Transform{}, configError(fmt.Sprintf("pixelsPerTick must be positive, got %v", pixelsPerTick))
	}
	if !(pixelsPerKey > 0) || math.IsInf(pixelsPerKey, 0) {
		return Transform{}, configError(fmt.Sprintf("pixelsPerKey must be positive, got %v", pixelsPerKey))
	}
	if numberOfKeys <= 0 {
		return Transform{}, configError(fmt.Sprintf("numberOfKeys must be positive, got %d", numberOfKeys))
	}
	return Transform{
		pixelsPerTick: pixelsPerTick,
		pixelsPerKey:  pixelsPerKey,
		numberOfKeys:  numberOfKeys,
	}, nil
}

// MustTransform is NewTransform for constant parameters
func MustTransform(pixelsPerTick, pixelsPerKey float64, numberOfKeys int) Transform {
	t, err := NewTransform(pixelsPerTick, pixelsPerKey, numberOfKeys)
	if err != nil {
		panic(err)
	}
	return t
}

func configError(msg string) error {
	return fault.New(msg,
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc(msg, "Invalid editor configuration"),
	)
}

func (t Transform) PixelsPerTick() float64 { return t.pixelsPerTick }
func (t Transform) PixelsPerKey() float64  { return t.pixelsPerKey }
func (t Transform) NumberOfKeys() int      { return t.numberOfKeys }

// X returns the pixel column of a tick
func (t Transform) X(tick float64) float64 {
	return tick * t.pixelsPerTick
}

// Ticks is the inverse of X
func (t Transform) Ticks(x float64) float64 {
	return x / t.pixelsPerTick
}

// Y returns the top of the key row for a note number. Higher notes are
// nearer the top.
func (t Transform) Y(noteNumber float64) float64 {
	return (float64(t.numberOfKeys) - 1 - noteNumber) * t.pixelsPerKey
}

// NoteNumber is the continuous inverse of Y
func (t Transform) NoteNumber(y float64) float64 {
	return float64(t.numberOfKeys) - 1 - y/t.pixelsPerKey
}

// ToScreen converts a musical position to pixels
func (t Transform) ToScreen(tick float64, noteNumber int) (x, y float64) {
	return t.X(tick), t.Y(float64(noteNumber))
}

// ToTime converts a pixel column to ticks. The caller rounds or quantizes.
func (t Transform) ToTime(x float64) float64 {
	return t.Ticks(x)
}

// ToPitch returns the key row containing y. A y exactly on a row boundary
// belongs to the higher row.
func (t Transform) ToPitch(y float64) int {
	return int(math.Ceil(t.NoteNumber(y)))
}

// Rect returns the pixel rectangle a note occupies
func (t Transform) Rect(n Note) Rect {
	return Rect{
		X:      t.X(float64(n.Tick)),
		Y:      t.Y(float64(n.NoteNumber)),
		Width:  float64(n.Duration) * t.pixelsPerTick,
		Height: t.pixelsPerKey,
	}
}

// MaxY is the pixel height of the whole keyboard
func (t Transform) MaxY() float64 {
	return float64(t.numberOfKeys) * t.pixelsPerKey
}

// ContentWidth is the scrollable width needed to show endTick, never less
// than the visible width.
func (t Transform) ContentWidth(endTick int, visibleWidth float64) float64 {
	return math.Max(t.X(float64(endTick)), visibleWidth)
}

// Zoom returns a transform with the horizontal scale multiplied by factor
func (t Transform) Zoom(factor float64) (Transform, error) {
	return NewTransform(t.pixelsPerTick*factor, t.pixelsPerKey, t.numberOfKeys)
}
