package pianoroll

import (
	"math"
	"testing"

	"github.com/Southclaws/fault/ftag"
)

func TestTransformRoundTrip(t *testing.T) {
	transforms := []Transform{
		MustTransform(0.25, 8, 128),
		MustTransform(0.1, 12, 128),
		MustTransform(1.7, 3.5, 88),
	}
	ticks := []float64{0, 1, 119, 120, 480, 12345, 1e6}
	for _, tr := range transforms {
		for _, tick := range ticks {
			x, _ := tr.ToScreen(tick, 60)
			if got := tr.ToTime(x); math.Abs(got-tick) > 1e-6 {
				t.Fatalf("ToTime(ToScreen(%v))=%v with ppt=%v", tick, got, tr.PixelsPerTick())
			}
		}
	}
}

func TestTransformPitchMonotonic(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	for n := 0; n < 127; n++ {
		_, y1 := tr.ToScreen(0, n)
		_, y2 := tr.ToScreen(0, n+1)
		if !(y1 > y2) {
			t.Fatalf("y(%d)=%v not below y(%d)=%v", n, y1, n+1, y2)
		}
	}
}

func TestToPitchKeyRows(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	// key 60 occupies y in [536, 544)
	cases := []struct {
		y    float64
		want int
	}{
		{536, 60}, // top boundary belongs to the higher row
		{537, 60},
		{543.9, 60},
		{544, 59},
		{0, 127},
		{1016, 0},
	}
	for _, c := range cases {
		if got := tr.ToPitch(c.y); got != c.want {
			t.Fatalf("ToPitch(%v)=%d want %d", c.y, got, c.want)
		}
	}
	for n := 0; n <= 127; n++ {
		_, y := tr.ToScreen(0, n)
		if got := tr.ToPitch(y); got != n {
			t.Fatalf("ToPitch(Y(%d))=%d", n, got)
		}
	}
}

func TestTransformRect(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	r := tr.Rect(Note{Tick: 480, Duration: 240, NoteNumber: 60})
	want := Rect{X: 120, Y: 536, Width: 60, Height: 8}
	if r != want {
		t.Fatalf("rect=%+v want %+v", r, want)
	}
	if tr.MaxY() != 1024 {
		t.Fatalf("MaxY=%v", tr.MaxY())
	}
	if w := tr.ContentWidth(480, 500); w != 500 {
		t.Fatalf("content width=%v want visible width", w)
	}
}

func TestTransformRejectsBadScale(t *testing.T) {
	cases := []struct {
		ppt, ppk float64
		keys     int
	}{
		{0, 8, 128},
		{-1, 8, 128},
		{0.25, 0, 128},
		{0.25, 8, 0},
		{math.NaN(), 8, 128},
	}
	for _, c := range cases {
		_, err := NewTransform(c.ppt, c.ppk, c.keys)
		if err == nil {
			t.Fatalf("NewTransform(%v,%v,%d) accepted", c.ppt, c.ppk, c.keys)
		}
		if ftag.Get(err) != ftag.InvalidArgument {
			t.Fatalf("tag=%v", ftag.Get(err))
		}
	}
}

func TestZoomReturnsFreshTransform(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	zoomed, err := tr.Zoom(2)
	if err != nil {
		t.Fatal(err)
	}
	if tr.PixelsPerTick() != 0.25 || zoomed.PixelsPerTick() != 0.5 {
		t.Fatalf("ppt=%v zoomed=%v", tr.PixelsPerTick(), zoomed.PixelsPerTick())
	}
}
