package pianoroll

import (
	"testing"

	"github.com/Southclaws/fault/ftag"
)

func TestQuantizeRoundsHalfUp(t *testing.T) {
	q, err := NewQuantizer(120, true)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[float64]float64{
		0:     0,
		59.9:  0,
		60:    120,
		130:   120,
		180:   240,
		365:   360,
		-60:   0,
		-61:   -120,
		479.5: 480,
	}
	for in, want := range cases {
		if got := q.Quantize(in); got != want {
			t.Fatalf("Quantize(%v)=%v want %v", in, got, want)
		}
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	for _, res := range []int{1, 30, 120, 480, 7} {
		q, _ := NewQuantizer(res, true)
		for tick := -1000.0; tick <= 5000; tick += 13.7 {
			once := q.Quantize(tick)
			if twice := q.Quantize(once); twice != once {
				t.Fatalf("res=%d tick=%v once=%v twice=%v", res, tick, once, twice)
			}
		}
	}
}

func TestQuantizeDisabledPassesThrough(t *testing.T) {
	q, _ := NewQuantizer(120, false)
	if got := q.Quantize(130.5); got != 130.5 {
		t.Fatalf("got %v", got)
	}
	if q.Unit() != 120 {
		t.Fatalf("unit=%d", q.Unit())
	}
	if !q.WithEnabled(true).Enabled() {
		t.Fatal("WithEnabled(true) still disabled")
	}
}

func TestQuantizerRejectsBadResolution(t *testing.T) {
	for _, res := range []int{0, -120} {
		_, err := NewQuantizer(res, true)
		if err == nil || ftag.Get(err) != ftag.InvalidArgument {
			t.Fatalf("resolution %d: err=%v", res, err)
		}
	}
}
