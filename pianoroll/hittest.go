package pianoroll

import "math"

// DefaultEdgeTolerance is the width in pixels of the resize zones at each end
// of a note
const DefaultEdgeTolerance = 4.0

// HitTest finds the note under (x, y). Later notes are drawn on top, so the
// last match wins. The right edge is tested before the left edge.
func HitTest(t Transform, notes []Note, x, y, tolerance float64) Hit {
	for i := len(notes) - 1; i >= 0; i-- {
		n := notes[i]
		if !n.Valid() {
			continue
		}
		r := t.Rect(n)
		if !r.Contains(x, y) {
			continue
		}
		edge := math.Min(tolerance, r.Width/4)
		switch {
		case x >= r.X+r.Width-edge:
			return Hit{Zone: ZoneEnd, ID: n.ID}
		case x < r.X+edge:
			return Hit{Zone: ZoneStart, ID: n.ID}
		default:
			return Hit{Zone: ZoneBody, ID: n.ID}
		}
	}
	return Hit{}
}

// NotesInColumn returns the notes sounding at tick
func NotesInColumn(notes []Note, tick float64) []Note {
	var out []Note
	for _, n := range notes {
		if n.Valid() && float64(n.Tick) <= tick && tick < float64(n.End()) {
			out = append(out, n)
		}
	}
	return out
}

// VisibleRange is the tick span covered by a visible pixel rectangle
func VisibleRange(t Transform, visible Rect) TickRange {
	return TickRange{
		From: int(math.Floor(t.Ticks(visible.X))),
		To:   int(math.Ceil(t.Ticks(visible.X+visible.Width))) + 1,
	}
}

// VisibleNotes asks the store for the notes overlapping the viewport
func VisibleNotes(store NoteStore, t Transform, visible Rect) []Note {
	return store.Events(VisibleRange(t, visible))
}
