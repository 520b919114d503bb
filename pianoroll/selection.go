package pianoroll

import "sort"

// SelectMode decides how Select combines ids with the current selection
type SelectMode int

const (
	Replace SelectMode = iota
	Add
	Toggle
	Subtract
)

// Bounds is a box-select region in tick/pitch space, inclusive on all sides
type Bounds struct {
	FromTick, ToTick   float64
	LowPitch, HighPitch int
}

// NewBounds normalizes two corners into a Bounds
func NewBounds(tickA, tickB float64, pitchA, pitchB int) Bounds {
	if tickB < tickA {
		tickA, tickB = tickB, tickA
	}
	if pitchB < pitchA {
		pitchA, pitchB = pitchB, pitchA
	}
	return Bounds{FromTick: tickA, ToTick: tickB, LowPitch: pitchA, HighPitch: pitchB}
}

// Intersects reports whether the note overlaps the region
func (b Bounds) Intersects(n Note) bool {
	if n.NoteNumber < b.LowPitch || n.NoteNumber > b.HighPitch {
		return false
	}
	return float64(n.Tick) <= b.ToTick && float64(n.End()) > b.FromTick
}

// Selection holds the selected note ids and the live box-select bounds.
// Every mutating call notifies subscribers exactly once, even when nothing
// changed.
type Selection struct {
	ids    map[NoteID]struct{}
	bounds *Bounds

	subs   map[int]func(*Selection)
	nextID int
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{
		ids:  make(map[NoteID]struct{}),
		subs: make(map[int]func(*Selection)),
	}
}

// Select combines ids with the current selection according to mode
func (s *Selection) Select(ids []NoteID, mode SelectMode) {
	switch mode {
	case Replace:
		s.ids = make(map[NoteID]struct{}, len(ids))
		for _, id := range ids {
			s.ids[id] = struct{}{}
		}
	case Add:
		for _, id := range ids {
			s.ids[id] = struct{}{}
		}
	case Subtract:
		for _, id := range ids {
			delete(s.ids, id)
		}
	case Toggle:
		seen := make(map[NoteID]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if _, ok := s.ids[id]; ok {
				delete(s.ids, id)
			} else {
				s.ids[id] = struct{}{}
			}
		}
	}
	s.emit()
}

// Clear deselects everything and drops the bounds
func (s *Selection) Clear() {
	s.ids = make(map[NoteID]struct{})
	s.bounds = nil
	s.emit()
}

// Contains reports whether id is selected
func (s *Selection) Contains(id NoteID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected notes
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order
func (s *Selection) IDs() []NoteID {
	out := make([]NoteID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetBounds sets or clears (nil) the box-select region
func (s *Selection) SetBounds(b *Bounds) {
	if b == nil {
		s.bounds = nil
	} else {
		cp := *b
		s.bounds = &cp
	}
	s.emit()
}

// Bounds returns the box-select region, if one is being dragged
func (s *Selection) Bounds() (Bounds, bool) {
	if s.bounds == nil {
		return Bounds{}, false
	}
	return *s.bounds, true
}

// Subscribe registers fn for change notifications. Calling the returned
// func unsubscribes; calling it twice is harmless.
func (s *Selection) Subscribe(fn func(*Selection)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

func (s *Selection) emit() {
	// Snapshot in registration order so callbacks may (un)subscribe
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fns := make([]func(*Selection), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, s.subs[k])
	}
	for _, fn := range fns {
		fn(s)
	}
}
