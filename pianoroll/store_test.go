package pianoroll

// memStore is a NoteStore that records every batch
type memStore struct {
	notes   []Note
	batches [][]Mutation
	nextID  NoteID
}

func newMemStore(notes ...Note) *memStore {
	s := &memStore{nextID: 1}
	for _, n := range notes {
		if n.ID >= s.nextID {
			s.nextID = n.ID + 1
		}
		s.notes = append(s.notes, n)
	}
	return s
}

func (s *memStore) Events(r TickRange) []Note {
	var out []Note
	for _, n := range s.notes {
		if r.Overlaps(n) {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) ApplyBatch(muts []Mutation) CommandID {
	s.batches = append(s.batches, muts)
	for _, m := range muts {
		switch m.Kind {
		case CreateNote:
			n := m.Note
			n.ID = s.nextID
			s.nextID++
			s.notes = append(s.notes, n)
		case DeleteNote:
			for i, n := range s.notes {
				if n.ID == m.ID {
					s.notes = append(s.notes[:i], s.notes[i+1:]...)
					break
				}
			}
		case UpdateNote:
			for i, n := range s.notes {
				if n.ID == m.ID {
					s.notes[i] = m.Apply(n)
				}
			}
		}
	}
	return CommandID(len(s.batches))
}

func (s *memStore) note(id NoteID) Note {
	for _, n := range s.notes {
		if n.ID == id {
			return n
		}
	}
	return Note{}
}

type fakeViewport struct {
	rect   Rect
	scroll [][2]float64
}

func (v *fakeViewport) ScrollBy(dx, dy float64) {
	v.scroll = append(v.scroll, [2]float64{dx, dy})
	v.rect.X += dx
	v.rect.Y += dy
}

func (v *fakeViewport) VisibleRect() Rect { return v.rect }

type fakeCapture struct {
	acquired, released int
}

func (c *fakeCapture) Capture() func() {
	c.acquired++
	return func() { c.released++ }
}
