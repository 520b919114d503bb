package pianoroll

import "testing"

func TestHitTestZones(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	// rect x in [120, 180), y in [536, 544)
	notes := []Note{{ID: 7, Tick: 480, Duration: 240, NoteNumber: 60, Velocity: 100}}
	cases := []struct {
		x, y float64
		want Hit
	}{
		{150, 540, Hit{Zone: ZoneBody, ID: 7}},
		{121, 540, Hit{Zone: ZoneStart, ID: 7}},
		{177, 540, Hit{Zone: ZoneEnd, ID: 7}},
		{150, 530, Hit{}},
		{181, 540, Hit{}},
	}
	for _, c := range cases {
		if got := HitTest(tr, notes, c.x, c.y, DefaultEdgeTolerance); got != c.want {
			t.Fatalf("(%v,%v) hit=%+v want %+v", c.x, c.y, got, c.want)
		}
	}
}

func TestHitTestNarrowNoteKeepsBody(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	// 8px wide, so each edge zone is 2px
	notes := []Note{{ID: 1, Tick: 0, Duration: 32, NoteNumber: 60}}
	if got := HitTest(tr, notes, 4, 540, DefaultEdgeTolerance); got.Zone != ZoneBody {
		t.Fatalf("zone=%v want body", got.Zone)
	}
}

func TestHitTestTopmostAndInvalid(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	notes := []Note{
		{ID: 1, Tick: 0, Duration: 480, NoteNumber: 60},
		{ID: 2, Tick: 0, Duration: 480, NoteNumber: 60},
		{ID: 3, Tick: 0, Duration: 0, NoteNumber: 60},
	}
	if got := HitTest(tr, notes, 60, 540, 4); got.ID != 2 {
		t.Fatalf("id=%d want topmost valid note 2", got.ID)
	}
}

func TestVisibleNotesKeepsSpanningNotes(t *testing.T) {
	tr := MustTransform(0.25, 8, 128)
	store := newMemStore(
		Note{ID: 1, Tick: 0, Duration: 4000, NoteNumber: 60},  // spans the view
		Note{ID: 2, Tick: 500, Duration: 100, NoteNumber: 60}, // inside
		Note{ID: 3, Tick: 5000, Duration: 100, NoteNumber: 60},
	)
	got := VisibleNotes(store, tr, Rect{X: 100, Width: 300, Height: 400})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("visible=%+v", got)
	}
}

func TestNotesInColumn(t *testing.T) {
	notes := []Note{
		{ID: 1, Tick: 0, Duration: 240},
		{ID: 2, Tick: 120, Duration: 240},
		{ID: 3, Tick: 240, Duration: 240},
	}
	got := NotesInColumn(notes, 200)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("column=%+v", got)
	}
}
