package pianoroll

// NoteID identifies a note within a track. IDs are assigned by the note store.
type NoteID int

// MaxNoteNumber is the highest MIDI note number
const MaxNoteNumber = 127

// MaxVelocity is the highest MIDI velocity
const MaxVelocity = 127

// Note is a single note event as held by the note store
type Note struct {
	ID         NoteID `json:"id" yaml:"-"`
	Tick       int    `json:"tick" yaml:"tick"`
	Duration   int    `json:"duration" yaml:"duration"`
	NoteNumber int    `json:"noteNumber" yaml:"noteNumber"`
	Velocity   int    `json:"velocity" yaml:"velocity"`
}

// Valid reports whether the note can be rendered and selected
func (n Note) Valid() bool {
	return n.Duration > 0 && n.Tick >= 0
}

// End returns the tick just past the note
func (n Note) End() int {
	return n.Tick + n.Duration
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
