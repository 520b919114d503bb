package pianoroll

import "math"

// TickRange is a half-open span of ticks [From, To)
type TickRange struct {
	From, To int
}

// AllTicks covers every tick a note can start at
var AllTicks = TickRange{From: 0, To: math.MaxInt32}

// Overlaps reports whether the note sounds anywhere inside the range
func (r TickRange) Overlaps(n Note) bool {
	return n.Tick < r.To && n.End() > r.From
}

// MutationKind identifies a note-store edit
type MutationKind int

const (
	CreateNote MutationKind = iota
	DeleteNote
	UpdateNote
)

func (k MutationKind) String() string {
	switch k {
	case CreateNote:
		return "create"
	case DeleteNote:
		return "delete"
	case UpdateNote:
		return "update"
	default:
		return "unknown"
	}
}

// Field is a bit mask naming the note fields an UpdateNote touches
type Field uint8

const (
	FieldTick Field = 1 << iota
	FieldDuration
	FieldNoteNumber
	FieldVelocity
)

// Mutation is one edit inside a batch.
// CreateNote uses Note (ID ignored), DeleteNote uses ID, and UpdateNote copies
// the Fields of Note onto the note with ID.
type Mutation struct {
	Kind   MutationKind
	ID     NoteID
	Note   Note
	Fields Field
}

// Create builds a createNote mutation
func Create(n Note) Mutation {
	return Mutation{Kind: CreateNote, Note: n}
}

// Delete builds a deleteNote mutation
func Delete(id NoteID) Mutation {
	return Mutation{Kind: DeleteNote, ID: id}
}

// Update builds an updateNote mutation carrying only the given fields
func Update(id NoteID, values Note, fields Field) Mutation {
	return Mutation{Kind: UpdateNote, ID: id, Note: values, Fields: fields}
}

// Apply copies the masked fields of m onto n
func (m Mutation) Apply(n Note) Note {
	if m.Fields&FieldTick != 0 {
		n.Tick = m.Note.Tick
	}
	if m.Fields&FieldDuration != 0 {
		n.Duration = m.Note.Duration
	}
	if m.Fields&FieldNoteNumber != 0 {
		n.NoteNumber = m.Note.NoteNumber
	}
	if m.Fields&FieldVelocity != 0 {
		n.Velocity = m.Note.Velocity
	}
	return n
}

// CommandID identifies an applied batch for undo grouping
type CommandID int

// NoteStore owns the notes of the edited track.
// ApplyBatch must apply the whole batch atomically.
type NoteStore interface {
	Events(r TickRange) []Note
	ApplyBatch(muts []Mutation) CommandID
}

// Viewport is the scrollable window onto the roll, in pixels
type Viewport interface {
	ScrollBy(dx, dy float64)
	VisibleRect() Rect
}

// PositionProvider reports the playback position
type PositionProvider interface {
	CurrentTick() int
	IsPlaying() bool
}

// Capturer routes pointer events outside the editing surface to the
// controller until the returned release func is called.
type Capturer interface {
	Capture() (release func())
}
