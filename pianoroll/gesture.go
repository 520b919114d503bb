package pianoroll

// Kind is the gesture variant. A gesture never changes kind once started.
type Kind int

const (
	None Kind = iota
	DrawNote
	MoveNotes
	ResizeNoteStart
	ResizeNoteEnd
	VelocityEdit
	BoxSelect
	ScrollDrag
)

var kindNames = [...]string{"none", "draw", "move", "resize-start", "resize-end", "velocity", "box-select", "scroll-drag"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Mode is the active edit tool
type Mode int

const (
	ModePencil Mode = iota
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModePencil:
		return "pencil"
	case ModeSelect:
		return "select"
	default:
		return "unknown"
	}
}

// resizable lists the modes in which note edges can be dragged
var resizable = map[Mode]bool{
	ModePencil: true,
	ModeSelect: true,
}

// Button is the pointer button involved in a press
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Region is the sub-surface a pointer event happened in
type Region int

const (
	RegionNotes Region = iota
	RegionVelocity
)

// Zone is the part of a note under the pointer
type Zone int

const (
	ZoneNone Zone = iota
	ZoneBody
	ZoneStart
	ZoneEnd
)

// Hit is the pre-computed hit-test result carried by a pointer event
type Hit struct {
	Zone Zone
	ID   NoteID
}

// OnNote reports whether the pointer is over a note
func (h Hit) OnNote() bool {
	return h.Zone != ZoneNone
}

// Modifiers are the keyboard modifiers held during a pointer event
type Modifiers struct {
	Shift, Ctrl, Alt bool
}

// MultiSelect reports whether the multi-select modifier is held
func (m Modifiers) MultiSelect() bool {
	return m.Shift || m.Ctrl
}

// PointerEvent is a raw pointer event plus the host's hit-test result.
// X and Y are content pixels (scroll applied); ScreenX and ScreenY are
// surface pixels and only drive scroll dragging. For RegionVelocity, Y is
// measured from the top of the velocity lane.
type PointerEvent struct {
	X, Y             float64
	ScreenX, ScreenY float64
	Button           Button
	Mods             Modifiers
	Region           Region
	Hit              Hit
}

// Point is a gesture anchor. Tick and Pitch are derived from X and Y.
type Point struct {
	X, Y             float64
	ScreenX, ScreenY float64
	Tick             float64
	Pitch            int
}

// Gesture is the single live edit interaction
type Gesture struct {
	Kind      Kind
	Anchor    Point
	TargetIDs []NoteID
}

// Classify picks the gesture kind for a pointer-down. The first matching
// rule wins:
//
//	middle button            -> ScrollDrag
//	velocity lane            -> VelocityEdit
//	note edge (resizable)    -> ResizeNoteEnd / ResizeNoteStart
//	note body                -> MoveNotes
//	empty, pencil mode       -> DrawNote
//	empty, select mode       -> BoxSelect
func Classify(mode Mode, ev PointerEvent) Kind {
	if ev.Button == ButtonMiddle {
		return ScrollDrag
	}
	if ev.Button != ButtonLeft {
		return None
	}
	if ev.Region == RegionVelocity {
		return VelocityEdit
	}
	switch ev.Hit.Zone {
	case ZoneEnd:
		if resizable[mode] {
			return ResizeNoteEnd
		}
		return MoveNotes
	case ZoneStart:
		if resizable[mode] {
			return ResizeNoteStart
		}
		return MoveNotes
	case ZoneBody:
		return MoveNotes
	}
	switch mode {
	case ModePencil:
		return DrawNote
	case ModeSelect:
		return BoxSelect
	}
	return None
}

// Cursor is a pointer-shape hint for the host
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorMove
	CursorResizeStart
	CursorResizeEnd
	CursorGrab
)

func (c Cursor) String() string {
	switch c {
	case CursorCrosshair:
		return "crosshair"
	case CursorMove:
		return "move"
	case CursorResizeStart:
		return "w-resize"
	case CursorResizeEnd:
		return "e-resize"
	case CursorGrab:
		return "grabbing"
	default:
		return "auto"
	}
}

// CursorFor is the idle hover hint for a hit in the given mode
func CursorFor(mode Mode, hit Hit) Cursor {
	switch hit.Zone {
	case ZoneStart:
		if resizable[mode] {
			return CursorResizeStart
		}
		return CursorMove
	case ZoneEnd:
		if resizable[mode] {
			return CursorResizeEnd
		}
		return CursorMove
	case ZoneBody:
		return CursorMove
	}
	if mode == ModePencil {
		return CursorCrosshair
	}
	return CursorDefault
}
