package pianoroll

import (
	"go-pianoroll/debug"
)

// DraftID marks the provisional note of a DrawNote gesture
const DraftID NoteID = -1

// DefaultVelocity is used for drawn notes until a note has been edited
const DefaultVelocity = 100

// DefaultLaneHeight is the velocity lane height in pixels
const DefaultLaneHeight = 64.0

// Options configures a Controller. Store, Transform and Quantizer are
// required; the rest have usable zero values.
type Options struct {
	Store     NoteStore
	Transform Transform
	Quantizer Quantizer
	Selection *Selection
	Viewport  Viewport
	Capture   Capturer
	Mode      Mode

	DefaultVelocity int
	LaneHeight      float64

	// OnCommit runs after a gesture's batch has been applied
	OnCommit func(g Gesture, cmd CommandID)
	// OnAudition runs when a draw or move gesture lands on a new pitch
	OnAudition func(n Note)
}

// Controller turns pointer events into gestures and gestures into batched
// note-store edits. It is not safe for concurrent use; the host delivers
// events from one goroutine in arrival order.
type Controller struct {
	store     NoteStore
	viewport  Viewport
	capture   Capturer
	transform Transform
	quantizer Quantizer
	selection *Selection
	mode      Mode

	laneHeight   float64
	lastVelocity int
	cursor       Cursor
	lastCommand  CommandID

	active  *live
	release func()

	onCommit   func(Gesture, CommandID)
	onAudition func(Note)
}

// live is the working state of the active gesture
type live struct {
	Gesture
	strategy  strategy
	originals []Note // targets as they were at pointer-down
	preview   []Note // targets as they would be if committed now
	lastX     float64
	lastY     float64
	velocity  int
}

// NewController validates opts and returns an idle controller
func NewController(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, configError("controller needs a note store")
	}
	if opts.Transform.pixelsPerTick <= 0 {
		return nil, configError("controller needs a transform")
	}
	if opts.Quantizer.resolution <= 0 {
		return nil, configError("controller needs a quantizer")
	}
	sel := opts.Selection
	if sel == nil {
		sel = NewSelection()
	}
	vel := opts.DefaultVelocity
	if vel <= 0 {
		vel = DefaultVelocity
	}
	if vel > MaxVelocity {
		return nil, configError("default velocity above 127")
	}
	lane := opts.LaneHeight
	if lane <= 0 {
		lane = DefaultLaneHeight
	}
	return &Controller{
		store:        opts.Store,
		viewport:     opts.Viewport,
		capture:      opts.Capture,
		transform:    opts.Transform,
		quantizer:    opts.Quantizer,
		selection:    sel,
		mode:         opts.Mode,
		laneHeight:   lane,
		lastVelocity: vel,
		cursor:       CursorFor(opts.Mode, Hit{}),
		onCommit:     opts.OnCommit,
		onAudition:   opts.OnAudition,
	}, nil
}

// OnPointerDown starts a gesture. It returns false when the event was
// ignored: a gesture is already active, or no gesture applies.
func (c *Controller) OnPointerDown(ev PointerEvent) bool {
	if c.active != nil {
		return false
	}
	kind := Classify(c.mode, ev)
	if kind == None {
		return false
	}
	g := &live{
		Gesture: Gesture{
			Kind:   kind,
			Anchor: c.point(ev),
		},
		strategy: strategies[kind],
		lastX:    ev.ScreenX,
		lastY:    ev.ScreenY,
	}
	c.active = g
	if c.capture != nil {
		c.release = c.capture.Capture()
	}
	g.strategy.start(c, g, ev)
	debug.Log("gesture", "start %s mode=%s tick=%.1f pitch=%d targets=%v", kind, c.mode, g.Anchor.Tick, g.Anchor.Pitch, g.TargetIDs)
	return true
}

// OnPointerMove updates the active gesture, or the hover cursor when idle
func (c *Controller) OnPointerMove(ev PointerEvent) bool {
	if c.active == nil {
		if ev.Region == RegionNotes {
			c.cursor = CursorFor(c.mode, ev.Hit)
		} else {
			c.cursor = CursorDefault
		}
		return true
	}
	c.active.strategy.move(c, c.active, ev)
	return true
}

// OnPointerUp commits the active gesture. It returns false when no gesture
// was active.
func (c *Controller) OnPointerUp(ev PointerEvent) bool {
	if c.active == nil {
		return false
	}
	c.finish(&ev)
	return true
}

// Cancel ends the active gesture without committing, e.g. when the host
// loses pointer capture
func (c *Controller) Cancel() {
	if c.active == nil {
		return
	}
	c.finish(nil)
}

// finish is the single exit path for a gesture; it always releases the
// pointer capture.
func (c *Controller) finish(ev *PointerEvent) {
	g := c.active
	c.active = nil
	defer c.releaseCapture()

	if ev == nil {
		if g.Kind == BoxSelect {
			c.selection.SetBounds(nil)
		}
		debug.Log("gesture", "cancel %s", g.Kind)
		return
	}

	g.strategy.move(c, g, *ev)
	muts, ok := g.strategy.commit(c, g, *ev)
	if !ok {
		debug.Log("gesture", "discard %s", g.Kind)
		return
	}
	if len(muts) == 0 {
		debug.Log("gesture", "end %s (no edits)", g.Kind)
		return
	}
	cmd := c.store.ApplyBatch(muts)
	c.lastCommand = cmd
	debug.Log("gesture", "commit %s cmd=%d mutations=%d", g.Kind, cmd, len(muts))
	if c.onCommit != nil {
		c.onCommit(g.Gesture, cmd)
	}
}

func (c *Controller) releaseCapture() {
	if c.release != nil {
		release := c.release
		c.release = nil
		release()
	}
}

func (c *Controller) point(ev PointerEvent) Point {
	return Point{
		X:       ev.X,
		Y:       ev.Y,
		ScreenX: ev.ScreenX,
		ScreenY: ev.ScreenY,
		Tick:    c.transform.ToTime(ev.X),
		Pitch:   c.transform.ToPitch(ev.Y),
	}
}

func (c *Controller) maxPitch() int {
	return min(MaxNoteNumber, c.transform.NumberOfKeys()-1)
}

// SetMode switches the edit tool. An active gesture is cancelled and the
// selection is cleared.
func (c *Controller) SetMode(m Mode) {
	c.Cancel()
	c.mode = m
	c.cursor = CursorFor(m, Hit{})
	c.selection.Clear()
}

func (c *Controller) Mode() Mode { return c.mode }

// SetTransform installs a new transform after a zoom change
func (c *Controller) SetTransform(t Transform) {
	c.transform = t
}

func (c *Controller) Transform() Transform { return c.transform }

// SetQuantizer installs a new grid
func (c *Controller) SetQuantizer(q Quantizer) {
	c.quantizer = q
}

func (c *Controller) Quantizer() Quantizer { return c.quantizer }

func (c *Controller) Selection() *Selection { return c.selection }

// Subscribe forwards to the selection
func (c *Controller) Subscribe(fn func(*Selection)) (unsubscribe func()) {
	return c.selection.Subscribe(fn)
}

// Cursor is the current pointer-shape hint
func (c *Controller) Cursor() Cursor {
	if c.active != nil {
		return activeCursor[c.active.Kind]
	}
	return c.cursor
}

var activeCursor = map[Kind]Cursor{
	DrawNote:        CursorResizeEnd,
	MoveNotes:       CursorMove,
	ResizeNoteStart: CursorResizeStart,
	ResizeNoteEnd:   CursorResizeEnd,
	VelocityEdit:    CursorDefault,
	BoxSelect:       CursorCrosshair,
	ScrollDrag:      CursorGrab,
}

// Active returns a copy of the live gesture
func (c *Controller) Active() (Gesture, bool) {
	if c.active == nil {
		return Gesture{}, false
	}
	g := c.active.Gesture
	g.TargetIDs = append([]NoteID(nil), g.TargetIDs...)
	return g, true
}

// Preview returns the notes the active gesture would commit, for drawing
// over the stored notes. The draft of a DrawNote has ID DraftID.
func (c *Controller) Preview() []Note {
	if c.active == nil {
		return nil
	}
	return append([]Note(nil), c.active.preview...)
}

// LastCommand is the id of the most recent batch this controller applied
func (c *Controller) LastCommand() CommandID { return c.lastCommand }

// LastVelocity is the velocity a newly drawn note gets
func (c *Controller) LastVelocity() int { return c.lastVelocity }

// HitTest runs HitTest against the store with this controller's transform
func (c *Controller) HitTest(x, y, tolerance float64) Hit {
	return HitTest(c.transform, c.store.Events(AllTicks), x, y, tolerance)
}
