package pianoroll

import "math"

// strategy is the per-kind gesture protocol. commit returns the batch to
// apply and false when the gesture is discarded.
type strategy struct {
	start  func(c *Controller, g *live, ev PointerEvent)
	move   func(c *Controller, g *live, ev PointerEvent)
	commit func(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool)
}

// New gesture kinds are a Kind constant plus an entry here.
var strategies = map[Kind]strategy{
	DrawNote:        {drawStart, drawMove, drawCommit},
	MoveNotes:       {moveStart, moveMove, moveCommit},
	ResizeNoteStart: {resizeStart, resizeStartMove, resizeCommit},
	ResizeNoteEnd:   {resizeStart, resizeEndMove, resizeCommit},
	VelocityEdit:    {velocityStart, velocityMove, velocityCommit},
	BoxSelect:       {boxStart, boxMove, boxCommit},
	ScrollDrag:      {scrollStart, scrollMove, scrollCommit},
}

// ─── DrawNote ───

func drawStart(c *Controller, g *live, ev PointerEvent) {
	tick := max(0, c.quantizer.snapTick(g.Anchor.Tick))
	pitch := clampInt(g.Anchor.Pitch, 0, c.maxPitch())
	draft := Note{
		ID:         DraftID,
		Tick:       tick,
		Duration:   c.quantizer.Unit(),
		NoteNumber: pitch,
		Velocity:   c.lastVelocity,
	}
	g.preview = []Note{draft}
	c.audition(draft)
}

func drawMove(c *Controller, g *live, ev PointerEvent) {
	draft := &g.preview[0]
	end := c.quantizer.snapTick(c.transform.ToTime(ev.X))
	draft.Duration = max(c.quantizer.Unit(), end-draft.Tick)
}

func drawCommit(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool) {
	// the raw release decides; the duration was already floored to one unit
	if c.transform.ToTime(ev.X) <= g.Anchor.Tick {
		return nil, false
	}
	draft := g.preview[0]
	draft.ID = 0
	return []Mutation{Create(draft)}, true
}

// ─── MoveNotes / Resize ───

// grab applies the click-selection rule and snapshots the targets
func grab(c *Controller, g *live, ev PointerEvent) {
	id := ev.Hit.ID
	if !c.selection.Contains(id) {
		if ev.Mods.MultiSelect() {
			c.selection.Select([]NoteID{id}, Add)
		} else {
			c.selection.Select([]NoteID{id}, Replace)
		}
	}
}

func (c *Controller) snapshot(g *live, ids []NoteID) {
	want := make(map[NoteID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	g.TargetIDs = g.TargetIDs[:0]
	g.originals = g.originals[:0]
	for _, n := range c.store.Events(AllTicks) {
		if want[n.ID] && n.Valid() {
			g.TargetIDs = append(g.TargetIDs, n.ID)
			g.originals = append(g.originals, n)
		}
	}
	g.preview = append([]Note(nil), g.originals...)
}

func moveStart(c *Controller, g *live, ev PointerEvent) {
	grab(c, g, ev)
	c.snapshot(g, c.selection.IDs())
}

func moveMove(c *Controller, g *live, ev PointerEvent) {
	if len(g.originals) == 0 {
		return
	}
	dTick := c.quantizer.snapTick(c.transform.ToTime(ev.X) - g.Anchor.Tick)
	dPitch := c.transform.ToPitch(ev.Y) - g.Anchor.Pitch

	// Clamp the delta for the whole group so it moves rigidly
	minTick, minPitch, maxPitch := math.MaxInt, math.MaxInt, math.MinInt
	for _, n := range g.originals {
		minTick = min(minTick, n.Tick)
		minPitch = min(minPitch, n.NoteNumber)
		maxPitch = max(maxPitch, n.NoteNumber)
	}
	dTick = max(dTick, -minTick)
	dPitch = clampInt(dPitch, -minPitch, c.maxPitch()-maxPitch)

	changed := g.preview[0].NoteNumber != g.originals[0].NoteNumber+dPitch
	for i, n := range g.originals {
		g.preview[i].Tick = n.Tick + dTick
		g.preview[i].NoteNumber = n.NoteNumber + dPitch
	}
	if changed {
		c.audition(g.preview[0])
	}
}

func moveCommit(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool) {
	var muts []Mutation
	for i, n := range g.preview {
		o := g.originals[i]
		if n.Tick == o.Tick && n.NoteNumber == o.NoteNumber {
			continue
		}
		muts = append(muts, Update(n.ID, n, FieldTick|FieldNoteNumber))
	}
	if len(muts) > 0 {
		c.lastVelocity = g.preview[0].Velocity
	}
	return muts, true
}

func resizeStart(c *Controller, g *live, ev PointerEvent) {
	grab(c, g, ev)
	c.snapshot(g, []NoteID{ev.Hit.ID})
}

func resizeEndMove(c *Controller, g *live, ev PointerEvent) {
	if len(g.originals) == 0 {
		return
	}
	n := &g.preview[0]
	end := c.quantizer.snapTick(c.transform.ToTime(ev.X))
	n.Duration = max(c.quantizer.Unit(), end-n.Tick)
}

func resizeStartMove(c *Controller, g *live, ev PointerEvent) {
	if len(g.originals) == 0 {
		return
	}
	o := g.originals[0]
	end := o.End()
	start := c.quantizer.snapTick(c.transform.ToTime(ev.X))
	start = max(0, min(start, end-c.quantizer.Unit()))
	n := &g.preview[0]
	n.Tick = start
	n.Duration = end - start
}

func resizeCommit(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool) {
	if len(g.originals) == 0 {
		return nil, true
	}
	n, o := g.preview[0], g.originals[0]
	if n.Tick == o.Tick && n.Duration == o.Duration {
		return nil, true
	}
	c.lastVelocity = n.Velocity
	return []Mutation{Update(n.ID, n, FieldTick|FieldDuration)}, true
}

// ─── VelocityEdit ───

func (c *Controller) velocityAt(y float64) int {
	v := int(math.Round((1 - y/c.laneHeight) * MaxVelocity))
	return clampInt(v, 0, MaxVelocity)
}

func velocityStart(c *Controller, g *live, ev PointerEvent) {
	column := NotesInColumn(c.store.Events(AllTicks), g.Anchor.Tick)
	ids := make([]NoteID, len(column))
	for i, n := range column {
		ids[i] = n.ID
	}
	c.snapshot(g, ids)
	velocityMove(c, g, ev)
}

func velocityMove(c *Controller, g *live, ev PointerEvent) {
	g.velocity = c.velocityAt(ev.Y)
	for i := range g.preview {
		g.preview[i].Velocity = g.velocity
	}
}

func velocityCommit(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool) {
	var muts []Mutation
	for i, n := range g.preview {
		if n.Velocity == g.originals[i].Velocity {
			continue
		}
		muts = append(muts, Update(n.ID, n, FieldVelocity))
	}
	if len(g.preview) > 0 {
		c.lastVelocity = g.velocity
	}
	return muts, true
}

// ─── BoxSelect ───

func boxStart(c *Controller, g *live, ev PointerEvent) {
	b := NewBounds(g.Anchor.Tick, g.Anchor.Tick, g.Anchor.Pitch, g.Anchor.Pitch)
	c.selection.SetBounds(&b)
}

func boxMove(c *Controller, g *live, ev PointerEvent) {
	b := NewBounds(g.Anchor.Tick, c.transform.ToTime(ev.X), g.Anchor.Pitch, c.transform.ToPitch(ev.Y))
	c.selection.SetBounds(&b)
}

// boxCommit resolves membership once, here, rather than on every move
func boxCommit(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool) {
	b, ok := c.selection.Bounds()
	var ids []NoteID
	if ok {
		for _, n := range c.store.Events(AllTicks) {
			if n.Valid() && b.Intersects(n) {
				ids = append(ids, n.ID)
			}
		}
	}
	// bounds go first so subscribers never see the result while dragging
	c.selection.SetBounds(nil)
	c.selection.Select(ids, Replace)
	return nil, true
}

// ─── ScrollDrag ───

func scrollStart(c *Controller, g *live, ev PointerEvent) {}

// scrollMove scrolls the view opposite to the pointer so the content
// follows the hand
func scrollMove(c *Controller, g *live, ev PointerEvent) {
	dx, dy := ev.ScreenX-g.lastX, ev.ScreenY-g.lastY
	g.lastX, g.lastY = ev.ScreenX, ev.ScreenY
	if c.viewport == nil || (dx == 0 && dy == 0) {
		return
	}
	c.viewport.ScrollBy(-dx, -dy)
}

func scrollCommit(c *Controller, g *live, ev PointerEvent) ([]Mutation, bool) {
	return nil, true
}

func (c *Controller) audition(n Note) {
	if c.onAudition != nil && n.Valid() {
		c.onAudition(n)
	}
}
