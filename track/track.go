package track

import (
	"sort"
	"sync"

	"go-pianoroll/debug"
	"go-pianoroll/pianoroll"
)

// Track is an in-memory note store. Batches are applied under one lock so
// readers never observe half a gesture. Each batch is one undo step.
type Track struct {
	mu      sync.RWMutex
	notes   map[pianoroll.NoteID]pianoroll.Note
	nextID  pianoroll.NoteID
	nextCmd pianoroll.CommandID

	undo []command
	redo []command

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// command is an applied batch together with the batch that reverts it
type command struct {
	id      pianoroll.CommandID
	forward []pianoroll.Mutation
	inverse []pianoroll.Mutation
}

// New creates an empty track
func New() *Track {
	return &Track{
		notes:      make(map[pianoroll.NoteID]pianoroll.Note),
		nextID:     1,
		nextCmd:    1,
		UpdateChan: make(chan struct{}, 1),
	}
}

// Events returns the notes overlapping r ordered by tick, then pitch, then id
func (t *Track) Events(r pianoroll.TickRange) []pianoroll.Note {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []pianoroll.Note
	for _, n := range t.notes {
		if r.Overlaps(n) {
			out = append(out, n)
		}
	}
	sortNotes(out)
	return out
}

// Note looks a note up by id
func (t *Track) Note(id pianoroll.NoteID) (pianoroll.Note, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.notes[id]
	return n, ok
}

// Len returns the number of notes
func (t *Track) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.notes)
}

// EndTick is the tick just past the last note
func (t *Track) EndTick() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	end := 0
	for _, n := range t.notes {
		end = max(end, n.End())
	}
	return end
}

// ApplyBatch applies muts as a single undoable command. Mutations naming
// unknown notes are skipped; a batch left with nothing to do records no
// command and returns the id of the latest one.
func (t *Track) ApplyBatch(muts []pianoroll.Mutation) pianoroll.CommandID {
	t.mu.Lock()
	forward, inverse := t.apply(muts)
	if len(forward) == 0 {
		last := t.nextCmd - 1
		t.mu.Unlock()
		debug.Log("track", "empty batch ignored")
		return last
	}
	id := t.nextCmd
	t.nextCmd++
	t.undo = append(t.undo, command{id: id, forward: forward, inverse: inverse})
	t.redo = nil
	t.mu.Unlock()

	debug.Log("track", "batch cmd=%d mutations=%d", id, len(forward))
	t.notify()
	return id
}

// apply runs a batch and returns it with created ids filled in, plus its
// inverse. Caller holds the lock.
func (t *Track) apply(muts []pianoroll.Mutation) (forward, inverse []pianoroll.Mutation) {
	for _, m := range muts {
		switch m.Kind {
		case pianoroll.CreateNote:
			n := m.Note
			if m.ID > 0 {
				n.ID = m.ID // redo re-creates with the original id
			} else {
				n.ID = t.nextID
			}
			if n.ID >= t.nextID {
				t.nextID = n.ID + 1
			}
			t.notes[n.ID] = n
			forward = append(forward, pianoroll.Mutation{Kind: pianoroll.CreateNote, ID: n.ID, Note: n})
			inverse = append(inverse, pianoroll.Delete(n.ID))

		case pianoroll.DeleteNote:
			n, ok := t.notes[m.ID]
			if !ok {
				continue
			}
			delete(t.notes, m.ID)
			forward = append(forward, m)
			inverse = append(inverse, pianoroll.Mutation{Kind: pianoroll.CreateNote, ID: n.ID, Note: n})

		case pianoroll.UpdateNote:
			n, ok := t.notes[m.ID]
			if !ok {
				continue
			}
			t.notes[m.ID] = m.Apply(n)
			forward = append(forward, m)
			inverse = append(inverse, pianoroll.Update(m.ID, n, m.Fields))
		}
	}
	// Undo replays the inverse back to front
	for i, j := 0, len(inverse)-1; i < j; i, j = i+1, j-1 {
		inverse[i], inverse[j] = inverse[j], inverse[i]
	}
	return forward, inverse
}

// Undo reverts the most recent command. It returns false when there is
// nothing to undo.
func (t *Track) Undo() (pianoroll.CommandID, bool) {
	t.mu.Lock()
	if len(t.undo) == 0 {
		t.mu.Unlock()
		return 0, false
	}
	cmd := t.undo[len(t.undo)-1]
	t.undo = t.undo[:len(t.undo)-1]
	t.apply(cmd.inverse)
	t.redo = append(t.redo, cmd)
	t.mu.Unlock()

	debug.Log("track", "undo cmd=%d", cmd.id)
	t.notify()
	return cmd.id, true
}

// Redo re-applies the most recently undone command
func (t *Track) Redo() (pianoroll.CommandID, bool) {
	t.mu.Lock()
	if len(t.redo) == 0 {
		t.mu.Unlock()
		return 0, false
	}
	cmd := t.redo[len(t.redo)-1]
	t.redo = t.redo[:len(t.redo)-1]
	t.apply(cmd.forward)
	t.undo = append(t.undo, cmd)
	t.mu.Unlock()

	debug.Log("track", "redo cmd=%d", cmd.id)
	t.notify()
	return cmd.id, true
}

// DeleteIDs removes the given notes as one command
func (t *Track) DeleteIDs(ids []pianoroll.NoteID) pianoroll.CommandID {
	muts := make([]pianoroll.Mutation, len(ids))
	for i, id := range ids {
		muts[i] = pianoroll.Delete(id)
	}
	return t.ApplyBatch(muts)
}

func (t *Track) notify() {
	select {
	case t.UpdateChan <- struct{}{}:
	default:
	}
}

func sortNotes(notes []pianoroll.Note) {
	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.Tick != b.Tick {
			return a.Tick < b.Tick
		}
		if a.NoteNumber != b.NoteNumber {
			return a.NoteNumber < b.NoteNumber
		}
		return a.ID < b.ID
	})
}
