package track

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"gopkg.in/yaml.v3"

	"go-pianoroll/pianoroll"
)

// clip is the clipboard form of a set of notes. Ticks are relative to the
// earliest note so a paste can land anywhere.
type clip struct {
	Notes []pianoroll.Note `yaml:"notes,flow"`
}

// Copy serializes the given notes as YAML
func (t *Track) Copy(ids []pianoroll.NoteID) ([]byte, error) {
	var notes []pianoroll.Note
	for _, id := range ids {
		if n, ok := t.Note(id); ok && n.Valid() {
			notes = append(notes, n)
		}
	}
	if len(notes) == 0 {
		return nil, nil
	}
	sortNotes(notes)
	origin := notes[0].Tick
	for i := range notes {
		notes[i].Tick -= origin
	}
	data, err := yaml.Marshal(clip{Notes: notes})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("copy notes"))
	}
	return data, nil
}

// Paste creates the notes in data starting at atTick, as one command
func (t *Track) Paste(data []byte, atTick int) (pianoroll.CommandID, error) {
	var c clip
	if err := yaml.Unmarshal(data, &c); err != nil {
		return 0, fault.Wrap(err, fmsg.WithDesc("paste notes", "Clipboard does not contain notes"))
	}
	var muts []pianoroll.Mutation
	for _, n := range c.Notes {
		n.ID = 0
		n.Tick += atTick
		n.NoteNumber = min(max(n.NoteNumber, 0), pianoroll.MaxNoteNumber)
		n.Velocity = min(max(n.Velocity, 0), pianoroll.MaxVelocity)
		if !n.Valid() {
			continue
		}
		muts = append(muts, pianoroll.Create(n))
	}
	if len(muts) == 0 {
		return 0, nil
	}
	return t.ApplyBatch(muts), nil
}
