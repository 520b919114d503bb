package midi

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
	"go-pianoroll/pianoroll"
)

// Previewer sounds a short note when one is drawn or moved to a new pitch
type Previewer struct {
	send    func(gomidi.Message) error
	channel uint8
	length  time.Duration

	mu      sync.Mutex
	pending map[uint8]*time.Timer

	afterFunc func(time.Duration, func()) *time.Timer
}

// NewPreviewer creates a previewer. A nil send makes it silent.
func NewPreviewer(send func(gomidi.Message) error, channel uint8, length time.Duration) *Previewer {
	return &Previewer{
		send:      send,
		channel:   channel & 0x0f,
		length:    length,
		pending:   make(map[uint8]*time.Timer),
		afterFunc: time.AfterFunc,
	}
}

// SetSender swaps the output port. Notes still sounding are ended on the
// old port first.
func (p *Previewer) SetSender(send func(gomidi.Message) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, t := range p.pending {
		t.Stop()
		delete(p.pending, key)
		p.write(gomidi.NoteOff(p.channel, key))
	}
	p.send = send
}

// Preview plays n for the preview length. Retriggering a sounding key
// restarts it.
func (p *Previewer) Preview(n pianoroll.Note) {
	if !n.Valid() {
		return
	}
	key := uint8(min(max(n.NoteNumber, 0), pianoroll.MaxNoteNumber))
	vel := uint8(min(max(n.Velocity, 1), pianoroll.MaxVelocity))

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.send == nil {
		return
	}
	if t, ok := p.pending[key]; ok {
		t.Stop()
		p.write(gomidi.NoteOff(p.channel, key))
	}
	p.write(gomidi.NoteOn(p.channel, key, vel))

	var timer *time.Timer
	timer = p.afterFunc(p.length, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.pending[key] != timer {
			return
		}
		delete(p.pending, key)
		p.write(gomidi.NoteOff(p.channel, key))
	})
	p.pending[key] = timer
}

func (p *Previewer) write(msg gomidi.Message) {
	if p.send == nil {
		return
	}
	if err := p.send(msg); err != nil {
		debug.Log("midi", "preview %s: %v", msg, err)
	}
}
