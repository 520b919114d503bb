package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
	"go-pianoroll/pianoroll"
)

// PPQ is ticks per quarter note
const PPQ = 480

// tickInterval is the clock resolution of the play loop
const tickInterval = 5 * time.Millisecond

// Source is the note store read during playback
type Source interface {
	Events(r pianoroll.TickRange) []pianoroll.Note
}

// Sender writes one MIDI message, as returned by gomidi.SendTo
type Sender func(msg gomidi.Message) error

// Player plays a track over MIDI and reports the playback position.
// The editor only reads the position from it.
type Player struct {
	source  Source
	send    Sender
	channel uint8

	mu      sync.Mutex
	tempo   int
	playing bool
	pos     float64       // ticks, fractional between clock steps
	held    map[uint8]int // sounding key -> end tick
	stop    chan struct{}

	// Notify TUI of position changes
	PositionChan chan int
}

// New creates a stopped player at tick 0. send may be nil (silent).
func New(source Source, send Sender, channel uint8, tempo int) (*Player, error) {
	if tempo <= 0 {
		msg := fmt.Sprintf("tempo must be positive, got %d", tempo)
		return nil, fault.New(msg, ftag.With(ftag.InvalidArgument), fmsg.WithDesc(msg, "Invalid tempo"))
	}
	if channel > 15 {
		msg := fmt.Sprintf("MIDI channel must be 0-15, got %d", channel)
		return nil, fault.New(msg, ftag.With(ftag.InvalidArgument), fmsg.WithDesc(msg, "Invalid MIDI channel"))
	}
	return &Player{
		source:       source,
		send:         send,
		channel:      channel,
		tempo:        tempo,
		held:         make(map[uint8]int),
		PositionChan: make(chan int, 1),
	}, nil
}

// SetSender swaps the MIDI output, e.g. after a port hot-plug
func (p *Player) SetSender(send Sender) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

// Play starts the clock goroutine
func (p *Player) Play() {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = true
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	debug.Log("player", "play from %d", p.CurrentTick())
	go p.playLoop(stop)
}

// Stop halts playback and silences sounding notes
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	close(p.stop)
	var msgs []gomidi.Message
	for key := range p.held {
		msgs = append(msgs, gomidi.NoteOff(p.channel, key))
		delete(p.held, key)
	}
	send := p.send
	p.mu.Unlock()

	debug.Log("player", "stop at %d", p.CurrentTick())
	p.flush(send, msgs)
}

// Seek moves the playhead. It is refused while playing.
func (p *Player) Seek(tick int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return false
	}
	p.pos = float64(max(0, tick))
	return true
}

// CurrentTick is the playhead position
func (p *Player) CurrentTick() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.pos)
}

// IsPlaying reports whether the clock is running
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// SetTempo changes the tempo, clamped to 20-300 bpm
func (p *Player) SetTempo(bpm int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tempo = min(max(bpm, 20), 300)
}

func (p *Player) Tempo() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tempo
}

// Advance moves the playhead by d of wall time and sends the note-offs and
// note-ons that fall inside the step
func (p *Player) Advance(d time.Duration) {
	p.step(d, nil)
}

// step is Advance for the clock goroutine started with stop. A tick that
// lost the race with Stop, or belongs to an earlier Play, does nothing.
func (p *Player) step(d time.Duration, stop chan struct{}) {
	p.mu.Lock()
	if stop != nil && (!p.playing || p.stop != stop) {
		p.mu.Unlock()
		return
	}
	from := p.pos
	to := from + d.Seconds()*float64(p.tempo)/60*PPQ
	p.pos = to

	var msgs []gomidi.Message
	r := pianoroll.TickRange{From: int(from), To: int(to) + 1}
	for _, n := range p.source.Events(r) {
		start := float64(n.Tick)
		if !n.Valid() || start < from || start >= to {
			continue
		}
		key := uint8(n.NoteNumber)
		if _, sounding := p.held[key]; sounding {
			msgs = append(msgs, gomidi.NoteOff(p.channel, key))
		}
		msgs = append(msgs, gomidi.NoteOn(p.channel, key, uint8(n.Velocity)))
		p.held[key] = n.End()
	}
	for key, end := range p.held {
		if float64(end) <= to {
			msgs = append(msgs, gomidi.NoteOff(p.channel, key))
			delete(p.held, key)
		}
	}
	send := p.send
	p.mu.Unlock()

	p.flush(send, msgs)

	select {
	case p.PositionChan <- int(to):
	default:
	}
}

func (p *Player) flush(send Sender, msgs []gomidi.Message) {
	if send == nil {
		return
	}
	for _, msg := range msgs {
		if err := send(msg); err != nil {
			debug.Log("player", "send %s: %v", msg, err)
		}
	}
}

func (p *Player) playLoop(stop chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			p.step(now.Sub(last), stop)
			last = now
		}
	}
}

// Run stops playback when ctx is done
func (p *Player) Run(ctx context.Context) {
	<-ctx.Done()
	p.Stop()
}
