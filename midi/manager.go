package midi

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-pianoroll/debug"
)

// scanTimeout bounds a port listing; CoreMIDI can hang
const scanTimeout = 3 * time.Second

// PortManager tracks MIDI output ports and reports hot-plug changes
type PortManager struct {
	ports    map[string]bool
	mu       sync.RWMutex
	events   chan PortEvent
	pollRate time.Duration

	// list returns the current output port names, ok=false on timeout
	list func() ([]string, bool)
}

// NewPortManager creates a manager backed by the system MIDI driver
func NewPortManager() *PortManager {
	return &PortManager{
		ports:    make(map[string]bool),
		events:   make(chan PortEvent, 16),
		pollRate: time.Second,
		list:     listOutPorts,
	}
}

// Events returns a channel of port connect/disconnect events
func (pm *PortManager) Events() <-chan PortEvent {
	return pm.events
}

// Ports returns the known output port names, sorted
func (pm *PortManager) Ports() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	names := make([]string, 0, len(pm.ports))
	for name := range pm.ports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run starts the polling loop (blocking - run in goroutine)
func (pm *PortManager) Run(ctx context.Context) {
	ticker := time.NewTicker(pm.pollRate)
	defer ticker.Stop()

	pm.scan()

	for {
		select {
		case <-ctx.Done():
			close(pm.events)
			return
		case <-ticker.C:
			pm.scan()
		}
	}
}

// Scan polls the ports once and returns them
func (pm *PortManager) Scan() []string {
	pm.scan()
	return pm.Ports()
}

func (pm *PortManager) scan() {
	names, ok := pm.list()
	if !ok {
		debug.Log("midi", "port scan timed out")
		return
	}

	seen := make(map[string]bool, len(names))
	var changes []PortEvent

	pm.mu.Lock()
	for _, name := range names {
		seen[name] = true
		if !pm.ports[name] {
			pm.ports[name] = true
			changes = append(changes, PortEvent{Type: PortConnected, Name: name})
		}
	}
	for name := range pm.ports {
		if !seen[name] {
			delete(pm.ports, name)
			changes = append(changes, PortEvent{Type: PortDisconnected, Name: name})
		}
	}
	pm.mu.Unlock()

	for _, ev := range changes {
		debug.Log("midi", "port %s: %s", ev.Type, ev.Name)
		select {
		case pm.events <- ev:
		default:
			debug.Log("midi", "event dropped: %s %s", ev.Type, ev.Name)
		}
	}
}

// Sender opens the named output port. An empty name picks the first port.
func (pm *PortManager) Sender(name string) (func(gomidi.Message) error, error) {
	if name == "" {
		ports := pm.Ports()
		if len(ports) == 0 {
			return nil, fault.New("no MIDI output ports", ftag.With(ftag.NotFound),
				fmsg.WithDesc("no MIDI output ports", "No MIDI output is available"))
		}
		name = ports[0]
	}

	out, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, fault.Wrap(err, ftag.With(ftag.NotFound),
			fmsg.WithDesc("find out port "+name, "MIDI output \""+name+"\" was not found"))
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("open out port "+name))
	}
	debug.Log("midi", "opened %s", name)
	return send, nil
}

func listOutPorts() ([]string, bool) {
	ch := make(chan []string, 1)
	go func() {
		var names []string
		for _, p := range gomidi.GetOutPorts() {
			names = append(names, p.String())
		}
		ch <- names
	}()

	select {
	case names := <-ch:
		return names, true
	case <-time.After(scanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, false
	}
}
