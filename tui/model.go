package tui

import (
	"fmt"

	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/midi"
	"go-pianoroll/pianoroll"
	"go-pianoroll/player"
	"go-pianoroll/theme"
	"go-pianoroll/track"
)

// cellPx is the size of one terminal cell in roll pixels, both ways
const cellPx = 4.0

// keyW is the width of the key label column
const keyW = 5

const (
	minTicksPerCell = 15
	maxTicksPerCell = 1920
)

// layout holds cached screen geometry
type layout struct {
	width, height int
	rollTop       int
	rollRows      int
	laneTop       int
	laneRows      int
	cols          int
}

const rulerRow = 1

// header, ruler, roll, separator, lane, help, status
func computeLayout(w, h, laneRows int) layout {
	rollRows := max(1, h-5-laneRows)
	return layout{
		width:    w,
		height:   h,
		rollTop:  2,
		rollRows: rollRows,
		laneTop:  2 + rollRows + 1,
		laneRows: laneRows,
		cols:     max(1, w-keyW),
	}
}

// uiState is shared between copies of Model
type uiState struct {
	layout       layout
	vp           *viewport
	capture      *capture
	ticksPerCell int
	pressRegion  pianoroll.Region
	pressButton  pianoroll.Button
	clipboard    []byte
	status       string
	port         string
	centered     bool
}

type Model struct {
	Track     *track.Track
	Player    *player.Player
	Ports     *midi.PortManager // nil disables port hot-plug
	Previewer *midi.Previewer   // nil disables note preview
	Theme     *theme.Theme
	Ctrl      *pianoroll.Controller

	cfg      *config.Config
	ui       *uiState
	keys     keyMap
	help     help.Model
	showHelp bool
	quitting bool
}

type UpdateMsg struct{}

type PlayheadMsg int

type PortEventMsg midi.PortEvent

func NewModel(cfg *config.Config, tr *track.Track, pl *player.Player, ports *midi.PortManager, pv *midi.Previewer, th *theme.Theme) (Model, error) {
	ui := &uiState{
		vp:           &viewport{},
		capture:      &capture{},
		ticksPerCell: cfg.Editor.TicksPerCell,
	}
	t, err := pianoroll.NewTransform(cellPx/float64(ui.ticksPerCell), cellPx, cfg.Editor.NumberOfKeys)
	if err != nil {
		return Model{}, err
	}
	q, err := pianoroll.NewQuantizer(cfg.Editor.Resolution, cfg.Editor.Quantize)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		Track:     tr,
		Player:    pl,
		Ports:     ports,
		Previewer: pv,
		Theme:     th,
		cfg:       cfg,
		ui:        ui,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}

	ctrl, err := pianoroll.NewController(pianoroll.Options{
		Store:           tr,
		Transform:       t,
		Quantizer:       q,
		Viewport:        ui.vp,
		Capture:         ui.capture,
		Mode:            pianoroll.ModePencil,
		DefaultVelocity: cfg.Editor.DefaultVelocity,
		LaneHeight:      float64(max(1, cfg.UI.VelocityLaneRows)) * cellPx,
		OnCommit: func(g pianoroll.Gesture, cmd pianoroll.CommandID) {
			ui.status = fmt.Sprintf("%s (#%d)", g.Kind, cmd)
		},
		OnAudition: func(n pianoroll.Note) {
			if pv != nil {
				pv.Preview(n)
			}
		},
	})
	if err != nil {
		return Model{}, err
	}
	m.Ctrl = ctrl
	m.resize(80, 24)
	return m, nil
}

func ListenForUpdates(tr *track.Track) tea.Cmd {
	return func() tea.Msg {
		<-tr.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForPlayhead(pl *player.Player) tea.Cmd {
	return func() tea.Msg {
		return PlayheadMsg(<-pl.PositionChan)
	}
}

func ListenForPorts(ports *midi.PortManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ports.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Track), ListenForPlayhead(m.Player)}
	if m.Ports != nil {
		cmds = append(cmds, ListenForPorts(m.Ports))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.Ctrl.Cancel()
			m.Player.Stop()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = !m.showHelp
			return m, nil
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		m.loseCapture()

	case UpdateMsg:
		return m, ListenForUpdates(m.Track)

	case PlayheadMsg:
		if m.cfg.Editor.AutoScroll {
			pianoroll.Follow(m.ui.vp, m.Ctrl.Transform(), m.Player)
		}
		return m, ListenForPlayhead(m.Player)

	case PortEventMsg:
		m.handlePort(midi.PortEvent(msg))
		return m, ListenForPorts(m.Ports)
	}

	return m, nil
}

func (m *Model) resize(w, h int) {
	ui := m.ui
	ui.layout = computeLayout(w, h, m.cfg.UI.VelocityLaneRows)
	t := m.Ctrl.Transform()
	ui.vp.width = float64(ui.layout.cols) * cellPx
	ui.vp.height = float64(ui.layout.rollRows) * cellPx
	ui.vp.maxY = t.MaxY()
	if !ui.centered {
		// start with middle C in the middle of the roll
		ui.vp.y = t.Y(float64(60)) - float64(ui.layout.rollRows/2)*cellPx
		ui.centered = true
	}
	ui.vp.ScrollBy(0, 0)
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	ui := m.ui
	sel := m.Ctrl.Selection()

	switch {
	case key.Matches(msg, m.keys.Tool):
		m.toggleMode()

	case key.Matches(msg, m.keys.Play):
		if m.Player.IsPlaying() {
			m.Player.Stop()
		} else {
			m.Player.Play()
		}

	case key.Matches(msg, m.keys.Delete):
		ids := sel.IDs()
		if len(ids) == 0 {
			return
		}
		m.Ctrl.Cancel()
		cmd := m.Track.DeleteIDs(ids)
		sel.Clear()
		ui.status = fmt.Sprintf("deleted %d (#%d)", len(ids), cmd)

	case key.Matches(msg, m.keys.Undo):
		m.Ctrl.Cancel()
		if cmd, ok := m.Track.Undo(); ok {
			m.pruneSelection()
			ui.status = fmt.Sprintf("undo #%d", cmd)
		}

	case key.Matches(msg, m.keys.Redo):
		m.Ctrl.Cancel()
		if cmd, ok := m.Track.Redo(); ok {
			m.pruneSelection()
			ui.status = fmt.Sprintf("redo #%d", cmd)
		}

	case key.Matches(msg, m.keys.Copy):
		data, err := m.Track.Copy(sel.IDs())
		if err != nil {
			m.fail(err)
			return
		}
		ui.clipboard = data
		ui.status = fmt.Sprintf("copied %d", sel.Len())

	case key.Matches(msg, m.keys.Paste):
		if ui.clipboard == nil {
			return
		}
		at := int(m.Ctrl.Quantizer().Quantize(float64(m.Player.CurrentTick())))
		cmd, err := m.Track.Paste(ui.clipboard, at)
		if err != nil {
			m.fail(err)
			return
		}
		ui.status = fmt.Sprintf("pasted at %d (#%d)", at, cmd)

	case key.Matches(msg, m.keys.SelectAll):
		var ids []pianoroll.NoteID
		for _, n := range m.Track.Events(pianoroll.AllTicks) {
			ids = append(ids, n.ID)
		}
		sel.Select(ids, pianoroll.Replace)

	case key.Matches(msg, m.keys.Cancel):
		if _, active := m.Ctrl.Active(); active {
			m.Ctrl.Cancel()
		} else {
			sel.Clear()
		}

	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(ui.ticksPerCell / 2)

	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(ui.ticksPerCell * 2)

	case key.Matches(msg, m.keys.Quantize):
		q := m.Ctrl.Quantizer()
		m.Ctrl.SetQuantizer(q.WithEnabled(!q.Enabled()))

	case key.Matches(msg, m.keys.TempoUp):
		m.Player.SetTempo(m.Player.Tempo() + 5)

	case key.Matches(msg, m.keys.TempoDown):
		m.Player.SetTempo(m.Player.Tempo() - 5)

	case key.Matches(msg, m.keys.Left):
		ui.vp.ScrollBy(-4*cellPx, 0)
	case key.Matches(msg, m.keys.Right):
		ui.vp.ScrollBy(4*cellPx, 0)
	case key.Matches(msg, m.keys.Up):
		ui.vp.ScrollBy(0, -cellPx)
	case key.Matches(msg, m.keys.Down):
		ui.vp.ScrollBy(0, cellPx)

	default:
		debug.Log("input", "unbound key %q", msg.String())
	}
}

func (m *Model) toggleMode() {
	next := pianoroll.ModeSelect
	if m.Ctrl.Mode() == pianoroll.ModeSelect {
		next = pianoroll.ModePencil
	}
	m.Ctrl.SetMode(next)
	m.ui.status = "tool: " + next.String()
}

// zoom keeps the tick at the left edge in place
func (m *Model) zoom(ticksPerCell int) {
	ticksPerCell = min(max(ticksPerCell, minTicksPerCell), maxTicksPerCell)
	if ticksPerCell == m.ui.ticksPerCell {
		return
	}
	old := m.Ctrl.Transform()
	t, err := old.Zoom(float64(m.ui.ticksPerCell) / float64(ticksPerCell))
	if err != nil {
		m.fail(err)
		return
	}
	m.Ctrl.Cancel()
	left := old.ToTime(m.ui.vp.x)
	m.Ctrl.SetTransform(t)
	m.ui.ticksPerCell = ticksPerCell
	m.ui.vp.x = t.X(left)
}

// pruneSelection drops ids an undo or redo removed
func (m *Model) pruneSelection() {
	sel := m.Ctrl.Selection()
	var gone []pianoroll.NoteID
	for _, id := range sel.IDs() {
		if _, ok := m.Track.Note(id); !ok {
			gone = append(gone, id)
		}
	}
	if len(gone) > 0 {
		sel.Select(gone, pianoroll.Subtract)
	}
}

func (m *Model) handlePort(ev midi.PortEvent) {
	ui := m.ui
	switch ev.Type {
	case midi.PortConnected:
		if ui.port != "" {
			return
		}
		if want := m.cfg.MIDI.PreviewPort; want != "" && want != ev.Name {
			return
		}
		send, err := m.Ports.Sender(ev.Name)
		if err != nil {
			m.fail(err)
			return
		}
		ui.port = ev.Name
		m.Player.SetSender(send)
		if m.Previewer != nil {
			m.Previewer.SetSender(send)
		}
		ui.status = "MIDI out: " + ev.Name
	case midi.PortDisconnected:
		if ev.Name != ui.port {
			return
		}
		ui.port = ""
		m.Player.SetSender(nil)
		if m.Previewer != nil {
			m.Previewer.SetSender(nil)
		}
		ui.status = "MIDI out disconnected: " + ev.Name
	}
}

func (m *Model) fail(err error) {
	debug.Log("tui", "error: %v", err)
	if issue := fmsg.GetIssue(err); issue != "" {
		m.ui.status = issue
		return
	}
	m.ui.status = err.Error()
}
