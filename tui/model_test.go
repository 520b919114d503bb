package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/pianoroll"
	"go-pianoroll/player"
	"go-pianoroll/theme"
	"go-pianoroll/track"
)

// 80x24 with the default 4-row lane: roll rows 2..16, lane rows 18..21
func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	tr := track.New()
	pl, err := player.New(tr, nil, 0, cfg.Player.Tempo)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(cfg, tr, pl, nil, nil, theme.New(nil))
	if err != nil {
		t.Fatal(err)
	}
	return update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pitchAtRow is the pitch drawn on roll row r
func pitchAtRow(m Model, r int) int {
	return 127 - int((m.ui.vp.y+float64(r)*cellPx+cellPx/2)/cellPx)
}

func TestLayout(t *testing.T) {
	m := newTestModel(t)
	l := m.ui.layout
	if l.rollTop != 2 || l.rollRows != 15 || l.laneTop != 18 || l.cols != 75 {
		t.Fatalf("layout=%+v", l)
	}
	if m.ui.vp.y != 240 {
		t.Fatalf("initial scroll y=%v want middle C centred", m.ui.vp.y)
	}
}

func TestDrawNoteWithMouse(t *testing.T) {
	m := newTestModel(t)
	row := 5
	m = update(m, mouse(keyW+2, m.ui.layout.rollTop+row, tea.MouseActionPress, tea.MouseButtonLeft))
	if !m.ui.capture.held {
		t.Fatal("capture not taken on press")
	}
	m = update(m, mouse(keyW+6, m.ui.layout.rollTop+row, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(m, mouse(keyW+6, m.ui.layout.rollTop+row, tea.MouseActionRelease, tea.MouseButtonNone))

	if m.ui.capture.held {
		t.Fatal("capture not released")
	}
	notes := m.Track.Events(pianoroll.AllTicks)
	if len(notes) != 1 {
		t.Fatalf("notes=%v", notes)
	}
	// column 2 = 9px = 270 ticks, snapped to 240; column 6 = 750 -> 720
	n := notes[0]
	if n.Tick != 240 || n.Duration != 480 || n.NoteNumber != pitchAtRow(m, row) || n.Velocity != 100 {
		t.Fatalf("note=%+v", n)
	}
}

func TestToolToggle(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Ctrl.Mode() != pianoroll.ModeSelect {
		t.Fatalf("mode=%s", m.Ctrl.Mode())
	}
	// right click in empty space toggles back
	m = update(m, mouse(keyW+1, m.ui.layout.rollTop+1, tea.MouseActionPress, tea.MouseButtonRight))
	if m.Ctrl.Mode() != pianoroll.ModePencil {
		t.Fatalf("mode=%s", m.Ctrl.Mode())
	}
}

func TestBoxSelectDeleteUndo(t *testing.T) {
	m := newTestModel(t)
	m.Track.ApplyBatch([]pianoroll.Mutation{
		pianoroll.Create(pianoroll.Note{Tick: 0, Duration: 120, NoteNumber: pitchAtRow(m, 5), Velocity: 90}),
		pianoroll.Create(pianoroll.Note{Tick: 240, Duration: 120, NoteNumber: pitchAtRow(m, 6), Velocity: 90}),
	})
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})

	top := m.ui.layout.rollTop
	m = update(m, mouse(keyW, top+4, tea.MouseActionPress, tea.MouseButtonLeft))
	if g, ok := m.Ctrl.Active(); !ok || g.Kind != pianoroll.BoxSelect {
		t.Fatalf("gesture=%v active=%v", g.Kind, ok)
	}
	m = update(m, mouse(keyW+10, top+6, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(m, mouse(keyW+10, top+6, tea.MouseActionRelease, tea.MouseButtonNone))
	if m.Ctrl.Selection().Len() != 2 {
		t.Fatalf("selected=%v", m.Ctrl.Selection().IDs())
	}

	m = update(m, runes("x"))
	if m.Track.Len() != 0 || m.Ctrl.Selection().Len() != 0 {
		t.Fatalf("after delete: notes=%d selected=%d", m.Track.Len(), m.Ctrl.Selection().Len())
	}
	m = update(m, runes("u"))
	if m.Track.Len() != 2 {
		t.Fatalf("after undo: notes=%d", m.Track.Len())
	}
}

func TestCopyPasteAtPlayhead(t *testing.T) {
	m := newTestModel(t)
	m.Track.ApplyBatch([]pianoroll.Mutation{
		pianoroll.Create(pianoroll.Note{Tick: 120, Duration: 120, NoteNumber: 60, Velocity: 90}),
	})
	m = update(m, runes("a"))
	m = update(m, runes("c"))
	m.Player.Seek(960)
	m = update(m, runes("v"))

	notes := m.Track.Events(pianoroll.AllTicks)
	if len(notes) != 2 || notes[1].Tick != 960 || notes[1].NoteNumber != 60 {
		t.Fatalf("notes=%+v", notes)
	}
}

func TestRulerSeek(t *testing.T) {
	m := newTestModel(t)
	m = update(m, mouse(keyW+3, rulerRow, tea.MouseActionPress, tea.MouseButtonLeft))
	if got := m.Player.CurrentTick(); got != 360 {
		t.Fatalf("tick=%d", got)
	}
}

func TestMiddleDragScrolls(t *testing.T) {
	m := newTestModel(t)
	m.ui.vp.x = 40
	m = update(m, mouse(20, 10, tea.MouseActionPress, tea.MouseButtonMiddle))
	m = update(m, mouse(16, 10, tea.MouseActionMotion, tea.MouseButtonMiddle))
	// content follows the hand: dragging left scrolls right
	if m.ui.vp.x != 56 {
		t.Fatalf("x=%v", m.ui.vp.x)
	}
	m = update(m, mouse(16, 10, tea.MouseActionRelease, tea.MouseButtonNone))
	if _, ok := m.Ctrl.Active(); ok {
		t.Fatal("scroll drag still active")
	}
}

func TestDragOffRollStaysWithGesture(t *testing.T) {
	m := newTestModel(t)
	top := m.ui.layout.rollTop
	m = update(m, mouse(keyW+2, top+5, tea.MouseActionPress, tea.MouseButtonLeft))
	// over the key column and then the help line
	m = update(m, mouse(1, top+5, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(m, mouse(keyW+6, 23, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(m, mouse(keyW+6, 23, tea.MouseActionRelease, tea.MouseButtonNone))

	notes := m.Track.Events(pianoroll.AllTicks)
	if len(notes) != 1 || notes[0].Duration != 480 || notes[0].NoteNumber != pitchAtRow(m, 5) {
		t.Fatalf("notes=%+v", notes)
	}
	if m.ui.capture.held {
		t.Fatal("capture held after release")
	}
}

func TestFocusLossCancelsGesture(t *testing.T) {
	m := newTestModel(t)
	top := m.ui.layout.rollTop
	m = update(m, mouse(keyW+2, top+5, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(m, mouse(keyW+6, top+5, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(m, tea.BlurMsg{})

	if _, ok := m.Ctrl.Active(); ok {
		t.Fatal("gesture survived focus loss")
	}
	if m.ui.capture.held {
		t.Fatal("capture still held")
	}
	// the release arriving after refocus must not commit anything
	m = update(m, mouse(keyW+6, top+5, tea.MouseActionRelease, tea.MouseButtonNone))
	if m.Track.Len() != 0 {
		t.Fatalf("notes=%d", m.Track.Len())
	}
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(m, mouse(keyW+2, 5, tea.MouseActionRelease, tea.MouseButtonNone))
	if m.Track.Len() != 0 {
		t.Fatal("release created notes")
	}
}

func TestZoomKeepsLeftTick(t *testing.T) {
	m := newTestModel(t)
	m.ui.vp.x = 40 // tick 1200
	m = update(m, runes("+"))
	if m.ui.ticksPerCell != 60 {
		t.Fatalf("ticksPerCell=%d", m.ui.ticksPerCell)
	}
	if left := m.Ctrl.Transform().ToTime(m.ui.vp.x); math.Abs(left-1200) > 1e-6 {
		t.Fatalf("left tick=%v", left)
	}
}

func TestViewportClamps(t *testing.T) {
	vp := &viewport{width: 100, height: 60, maxY: 512}
	vp.ScrollBy(-10, -10)
	if vp.x != 0 || vp.y != 0 {
		t.Fatalf("vp=%+v", vp)
	}
	vp.ScrollBy(0, 1000)
	if vp.y != 452 {
		t.Fatalf("y=%v", vp.y)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "go-pianoroll") || !strings.Contains(out, "PENCIL") {
		t.Fatalf("view missing header:\n%s", out)
	}
	if got := strings.Count(out, "\n") + 1; got != 24 {
		t.Fatalf("lines=%d", got)
	}
}
