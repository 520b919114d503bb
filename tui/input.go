package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/debug"
	"go-pianoroll/pianoroll"
)

// wheelRows is how far one wheel notch scrolls
const wheelRows = 3

const pointerInset = 1.0

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		m.mouseDown(msg)
	case tea.MouseActionMotion:
		m.mouseMove(msg)
	case tea.MouseActionRelease:
		m.mouseUp(msg)
	}
}

func (m *Model) mouseDown(msg tea.MouseMsg) {
	vp := m.ui.vp
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			vp.ScrollBy(-wheelRows*cellPx, 0)
		} else {
			vp.ScrollBy(0, -wheelRows*cellPx)
		}
		return
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			vp.ScrollBy(wheelRows*cellPx, 0)
		} else {
			vp.ScrollBy(0, wheelRows*cellPx)
		}
		return
	case tea.MouseButtonWheelLeft:
		vp.ScrollBy(-wheelRows*cellPx, 0)
		return
	case tea.MouseButtonWheelRight:
		vp.ScrollBy(wheelRows*cellPx, 0)
		return
	}

	button, ok := buttonOf(msg.Button)
	if !ok {
		debug.Log("input", "ignored button %v", msg.Button)
		return
	}
	if msg.X < keyW {
		return
	}
	if msg.Y == rulerRow {
		if button == pianoroll.ButtonLeft {
			m.seek(msg)
		}
		return
	}
	region, ok := m.regionAt(msg.Y)
	if !ok {
		return
	}

	ev := m.pointer(msg, region)
	ev.Button = button
	if region == pianoroll.RegionNotes {
		ev.Hit = m.Ctrl.HitTest(ev.X, ev.Y, m.cfg.Editor.EdgeTolerance)
	}

	if button == pianoroll.ButtonRight {
		if region == pianoroll.RegionNotes && !ev.Hit.OnNote() {
			m.toggleMode()
		}
		return
	}

	if !m.Ctrl.OnPointerDown(ev) {
		debug.Log("input", "pointer down ignored: button=%d region=%d", button, region)
		return
	}
	m.ui.pressRegion = region
	m.ui.pressButton = button
}

func (m *Model) mouseMove(msg tea.MouseMsg) {
	// while captured every motion belongs to the gesture, even off the roll
	if m.ui.capture.held {
		ev := m.pointer(msg, m.ui.pressRegion)
		ev.Button = m.ui.pressButton
		m.Ctrl.OnPointerMove(ev)
		debug.LogEvery(20, "input", "drag %.0f,%.0f", ev.X, ev.Y)
		return
	}
	region, ok := m.regionAt(msg.Y)
	if !ok || msg.X < keyW {
		region = pianoroll.RegionVelocity // no hover hit outside the roll
	}
	ev := m.pointer(msg, region)
	if region == pianoroll.RegionNotes {
		ev.Hit = m.Ctrl.HitTest(ev.X, ev.Y, m.cfg.Editor.EdgeTolerance)
	}
	m.Ctrl.OnPointerMove(ev)
}

func (m *Model) mouseUp(msg tea.MouseMsg) {
	if !m.ui.capture.held {
		debug.Log("input", "pointer up without capture at %d,%d", msg.X, msg.Y)
		return
	}
	ev := m.pointer(msg, m.ui.pressRegion)
	ev.Button = m.ui.pressButton
	m.Ctrl.OnPointerUp(ev)
}

// loseCapture ends the gesture without committing, as when the terminal
// loses focus mid-drag and the release will never arrive
func (m *Model) loseCapture() {
	if !m.ui.capture.held {
		return
	}
	debug.Log("input", "capture lost")
	m.Ctrl.Cancel()
	m.ui.status = "gesture cancelled"
}

func (m *Model) seek(msg tea.MouseMsg) {
	x := m.ui.vp.x + float64(msg.X-keyW)*cellPx
	tick := int(m.Ctrl.Transform().ToTime(x))
	if !m.Player.Seek(tick) {
		debug.Log("input", "seek ignored while playing")
	}
}

func (m *Model) regionAt(row int) (pianoroll.Region, bool) {
	l := m.ui.layout
	switch {
	case row >= l.rollTop && row < l.rollTop+l.rollRows:
		return pianoroll.RegionNotes, true
	case l.laneRows > 0 && row >= l.laneTop && row < l.laneTop+l.laneRows:
		return pianoroll.RegionVelocity, true
	}
	return 0, false
}

// pointer maps a terminal cell to a point just inside its left edge, so a
// column snaps to the grid line it starts on, and to the middle of its row.
// Notes coordinates are scrolled; lane y is measured from the top of the lane.
func (m *Model) pointer(msg tea.MouseMsg, region pianoroll.Region) pianoroll.PointerEvent {
	l := m.ui.layout
	vp := m.ui.vp
	sx := float64(msg.X-keyW)*cellPx + pointerInset
	sy := float64(msg.Y)*cellPx + cellPx/2

	ev := pianoroll.PointerEvent{
		ScreenX: sx,
		ScreenY: sy,
		X:       vp.x + sx,
		Mods: pianoroll.Modifiers{
			Shift: msg.Shift,
			Ctrl:  msg.Ctrl,
			Alt:   msg.Alt,
		},
		Region: region,
	}
	if region == pianoroll.RegionVelocity {
		ev.Y = float64(msg.Y-l.laneTop)*cellPx + cellPx/2
	} else {
		ev.Y = vp.y + float64(msg.Y-l.rollTop)*cellPx + cellPx/2
	}
	return ev
}

func buttonOf(b tea.MouseButton) (pianoroll.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return pianoroll.ButtonLeft, true
	case tea.MouseButtonMiddle:
		return pianoroll.ButtonMiddle, true
	case tea.MouseButtonRight:
		return pianoroll.ButtonRight, true
	}
	return 0, false
}
