package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/pianoroll"
	"go-pianoroll/player"
	"go-pianoroll/widgets"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return "\n" + widgets.RenderKeyHelp(m.keys.sections()) + "\n\n" + m.help.View(m.keys)
	}

	l := m.ui.layout
	th := m.Theme
	headerStyle := lipgloss.NewStyle().Foreground(th.Selected())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())

	t := m.Ctrl.Transform()
	vr := m.ui.vp.VisibleRect()
	notes := overlay(pianoroll.VisibleNotes(m.Track, t, vr), m.Ctrl.Preview())

	var lines []string
	lines = append(lines, headerStyle.Render(m.header()))
	lines = append(lines, strings.Repeat(" ", keyW)+
		widgets.RenderRuler(th, int(t.ToTime(vr.X)), m.ui.ticksPerCell, player.PPQ, l.cols))

	grid := m.rollCells(t, vr, notes)
	for r, row := range grid {
		pitch := t.ToPitch(vr.Y + float64(r)*cellPx + cellPx/2)
		lines = append(lines, widgets.RenderKeyColumn(th, pitch, keyW)+widgets.RenderRollRow(th, row))
	}

	lines = append(lines, dimStyle.Render(strings.Repeat("─", l.width)))
	levels, selected := m.laneLevels(t, vr, notes)
	for _, lane := range widgets.RenderVelocityLane(th, levels, selected, l.laneRows) {
		lines = append(lines, strings.Repeat(" ", keyW)+lane)
	}

	lines = append(lines, m.help.View(m.keys))
	lines = append(lines, dimStyle.Render(m.ui.status))
	return strings.Join(lines, "\n")
}

func (m Model) header() string {
	play := "STOP"
	if m.Player.IsPlaying() {
		play = "PLAY"
	}
	q := m.Ctrl.Quantizer()
	snap := "off"
	if q.Enabled() {
		snap = fmt.Sprintf("%d", q.Unit())
	}
	out := fmt.Sprintf("go-pianoroll  %-6s %s  %3dbpm  tick:%-6d snap:%-4s sel:%d  %s",
		strings.ToUpper(m.Ctrl.Mode().String()), play, m.Player.Tempo(),
		m.Player.CurrentTick(), snap, m.Ctrl.Selection().Len(), m.Ctrl.Cursor())
	if m.ui.port != "" {
		out += "  out:" + m.ui.port
	}
	return out
}

// overlay replaces stored notes with their in-gesture preview and appends
// the draft of a note being drawn
func overlay(notes, preview []pianoroll.Note) []pianoroll.Note {
	if len(preview) == 0 {
		return notes
	}
	byID := make(map[pianoroll.NoteID]pianoroll.Note, len(preview))
	for _, n := range preview {
		byID[n.ID] = n
	}
	out := make([]pianoroll.Note, 0, len(notes)+1)
	for _, n := range notes {
		if p, ok := byID[n.ID]; ok {
			n = p
			delete(byID, n.ID)
		}
		out = append(out, n)
	}
	// moved in from off screen, or the draft
	for _, n := range preview {
		if _, ok := byID[n.ID]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (m Model) colOf(t pianoroll.Transform, vr pianoroll.Rect, tick int) int {
	return int(math.Floor((t.X(float64(tick)) - vr.X) / cellPx))
}

func (m Model) rollCells(t pianoroll.Transform, vr pianoroll.Rect, notes []pianoroll.Note) [][]widgets.RollCell {
	l := m.ui.layout
	sel := m.Ctrl.Selection()
	grid := make([][]widgets.RollCell, l.rollRows)

	for r := range grid {
		grid[r] = make([]widgets.RollCell, l.cols)
		pitch := t.ToPitch(vr.Y + float64(r)*cellPx + cellPx/2)
		for c := range grid[r] {
			from := t.ToTime(vr.X + float64(c)*cellPx)
			to := t.ToTime(vr.X + float64(c+1)*cellPx)
			switch {
			case int(from)%player.PPQ == 0 || int(to)/player.PPQ > int(from)/player.PPQ:
				grid[r][c].Kind = widgets.CellBeat
			case widgets.IsBlackKey(pitch):
				grid[r][c].Kind = widgets.CellBlackKey
			}
		}
	}

	if b, ok := sel.Bounds(); ok {
		c0 := int(math.Floor((t.X(b.FromTick) - vr.X) / cellPx))
		c1 := int(math.Floor((t.X(b.ToTick) - vr.X) / cellPx))
		r0 := m.rowOf(t, vr, b.HighPitch)
		r1 := m.rowOf(t, vr, b.LowPitch)
		for r := max(r0, 0); r <= min(r1, l.rollRows-1); r++ {
			for c := max(c0, 0); c <= min(c1, l.cols-1); c++ {
				if r == r0 || r == r1 || c == c0 || c == c1 {
					grid[r][c].Kind = widgets.CellBox
				}
			}
		}
	}

	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		r := m.rowOf(t, vr, n.NoteNumber)
		if r < 0 || r >= l.rollRows {
			continue
		}
		c0 := m.colOf(t, vr, n.Tick)
		c1 := int(math.Ceil((t.X(float64(n.End()))-vr.X)/cellPx)) - 1
		selected := sel.Contains(n.ID) || n.ID == pianoroll.DraftID
		for c := max(c0, 0); c <= min(max(c1, c0), l.cols-1); c++ {
			cell := widgets.RollCell{Velocity: n.Velocity}
			switch {
			case c == c0 && selected:
				cell.Kind = widgets.CellSelectedHead
			case c == c0:
				cell.Kind = widgets.CellNoteHead
			case selected:
				cell.Kind = widgets.CellSelectedBody
			default:
				cell.Kind = widgets.CellNoteBody
			}
			grid[r][c] = cell
		}
	}

	if c := m.colOf(t, vr, m.Player.CurrentTick()); c >= 0 && c < l.cols {
		for r := range grid {
			if grid[r][c].Kind < widgets.CellNoteHead || grid[r][c].Kind > widgets.CellSelectedBody {
				grid[r][c].Kind = widgets.CellPlayhead
			}
		}
	}
	return grid
}

func (m Model) rowOf(t pianoroll.Transform, vr pianoroll.Rect, pitch int) int {
	return int(math.Floor((t.Y(float64(pitch)) - vr.Y + cellPx/2) / cellPx))
}

// laneLevels is the velocity of the loudest note starting in each column
func (m Model) laneLevels(t pianoroll.Transform, vr pianoroll.Rect, notes []pianoroll.Note) ([]int, []bool) {
	l := m.ui.layout
	sel := m.Ctrl.Selection()
	levels := make([]int, l.cols)
	selected := make([]bool, l.cols)
	for i := range levels {
		levels[i] = -1
	}
	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		c := m.colOf(t, vr, n.Tick)
		if c < 0 || c >= l.cols {
			continue
		}
		levels[c] = max(levels[c], n.Velocity)
		if sel.Contains(n.ID) {
			selected[c] = true
		}
	}
	return levels, selected
}
