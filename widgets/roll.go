package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/theme"
)

// Cell is what a single terminal cell of the roll shows
type Cell int

const (
	CellEmpty Cell = iota
	CellBeat
	CellBlackKey
	CellNoteHead
	CellNoteBody
	CellSelectedHead
	CellSelectedBody
	CellBox
	CellPlayhead
)

// RollCell is one rendered grid position. Velocity colours note cells.
type RollCell struct {
	Kind     Cell
	Velocity int
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// KeyLabel names a MIDI note, e.g. 60 -> "C4"
func KeyLabel(pitch int) string {
	if pitch < 0 || pitch > 127 {
		return ""
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], pitch/12-1)
}

// IsBlackKey reports whether pitch is a sharp
func IsBlackKey(pitch int) bool {
	return strings.HasSuffix(noteNames[((pitch%12)+12)%12], "#")
}

// RenderKeyColumn renders the left-hand key label of width w
func RenderKeyColumn(th *theme.Theme, pitch, w int) string {
	style := lipgloss.NewStyle().Width(w).Foreground(th.FG())
	if IsBlackKey(pitch) {
		style = style.Foreground(th.Muted())
	}
	label := ""
	if pitch%12 == 0 || w >= 5 {
		label = KeyLabel(pitch)
	}
	return style.Render(label)
}

// RenderRollRow renders one pitch row of the grid
func RenderRollRow(th *theme.Theme, cells []RollCell) string {
	var out strings.Builder
	for _, c := range cells {
		out.WriteString(renderCell(th, c))
	}
	return out.String()
}

func renderCell(th *theme.Theme, c RollCell) string {
	s := th.Symbols
	style := lipgloss.NewStyle()
	var r rune
	switch c.Kind {
	case CellBeat:
		r = s.GridBeat
		style = style.Foreground(th.Surface())
	case CellBlackKey:
		r = s.BlackKey
		style = style.Foreground(th.Surface())
	case CellNoteHead:
		r = s.NoteHead
		style = style.Foreground(th.Velocity(c.Velocity))
	case CellNoteBody:
		r = s.NoteBody
		style = style.Foreground(th.Velocity(c.Velocity))
	case CellSelectedHead:
		r = s.NoteHead
		style = style.Foreground(th.Selected())
	case CellSelectedBody:
		r = s.NoteBody
		style = style.Foreground(th.Selected())
	case CellBox:
		r = s.BoxEdge
		style = style.Foreground(th.FG())
	case CellPlayhead:
		r = s.Playhead
		style = style.Foreground(th.Playhead())
	default:
		r = s.GridCell
		style = style.Foreground(th.Surface())
	}
	return style.Render(string(r))
}

// RenderRuler renders the bar/beat ruler; ticksPerCell and ppq set the scale
func RenderRuler(th *theme.Theme, fromTick, ticksPerCell, ppq, cols int) string {
	var out strings.Builder
	barTicks := ppq * 4
	for col := 0; col < cols; {
		tick := fromTick + col*ticksPerCell
		cellEnd := tick + ticksPerCell
		// first bar line inside this cell
		bar := ((tick + barTicks - 1) / barTicks) * barTicks
		if bar < cellEnd {
			label := fmt.Sprintf("%d", bar/barTicks+1)
			if col+len(label) > cols {
				label = label[:cols-col]
			}
			out.WriteString(label)
			col += len(label)
			continue
		}
		out.WriteString(" ")
		col++
	}
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(out.String())
}

// RenderVelocityLane renders a lane of rows lines. levels holds one velocity
// per column, -1 where no note starts; selected columns use the selection colour.
func RenderVelocityLane(th *theme.Theme, levels []int, selected []bool, rows int) []string {
	lines := make([]string, rows)
	if rows <= 0 {
		return lines
	}
	for row := 0; row < rows; row++ {
		// row 0 is the top; a bar fills the cell when its height reaches it
		threshold := float64(rows-row-1) / float64(rows)
		var out strings.Builder
		for col, v := range levels {
			if v < 0 || float64(v)/127 <= threshold {
				out.WriteString(" ")
				continue
			}
			color := th.Velocity(v)
			if col < len(selected) && selected[col] {
				color = th.Selected()
			}
			out.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(th.Symbols.Bar)))
		}
		lines[row] = out.String()
	}
	return lines
}
