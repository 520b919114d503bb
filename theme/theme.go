package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	NoteHead rune // █ first cell of a note
	NoteBody rune // ▆ continuation
	GridBeat rune // ┆ beat line
	GridCell rune // · empty cell
	BlackKey rune // ░ black key lane
	Playhead rune // │
	Bar      rune // ▇ velocity bar
	BoxEdge  rune // ▫ box-select outline
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			NoteHead: '█',
			NoteBody: '▆',
			GridBeat: '┆',
			GridCell: '·',
			BlackKey: '░',
			Playhead: '│',
			Bar:      '▇',
			BoxEdge:  '▫',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG       = 0.0
	RoleSurface  = 0.1
	RoleMuted    = 0.25
	RoleFG       = 0.5
	RoleNote     = 0.6
	RoleSelected = 0.85
	RolePlayhead = 1.0
)

func (t *Theme) BG() lipgloss.Color       { return t.Color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color  { return t.Color(RoleSurface) }
func (t *Theme) Muted() lipgloss.Color    { return t.Color(RoleMuted) }
func (t *Theme) FG() lipgloss.Color       { return t.Color(RoleFG) }
func (t *Theme) Note() lipgloss.Color     { return t.Color(RoleNote) }
func (t *Theme) Selected() lipgloss.Color { return t.Color(RoleSelected) }
func (t *Theme) Playhead() lipgloss.Color { return t.Color(RolePlayhead) }

// Velocity colours a note by its velocity, from muted to note colour
func (t *Theme) Velocity(v int) lipgloss.Color {
	norm := float64(min(max(v, 0), 127)) / 127
	return t.Color(RoleMuted + (RoleNote-RoleMuted)*norm)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
