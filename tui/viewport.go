package tui

import "go-pianoroll/pianoroll"

// viewport is the visible window onto the roll, in content pixels
type viewport struct {
	x, y          float64
	width, height float64
	maxY          float64
}

func (v *viewport) ScrollBy(dx, dy float64) {
	v.x = max(0, v.x+dx)
	v.y = min(max(0, v.y+dy), max(0, v.maxY-v.height))
}

func (v *viewport) VisibleRect() pianoroll.Rect {
	return pianoroll.Rect{X: v.x, Y: v.y, Width: v.width, Height: v.height}
}

// capture is the terminal's pointer capture. While held, motion and the
// release go to the active gesture wherever they land; focus loss drops it.
type capture struct {
	held bool
}

func (c *capture) Capture() func() {
	c.held = true
	return func() { c.held = false }
}
