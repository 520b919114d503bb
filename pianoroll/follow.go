package pianoroll

// FollowThreshold is the fraction of the visible width the playhead may
// reach before the view jumps to it
const FollowThreshold = 0.7

// Follow keeps the playhead on screen while playing. When the playhead is
// left of the view or past FollowThreshold of its width, the view scrolls so
// the playhead sits at the left edge. It reports whether it scrolled.
func Follow(vp Viewport, t Transform, pos PositionProvider) bool {
	if !pos.IsPlaying() {
		return false
	}
	visible := vp.VisibleRect()
	x := t.X(float64(pos.CurrentTick()))
	screenX := x - visible.X
	if screenX > visible.Width*FollowThreshold || screenX < 0 {
		vp.ScrollBy(x-visible.X, 0)
		return true
	}
	return false
}
