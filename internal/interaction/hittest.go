// Package interaction implements the pointer/wheel state
// machine driving camera targets and selection/hover state, and the hit
// test shared by click handling and hover tracking.
package interaction

import "github.com/Oloruntobi1/flamescope/internal/layout"

// Rect is one frame's rectangle in world (pre-camera-scale) pixel space:
// x1/x2 from the normalized layout times viewport width, y from depth
// times frame height. Camera pan/zoom is undone from the pointer position
// instead of applied to these rects: wx = (sx - cam_x) / cam_scale,
// wy = sy - cam_y.
type Rect struct {
	Frame  layout.FrameRecord
	X1, X2 float64
	Y, H   float64
}

// BuildRects derives world-space rectangles for every frame. Recomputed
// whenever the laid-out tree changes; stable across camera animation.
func BuildRects(frames []layout.FrameRecord, viewportWidth, frameHeight float64) []Rect {
	rects := make([]Rect, len(frames))
	for i, f := range frames {
		rects[i] = Rect{
			Frame: f,
			X1:    f.X * viewportWidth,
			X2:    (f.X + f.Width) * viewportWidth,
			Y:     float64(f.Depth) * frameHeight,
			H:     frameHeight,
		}
	}
	return rects
}

// HitTest transforms (sx, sy) into world coordinates using the camera's
// current state, then linearly scans rects for the deepest one containing
// the point. Overlap ties are broken by depth only.
func HitTest(rects []Rect, camX, camY, camScale, sx, sy float64) (layout.FrameRecord, bool) {
	wx := (sx - camX) / camScale
	wy := sy - camY

	var best *Rect
	for i := range rects {
		r := &rects[i]
		if wx < r.X1 || wx > r.X2 {
			continue
		}
		if wy < r.Y || wy > r.Y+r.H {
			continue
		}
		if best == nil || r.Frame.Depth > best.Frame.Depth {
			best = r
		}
	}
	if best == nil {
		return layout.FrameRecord{}, false
	}
	return best.Frame, true
}
