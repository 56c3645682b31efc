// Package camera is the 2D view transform the
// renderer maps frame positions through, including its one-pole animation
// toward pan/zoom targets and its viewport bounds.
package camera

import "math"

const (
	// alpha is the one-pole interpolation factor update() advances
	// current toward target by, each call.
	alpha = 0.15

	snapPositionPx = 0.5
	snapScale      = 0.01

	minScale = 1.0
)

// Camera owns the current/target (x, y, scale) triples plus the viewport
// and content dimensions its bounds are computed against.
type Camera struct {
	ViewportWidth  float64
	ViewportHeight float64
	ContentHeight  float64
	FixedHeight    bool

	X, Y, Scale                   float64
	TargetX, TargetY, TargetScale float64
}

// New constructs a Camera at rest at (0, 0, 1).
func New(viewportW, viewportH, contentH float64, fixedHeight bool) *Camera {
	c := &Camera{
		ViewportWidth:  viewportW,
		ViewportHeight: viewportH,
		ContentHeight:  contentH,
		FixedHeight:    fixedHeight,
		Scale:          1,
		TargetScale:    1,
	}
	return c
}

// ZoomToFrame sets targets so that the viewport-relative pixel range
// [fx1, fx2] fills the viewport width, then applies bounds.
func (c *Camera) ZoomToFrame(fx1, fx2 float64) {
	width := fx2 - fx1
	if width <= 0 {
		return
	}
	center := (fx1 + fx2) / 2
	c.TargetScale = clampMin(c.ViewportWidth/width, minScale)
	c.TargetX = c.ViewportWidth/2 - center*c.TargetScale
	c.TargetY = 0
	c.applyBoundsToTarget()
}

// ResetZoom targets (0, 0, 1).
func (c *Camera) ResetZoom() {
	c.TargetX = 0
	c.TargetY = 0
	c.TargetScale = 1
}

// ZoomAt zooms toward factor while keeping the world point currently under
// (cx, cy) fixed on screen at (cx, cy). Scale is horizontal only: the
// vertical mapping is y + cam_y at every zoom level.
func (c *Camera) ZoomAt(factor, cx, cy float64) {
	worldX := (cx - c.TargetX) / c.TargetScale
	worldY := cy - c.TargetY

	newScale := clampMin(c.TargetScale*factor, minScale)
	c.TargetX = cx - worldX*newScale
	c.TargetY = cy - worldY
	c.TargetScale = newScale
	c.applyBoundsToTarget()
}

// Pan shifts current and target by a bounded delta with no animation.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
	c.TargetX += dx
	c.TargetY += dy
	c.clampCurrentToBounds()
	c.applyBoundsToTarget()
}

// Update advances current one step toward target via one-pole
// interpolation, snapping when within threshold. Returns true iff any
// component moved. Distance to target is non-increasing under repeated
// calls.
func (c *Camera) Update() bool {
	moved := false

	if step(&c.X, c.TargetX, snapPositionPx) {
		moved = true
	}
	if step(&c.Y, c.TargetY, snapPositionPx) {
		moved = true
	}
	if step(&c.Scale, c.TargetScale, snapScale) {
		moved = true
	}
	return moved
}

func step(current *float64, target, snap float64) bool {
	d := target - *current
	if math.Abs(d) < snap {
		if *current == target {
			return false
		}
		*current = target
		return true
	}
	*current += d * alpha
	return true
}

// horizontalBounds returns [min, max] for x given scale: scale==1 forces
// x=0; scale>1 bounds x to [viewport_width - viewport_width*scale, 0].
func (c *Camera) horizontalBounds(scale float64) (float64, float64) {
	if scale <= 1 {
		return 0, 0
	}
	return c.ViewportWidth - c.ViewportWidth*scale, 0
}

// verticalBounds returns [min, max] for y, 0 unless in fixed-height mode
// with content taller than the viewport.
func (c *Camera) verticalBounds() (float64, float64) {
	if c.FixedHeight && c.ContentHeight > c.ViewportHeight {
		return c.ViewportHeight - c.ContentHeight, 0
	}
	return 0, 0
}

func (c *Camera) applyBoundsToTarget() {
	minX, maxX := c.horizontalBounds(c.TargetScale)
	c.TargetX = clamp(c.TargetX, minX, maxX)
	minY, maxY := c.verticalBounds()
	c.TargetY = clamp(c.TargetY, minY, maxY)
}

func (c *Camera) clampCurrentToBounds() {
	minX, maxX := c.horizontalBounds(c.Scale)
	c.X = clamp(c.X, minX, maxX)
	minY, maxY := c.verticalBounds()
	c.Y = clamp(c.Y, minY, maxY)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}
