package interaction

import (
	"math"

	"github.com/Oloruntobi1/flamescope/internal/camera"
	"github.com/Oloruntobi1/flamescope/internal/layout"
)

const (
	dragThresholdPx        = 5.0
	defaultScrollZoomSpeed = 0.05
)

// Machine is the single-threaded pointer/wheel state machine for a flame
// graph view: it owns drag discrimination, hover/selection ids, and drives
// the camera's animation targets. All mutable state here is touched by one
// actor only — the caller's event loop.
type Machine struct {
	Camera        *camera.Camera
	Rects         []Rect
	ViewportWidth float64

	SelectedID string
	HoveredID  string

	ZoomOnScroll       bool
	ScrollZoomSpeed    float64
	ScrollZoomInverted bool

	// OnAnimationComplete fires exactly once per Animating -> At
	// transition, dispatched from the following Update() call so
	// observers see it at the next tick at the latest, even for a
	// transition that settled in zero further camera movement.
	OnAnimationComplete func(frameID string)

	isDragging     bool
	hasDragged     bool
	startX, startY float64
	lastX, lastY   float64

	state       State
	animatingTo string
	pending     []string
}

// NewMachine starts at rest with nothing selected; callers typically follow
// up with SelectInitialFrame to put the lowest-depth real node in focus.
func NewMachine(cam *camera.Camera) *Machine {
	return &Machine{
		Camera:          cam,
		state:           StateAt,
		ScrollZoomSpeed: defaultScrollZoomSpeed,
	}
}

// SelectInitialFrame marks the lowest-depth real node (depth 1, the root's
// first child by descending-value sort) selected, without animating — the
// camera starts at rest on it.
func (m *Machine) SelectInitialFrame(frames []layout.FrameRecord) {
	for _, f := range frames {
		if f.Depth == 1 {
			m.SelectedID = f.ID
			return
		}
	}
}

// SetFrames rebuilds the world-space hit rectangles for the current
// layout. Call whenever a new profile is installed or the viewport/frame
// height changes.
func (m *Machine) SetFrames(frames []layout.FrameRecord, viewportWidth, frameHeight float64) {
	m.ViewportWidth = viewportWidth
	m.Rects = BuildRects(frames, viewportWidth, frameHeight)
}

// PointerDown records the drag origin.
func (m *Machine) PointerDown(x, y float64) {
	m.isDragging = true
	m.hasDragged = false
	m.startX, m.startY = x, y
	m.lastX, m.lastY = x, y
}

// PointerMove updates drag/pan state and recomputes hover via HitTest on
// every call, regardless of whether a drag is in progress.
func (m *Machine) PointerMove(x, y float64) {
	if m.isDragging {
		if !m.hasDragged && dist(m.startX, m.startY, x, y) >= dragThresholdPx {
			m.hasDragged = true
		}
		if m.hasDragged && m.Camera != nil {
			m.Camera.Pan(x-m.lastX, y-m.lastY)
		}
		m.lastX, m.lastY = x, y
	}

	if m.Camera == nil {
		return
	}
	frame, hit := HitTest(m.Rects, m.Camera.X, m.Camera.Y, m.Camera.Scale, x, y)
	if hit {
		m.HoveredID = frame.ID
	} else {
		m.HoveredID = ""
	}
}

// PointerUp clears the drag flag. hasDragged is deliberately left for
// Click to inspect and clear.
func (m *Machine) PointerUp() {
	m.isDragging = false
}

// Click applies the drag-vs-click discriminator and, for a
// genuine click, hit-tests and updates selection/camera target. Returns
// false when the gesture was a drag and no click fires.
func (m *Machine) Click(x, y float64) bool {
	dragged := m.hasDragged || dist(m.startX, m.startY, x, y) >= dragThresholdPx
	m.hasDragged = false
	if dragged {
		return false
	}
	if m.Camera == nil {
		return true
	}

	frame, hit := HitTest(m.Rects, m.Camera.X, m.Camera.Y, m.Camera.Scale, x, y)
	switch {
	case !hit, hit && frame.ID == m.SelectedID:
		// Clicking the already-selected frame resets zoom instead of re-selecting it.
		m.SelectedID = ""
		m.Camera.ResetZoom()
		m.animatingTo = ""
	default:
		m.SelectedID = frame.ID
		m.Camera.ZoomToFrame(frame.X*m.ViewportWidth, (frame.X+frame.Width)*m.ViewportWidth)
		m.animatingTo = frame.ID
	}
	m.state = StateAnimating
	return true
}

// Wheel applies scroll-zoom when enabled. The caller is responsible for
// suppressing native page scroll.
func (m *Machine) Wheel(dy, cx, cy float64) {
	if !m.ZoomOnScroll || m.Camera == nil {
		return
	}
	speed := m.ScrollZoomSpeed
	if speed == 0 {
		speed = defaultScrollZoomSpeed
	}

	sign := 0.0
	switch {
	case dy > 0:
		sign = 1
	case dy < 0:
		sign = -1
	}

	var factor float64
	if m.ScrollZoomInverted {
		factor = 1 - speed*sign
	} else {
		factor = 1 + speed*sign
	}

	m.Camera.ZoomAt(factor, cx, cy)
	m.state = StateAnimating
	m.animatingTo = m.SelectedID
}

// SetSelectedFrame applies an external selection synchronously, starting a
// zoom animation when it differs from the current selection.
func (m *Machine) SetSelectedFrame(frame layout.FrameRecord) {
	if frame.ID == m.SelectedID || m.Camera == nil {
		return
	}
	m.SelectedID = frame.ID
	m.Camera.ZoomToFrame(frame.X*m.ViewportWidth, (frame.X+frame.Width)*m.ViewportWidth)
	m.state = StateAnimating
	m.animatingTo = frame.ID
}

// State reports the current camera-target state (At or Animating).
func (m *Machine) State() State {
	return m.state
}

// Update advances the camera one animation step and flushes any
// animation-complete callback queued by the previous Update call, then
// queues a new one if this step settled an Animating transition. Returns
// whether the camera moved this step.
func (m *Machine) Update() bool {
	fired := m.pending
	m.pending = nil
	for _, id := range fired {
		if m.OnAnimationComplete != nil {
			m.OnAnimationComplete(id)
		}
	}

	moved := false
	if m.Camera != nil {
		moved = m.Camera.Update()
	}

	if m.state == StateAnimating && !moved {
		m.state = StateAt
		m.pending = append(m.pending, m.animatingTo)
	}
	return moved
}

func dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
