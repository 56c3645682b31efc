package interaction_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/camera"
	"github.com/Oloruntobi1/flamescope/internal/interaction"
	"github.com/Oloruntobi1/flamescope/internal/layout"
)

func sampleFrames() []layout.FrameRecord {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "B"}, {Name: "A"}}, Value: 3},
		{Frames: []calltree.Frame{{Name: "C"}, {Name: "A"}}, Value: 1},
	})
	return layout.GenerateFrames(root)
}

func newMachine() (*interaction.Machine, []layout.FrameRecord) {
	cam := camera.New(1000, 800, 0, false)
	m := interaction.NewMachine(cam)
	frames := sampleFrames()
	m.SetFrames(frames, 1000, 21)
	m.SelectInitialFrame(frames)
	return m, frames
}

func TestHitTest_ReturnsDeepestContainingFrame(t *testing.T) {
	frames := sampleFrames()
	rects := interaction.BuildRects(frames, 1000, 21)

	// Depth 1 is "A" spanning the full width; depth 2 is B [0,0.75) and C
	// [0.75,1). A point inside B's x-range at depth-2's y must return B,
	// not A, even though A's rectangle also covers that x range at depth 1.
	frame, ok := interaction.HitTest(rects, 0, 0, 1, 100, 2*21+1)
	require.True(t, ok)
	require.Equal(t, "B", frame.Name)
}

func TestHitTest_NoFrameAtPointReturnsFalse(t *testing.T) {
	frames := sampleFrames()
	rects := interaction.BuildRects(frames, 1000, 21)
	_, ok := interaction.HitTest(rects, 0, 0, 1, 100, 10000)
	require.False(t, ok)
}

func TestDragVsClick_SmallDisplacementIsClick(t *testing.T) {
	m, _ := newMachine()
	m.PointerDown(100, 50)
	m.PointerMove(102, 51) // displacement < 5px
	m.PointerUp()
	fired := m.Click(102, 51)
	require.True(t, fired)
}

func TestDragVsClick_LargeDisplacementSuppressesClick(t *testing.T) {
	// A drag past the threshold must suppress the following click.
	m, _ := newMachine()
	m.PointerDown(100, 50)
	m.PointerMove(107, 52) // distance ~7.3 > 5
	m.PointerMove(200, 50)
	m.PointerUp()
	fired := m.Click(200, 50)
	require.False(t, fired)
}

func TestClick_SameFrameTwiceResetsZoom(t *testing.T) {
	m, frames := newMachine()
	m.SelectedID = "" // start with no selection regardless of initial-frame state
	var a layout.FrameRecord
	for _, f := range frames {
		if f.Name == "A" {
			a = f
		}
	}
	sx := (a.X+a.Width/2)*1000 + 1 // inside A's rect at depth 1's row
	sy := float64(a.Depth)*21 + 1

	m.PointerDown(sx, sy)
	m.PointerUp()
	require.True(t, m.Click(sx, sy))
	require.Equal(t, "A", m.SelectedID)

	m.PointerDown(sx, sy)
	m.PointerUp()
	require.True(t, m.Click(sx, sy))
	require.Equal(t, "", m.SelectedID)
	require.Equal(t, 1.0, m.Camera.TargetScale)
}

func TestClick_MissClearsSelection(t *testing.T) {
	m, _ := newMachine()
	m.PointerDown(5, 100000)
	m.PointerUp()
	require.True(t, m.Click(5, 100000))
	require.Equal(t, "", m.SelectedID)
}

func TestWheel_ZoomAtScenario(t *testing.T) {
	cam := camera.New(1000, 800, 0, false)
	m := interaction.NewMachine(cam)
	m.ZoomOnScroll = true
	m.ScrollZoomSpeed = 0.05

	m.Wheel(100, 250, 0)
	require.InDelta(t, 1.05, cam.TargetScale, 1e-9)
	require.InDelta(t, -12.5, cam.TargetX, 1e-9)
}

func TestWheel_DisabledWhenZoomOnScrollFalse(t *testing.T) {
	cam := camera.New(1000, 800, 0, false)
	m := interaction.NewMachine(cam)
	m.Wheel(100, 250, 0)
	require.Equal(t, 1.0, cam.TargetScale)
}

func TestUpdate_FiresAnimationCompleteOnNextTick(t *testing.T) {
	m, frames := newMachine()
	m.SelectedID = ""
	var a layout.FrameRecord
	for _, f := range frames {
		if f.Name == "A" {
			a = f
		}
	}
	sx := (a.X+a.Width/2)*1000 + 1
	sy := float64(a.Depth)*21 + 1

	var completed []string
	m.OnAnimationComplete = func(id string) { completed = append(completed, id) }

	m.PointerDown(sx, sy)
	m.PointerUp()
	m.Click(sx, sy)
	require.Equal(t, interaction.StateAnimating, m.State())

	for i := 0; i < 200; i++ {
		m.Update()
	}
	require.Equal(t, interaction.StateAt, m.State())

	// The settling Update queued the callback and the Update after it fired
	// it; a further Update must not fire it again.
	m.Update()
	require.Equal(t, []string{"A"}, completed)
}
