package render

import "github.com/Oloruntobi1/flamescope/internal/layout"

// cullMarginPx is the tolerance outside the viewport a frame may still
// extend into before it is culled.
const cullMarginPx = 50.0

// insetPx is the per-side quad inset so neighboring frames show a 1px seam
// without ever overlapping.
const insetPx = 0.5

// FrameDraw is one filled rectangle, ready for the GPU pass: screen-space
// bounds, interpolated color, and resolved opacity.
type FrameDraw struct {
	Frame layout.FrameRecord

	SX1, SX2, SY float64
	Height       float64
	Color        RGBA
	Opacity      float64
}

// ComputeFrameDraws maps every visible frame to screen space and resolves
// its color/opacity. viewportWidth/camX/camY/scale come from the camera's
// *current* (animated) state, not its target.
func ComputeFrameDraws(
	frames []layout.FrameRecord,
	viewportWidth, viewportHeight, frameHeight float64,
	camX, camY, scale float64,
	primary, secondary RGBA,
	selectedID, hoveredID string,
	opacities Opacities,
) []FrameDraw {
	depthTotals := sumValueByDepth(frames)

	draws := make([]FrameDraw, 0, len(frames))
	for _, f := range frames {
		x1 := f.X
		x2 := f.X + f.Width

		sx1 := x1*viewportWidth*scale + camX
		sx2 := x2*viewportWidth*scale + camX
		sy := float64(f.Depth)*frameHeight + camY

		if sx2 < -cullMarginPx || sx1 > viewportWidth+cullMarginPx {
			continue
		}
		if sy+frameHeight < -cullMarginPx || sy > viewportHeight+cullMarginPx {
			continue
		}

		r := DepthRatio(f.Value, depthTotals[f.Depth])
		color := InterpolateByDepthRatio(primary, secondary, r)
		opacity := FrameOpacity(f.ID, selectedID, hoveredID, opacities)

		draws = append(draws, FrameDraw{
			Frame:   f,
			SX1:     sx1 + insetPx,
			SX2:     sx2 - insetPx,
			SY:      sy + insetPx,
			Height:  frameHeight - 2*insetPx,
			Color:   color,
			Opacity: opacity,
		})
	}
	return draws
}

func sumValueByDepth(frames []layout.FrameRecord) map[int]int64 {
	totals := make(map[int]int64)
	for _, f := range frames {
		totals[f.Depth] += f.Value
	}
	return totals
}
