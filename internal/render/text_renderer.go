package render

import "math"

// minTextWidthPx and fadeWidthPx govern when text is skipped and how far
// the right-edge fade ramps.
const (
	minTextWidthPx = 16.0
	fadeWidthPx    = 15.0
	ellipsis       = '…'
)

// GlyphDraw is one positioned, faded character ready for the text pass.
type GlyphDraw struct {
	Rune    rune
	X, Y    float64
	Metrics GlyphMetrics
	Alpha   float64
}

// TextSlot is the text overlay for one frame: the glyphs that survived
// truncation and fade, already positioned in screen space.
type TextSlot struct {
	Frame  FrameDraw
	Glyphs []GlyphDraw
}

// ComputeTextSlots lays out the label text for every frame draw: clamp the
// text origin to the visible portion of the frame, greedily consume
// characters up to the available width, truncate with an ellipsis when
// the label doesn't fit, and fade characters within the last fadeWidthPx
// of the slot.
//
// devicePixelRatio converts the atlas's raster-space advance widths (it was
// built at font_size*device_pixel_ratio) back into the screen-space pixels
// this function lays glyphs out in.
func ComputeTextSlots(
	draws []FrameDraw,
	atlas Atlas,
	labelOf func(FrameDraw) string,
	fontSize, framePadding, devicePixelRatio float64,
) []TextSlot {
	// d.Height already has the cosmetic 0.5px-per-side seam inset (insetPx)
	// subtracted out by ComputeFrameDraws, so the label-fit threshold needs
	// the same adjustment or every draw would read as too short to label.
	frameHeightMin := fontSize + 2*framePadding - 2*insetPx

	slots := make([]TextSlot, 0, len(draws))
	for _, d := range draws {
		if d.Height < frameHeightMin {
			continue
		}

		textX := math.Max(framePadding, d.SX1+framePadding)
		maxTextWidth := (d.SX2 - math.Max(0, d.SX1)) - 2*framePadding
		if maxTextWidth < minTextWidthPx {
			continue
		}

		label := labelOf(d)
		glyphs := layoutLabel(label, atlas, textX, d.SY, maxTextWidth, devicePixelRatio)
		if len(glyphs) == 0 {
			continue
		}
		slots = append(slots, TextSlot{Frame: d, Glyphs: glyphs})
	}
	return slots
}

func layoutLabel(label string, atlas Atlas, startX, startY, maxWidth, devicePixelRatio float64) []GlyphDraw {
	runes := []rune(label)
	var glyphs []GlyphDraw

	x := startX
	slotEnd := startX + maxWidth

	for _, r := range runes {
		m, ok := atlas.Glyphs[r]
		if !ok {
			continue
		}
		advance := m.XAdvance / devicePixelRatio

		nextX := x + advance
		if nextX > slotEnd {
			if len(glyphs) > 0 {
				glyphs = replaceLastWithEllipsis(glyphs, atlas, slotEnd, devicePixelRatio)
			}
			break
		}

		glyphs = append(glyphs, GlyphDraw{
			Rune:    r,
			X:       x,
			Y:       startY,
			Metrics: m,
			Alpha:   fadeAlpha(x, slotEnd),
		})
		x = nextX
	}

	return glyphs
}

func replaceLastWithEllipsis(glyphs []GlyphDraw, atlas Atlas, slotEnd, devicePixelRatio float64) []GlyphDraw {
	m, ok := atlas.Glyphs[ellipsis]
	if !ok {
		return glyphs
	}
	last := glyphs[len(glyphs)-1]
	advance := m.XAdvance / devicePixelRatio
	if last.X+advance > slotEnd {
		glyphs = glyphs[:len(glyphs)-1]
		if len(glyphs) == 0 {
			return glyphs
		}
		last = glyphs[len(glyphs)-1]
	}
	glyphs[len(glyphs)-1] = GlyphDraw{
		Rune:    ellipsis,
		X:       last.X,
		Y:       last.Y,
		Metrics: m,
		Alpha:   fadeAlpha(last.X, slotEnd),
	}
	return glyphs
}

// fadeAlpha ramps linearly to 0 across the last fadeWidthPx of the slot.
func fadeAlpha(x, slotEnd float64) float64 {
	dist := slotEnd - x
	if dist >= fadeWidthPx {
		return 1
	}
	if dist <= 0 {
		return 0
	}
	return dist / fadeWidthPx
}

// RuneEllipsis exposes the truncation character tests and callers building
// atlas inputs need to include in the printable set.
func RuneEllipsis() rune { return ellipsis }

// ShadowAlpha is the drop-shadow's resolved alpha for one glyph:
// shadow_opacity * frame_opacity * fade_alpha. 0 disables the shadow pass
// entirely.
func ShadowAlpha(shadowOpacity, frameOpacity, glyphFadeAlpha float64) float64 {
	if shadowOpacity <= 0 {
		return 0
	}
	return shadowOpacity * frameOpacity * glyphFadeAlpha
}
