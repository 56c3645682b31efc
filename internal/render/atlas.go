package render

import (
	"fmt"
	"sort"
)

// FirstGlyph and LastGlyph bound the printable-ASCII range the atlas
// covers (U+0020-U+007E).
const (
	FirstGlyph rune = 0x20
	LastGlyph  rune = 0x7E
)

// GlyphSize is the pixel-space measurement of one rasterized glyph, as a
// font backend (sdl2/ttf in this renderer) reports it. BearingX/BearingY
// are the glyph's offset from the pen position, carried through to
// GlyphMetrics.XOffset/YOffset.
type GlyphSize struct {
	Rune               rune
	W, H               int
	Advance            int
	BearingX, BearingY int
}

// GlyphMetrics is one atlas entry: normalized atlas (x, y, w, h) plus the
// advance width, the fields the text renderer consults per character.
type GlyphMetrics struct {
	AtlasX, AtlasY, AtlasW, AtlasH float64
	XOffset, YOffset               float64
	XAdvance                       float64
	PixelW, PixelH                 float64
}

// Atlas is the packed result: texture dimensions plus one GlyphMetrics per
// rune. RebuildKey lets the renderer detect when font family, size, device
// pixel ratio, or text color require a rebuild.
type Atlas struct {
	Width, Height int
	Glyphs        map[rune]GlyphMetrics
	RebuildKey    string
}

// PackAtlas places glyph rasters into a single texture using a greedy
// shelf (row) packer: glyphs are packed in rune order, a row fills left to
// right up to maxWidth, and a new row starts (its height the tallest glyph
// placed in the prior row) when the next glyph would overflow.
func PackAtlas(sizes []GlyphSize, maxWidth int, rebuildKey string) (Atlas, error) {
	if maxWidth <= 0 {
		return Atlas{}, fmt.Errorf("render: atlas maxWidth must be positive, got %d", maxWidth)
	}

	ordered := make([]GlyphSize, len(sizes))
	copy(ordered, sizes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Rune < ordered[j].Rune })

	glyphs := make(map[rune]GlyphMetrics, len(ordered))

	var penX, penY, rowHeight, atlasWidth int
	for _, g := range ordered {
		if g.W <= 0 || g.H <= 0 {
			glyphs[g.Rune] = GlyphMetrics{XAdvance: float64(g.Advance)}
			continue
		}
		if penX+g.W > maxWidth {
			penX = 0
			penY += rowHeight
			rowHeight = 0
		}

		glyphs[g.Rune] = GlyphMetrics{
			AtlasX:   float64(penX),
			AtlasY:   float64(penY),
			AtlasW:   float64(g.W),
			AtlasH:   float64(g.H),
			XOffset:  float64(g.BearingX),
			YOffset:  float64(g.BearingY),
			XAdvance: float64(g.Advance),
			PixelW:   float64(g.W),
			PixelH:   float64(g.H),
		}

		penX += g.W
		if penX > atlasWidth {
			atlasWidth = penX
		}
		if g.H > rowHeight {
			rowHeight = g.H
		}
	}
	atlasHeight := penY + rowHeight

	for r, m := range glyphs {
		if m.AtlasW == 0 {
			continue
		}
		m.AtlasX /= float64(atlasWidth)
		m.AtlasY /= float64(atlasHeight)
		m.AtlasW /= float64(atlasWidth)
		m.AtlasH /= float64(atlasHeight)
		glyphs[r] = m
	}

	return Atlas{
		Width:      atlasWidth,
		Height:     atlasHeight,
		Glyphs:     glyphs,
		RebuildKey: rebuildKey,
	}, nil
}

// NeedsRebuild reports whether a previously built atlas is stale for the
// given font family, size, device pixel ratio, and text color.
func NeedsRebuild(atlas Atlas, fontFamily string, fontSize, devicePixelRatio float64, textColor RGBA) bool {
	return atlas.RebuildKey != AtlasKey(fontFamily, fontSize, devicePixelRatio, textColor)
}

// AtlasKey derives the cache key NeedsRebuild compares against.
func AtlasKey(fontFamily string, fontSize, devicePixelRatio float64, textColor RGBA) string {
	return fmt.Sprintf("%s@%g*%g#%02x%02x%02x%02x", fontFamily, fontSize, devicePixelRatio,
		textColor.R, textColor.G, textColor.B, textColor.A)
}
