package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/render"
)

func asciiSizes() []render.GlyphSize {
	sizes := make([]render.GlyphSize, 0, render.LastGlyph-render.FirstGlyph+1)
	for r := render.FirstGlyph; r <= render.LastGlyph; r++ {
		sizes = append(sizes, render.GlyphSize{Rune: r, W: 8, H: 14, Advance: 7})
	}
	return sizes
}

func TestPackAtlas_PlacesEveryGlyphWithinBounds(t *testing.T) {
	atlas, err := render.PackAtlas(asciiSizes(), 256, "mono@11")
	require.NoError(t, err)
	require.Len(t, atlas.Glyphs, int(render.LastGlyph-render.FirstGlyph+1))

	for r, m := range atlas.Glyphs {
		require.GreaterOrEqualf(t, m.AtlasX, 0.0, "rune %q", r)
		require.LessOrEqualf(t, m.AtlasX+m.AtlasW, 1.0+1e-9, "rune %q", r)
		require.GreaterOrEqualf(t, m.AtlasY, 0.0, "rune %q", r)
		require.LessOrEqualf(t, m.AtlasY+m.AtlasH, 1.0+1e-9, "rune %q", r)
	}
}

func TestPackAtlas_InvalidWidthErrors(t *testing.T) {
	_, err := render.PackAtlas(asciiSizes(), 0, "mono@11")
	require.Error(t, err)
}

func TestPackAtlas_ZeroSizeGlyphKeepsAdvanceOnly(t *testing.T) {
	atlas, err := render.PackAtlas([]render.GlyphSize{{Rune: ' ', W: 0, H: 0, Advance: 5}}, 64, "k")
	require.NoError(t, err)
	require.Equal(t, 5.0, atlas.Glyphs[' '].XAdvance)
	require.Equal(t, 0.0, atlas.Glyphs[' '].AtlasW)
}

func TestNeedsRebuild_DetectsFontOrColorChange(t *testing.T) {
	atlas, _ := render.PackAtlas(asciiSizes(), 256, render.AtlasKey("mono", 11, 1, render.RGBA{R: 255, A: 255}))

	require.False(t, render.NeedsRebuild(atlas, "mono", 11, 1, render.RGBA{R: 255, A: 255}))
	require.True(t, render.NeedsRebuild(atlas, "mono", 12, 1, render.RGBA{R: 255, A: 255}))
	require.True(t, render.NeedsRebuild(atlas, "mono", 11, 1, render.RGBA{G: 255, A: 255}))
}
