package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// RenderUnavailableError reports that the GPU context could not be
// acquired: no drawing is attempted, and camera and data remain valid so
// the caller can retry.
type RenderUnavailableError struct {
	Reason string
}

func (e *RenderUnavailableError) Error() string {
	return "render: GPU context unavailable: " + e.Reason
}

// Renderer owns the SDL-backed GPU resources: the 2D renderer, the current
// font, and its glyph atlas texture. It draws in two passes: filled frame
// rectangles, then alpha-blended glyph quads.
type Renderer struct {
	sdlRenderer *sdl.Renderer
	font        *ttf.Font
	fontFamily  string
	fontSize    float64

	atlas        Atlas
	atlasTexture *sdl.Texture
}

// NewRenderer wraps an existing SDL window's renderer. Callers construct
// the window themselves; cmd/flamescope owns the event loop.
func NewRenderer(window *sdl.Window) (*Renderer, error) {
	sdlRenderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, &RenderUnavailableError{Reason: err.Error()}
	}
	if err := sdlRenderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return nil, &RenderUnavailableError{Reason: err.Error()}
	}
	return &Renderer{sdlRenderer: sdlRenderer}, nil
}

// Atlas returns the renderer's current glyph atlas, the metrics
// ComputeTextSlots needs to lay out label text for this renderer's loaded
// font.
func (r *Renderer) Atlas() Atlas {
	return r.atlas
}

// Destroy releases the renderer's GPU resources.
func (r *Renderer) Destroy() error {
	if r.atlasTexture != nil {
		if err := r.atlasTexture.Destroy(); err != nil {
			return err
		}
	}
	if r.font != nil {
		r.font.Close()
	}
	return r.sdlRenderer.Destroy()
}

// LoadFont (re)builds the glyph atlas for fontFamily/fontSize if the atlas
// cache key has changed — rebuilt when font family, size, pixel ratio, or
// text color change. devicePixelRatio scales the rasterization resolution;
// textColor tints the blended glyph surfaces.
func (r *Renderer) LoadFont(fontFamily string, fontSize, devicePixelRatio float64, textColor RGBA) error {
	key := AtlasKey(fontFamily, fontSize, devicePixelRatio, textColor)
	if r.font != nil && r.atlas.RebuildKey == key {
		return nil
	}

	if r.font != nil {
		r.font.Close()
		r.font = nil
	}

	rasterSize := int(fontSize * devicePixelRatio)
	font, err := ttf.OpenFont(fontFamily, rasterSize)
	if err != nil {
		return &RenderUnavailableError{Reason: fmt.Sprintf("open font %s: %s", fontFamily, err)}
	}

	atlas, surface, err := rasterizeAtlas(font, textColor, key)
	if err != nil {
		font.Close()
		return err
	}
	defer surface.Free()

	if r.atlasTexture != nil {
		r.atlasTexture.Destroy()
	}
	texture, err := r.sdlRenderer.CreateTextureFromSurface(surface)
	if err != nil {
		font.Close()
		return &RenderUnavailableError{Reason: err.Error()}
	}
	if err := texture.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		texture.Destroy()
		font.Close()
		return &RenderUnavailableError{Reason: err.Error()}
	}

	r.font = font
	r.fontFamily = fontFamily
	r.fontSize = fontSize
	r.atlas = atlas
	r.atlasTexture = texture
	return nil
}

// rasterizeAtlas measures and blits every printable ASCII glyph, plus the
// truncation ellipsis, into one RGBA surface, packed by PackAtlas,
// rasterized at runtime rather than loaded from a pre-built bitmap-font
// sheet.
func rasterizeAtlas(font *ttf.Font, textColor RGBA, key string) (Atlas, *sdl.Surface, error) {
	sizes := make([]GlyphSize, 0, int(LastGlyph-FirstGlyph)+2)
	surfaces := make(map[rune]*sdl.Surface, len(sizes))

	runes := make([]rune, 0, cap(sizes))
	for r := FirstGlyph; r <= LastGlyph; r++ {
		runes = append(runes, r)
	}
	runes = append(runes, ellipsis)

	for _, r := range runes {
		minx, _, miny, _, advance, err := font.GlyphMetrics(r)
		if err != nil {
			continue
		}
		surface, err := font.RenderGlyphBlended(r, sdl.Color{R: textColor.R, G: textColor.G, B: textColor.B, A: textColor.A})
		if err != nil {
			continue
		}
		surfaces[r] = surface
		sizes = append(sizes, GlyphSize{
			Rune: r, W: int(surface.W), H: int(surface.H),
			Advance: int(advance), BearingX: minx, BearingY: miny,
		})
	}
	defer func() {
		for _, s := range surfaces {
			s.Free()
		}
	}()

	packed, err := PackAtlas(sizes, 1024, key)
	if err != nil {
		return Atlas{}, nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, packed.Width, packed.Height))
	for r, m := range packed.Glyphs {
		src := surfaces[r]
		if src == nil || m.AtlasW == 0 {
			continue
		}
		px := int(m.AtlasX * float64(packed.Width))
		py := int(m.AtlasY * float64(packed.Height))
		srcImg := surfaceToImage(src)
		draw.Draw(dst, image.Rect(px, py, px+src.W, py+src.H), srcImg, image.Point{}, draw.Src)
	}

	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		nil, int32(packed.Width), int32(packed.Height), 32, int32(packed.Width)*4, sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return Atlas{}, nil, &RenderUnavailableError{Reason: err.Error()}
	}
	pixels := surface.Pixels()
	copy(pixels, dst.Pix)

	return packed, surface, nil
}

func surfaceToImage(s *sdl.Surface) image.Image {
	return &image.RGBA{
		Pix:    s.Pixels(),
		Stride: int(s.Pitch),
		Rect:   image.Rect(0, 0, int(s.W), int(s.H)),
	}
}

// DrawFrames runs the first GPU pass: one filled, alpha-blended rectangle
// per frame draw.
func (r *Renderer) DrawFrames(draws []FrameDraw) error {
	for _, d := range draws {
		c := d.Color
		if err := r.sdlRenderer.SetDrawColor(c.R, c.G, c.B, uint8(d.Opacity*255)); err != nil {
			return fmt.Errorf("render: set frame color: %w", err)
		}
		rect := &sdl.Rect{
			X: int32(d.SX1),
			Y: int32(d.SY),
			W: int32(d.SX2 - d.SX1),
			H: int32(d.Height),
		}
		if rect.W <= 0 || rect.H <= 0 {
			continue
		}
		if err := r.sdlRenderer.FillRect(rect); err != nil {
			return fmt.Errorf("render: fill frame rect: %w", err)
		}
	}
	return nil
}

// DrawText runs the second GPU pass: the glyph atlas texture copied once
// per visible character, shadow geometry first when shadowOpacity > 0.
func (r *Renderer) DrawText(slots []TextSlot, shadowOpacity float64) error {
	if r.atlasTexture == nil {
		return nil
	}
	for _, slot := range slots {
		for _, g := range slot.Glyphs {
			src := &sdl.Rect{
				X: int32(g.Metrics.AtlasX * float64(r.atlas.Width)),
				Y: int32(g.Metrics.AtlasY * float64(r.atlas.Height)),
				W: int32(g.Metrics.PixelW),
				H: int32(g.Metrics.PixelH),
			}
			dst := &sdl.Rect{
				X: int32(g.X + g.Metrics.XOffset),
				Y: int32(g.Y + g.Metrics.YOffset),
				W: int32(g.Metrics.PixelW),
				H: int32(g.Metrics.PixelH),
			}

			if shadowAlpha := ShadowAlpha(shadowOpacity, slot.Frame.Opacity, g.Alpha); shadowAlpha > 0 {
				if err := r.atlasTexture.SetColorMod(0, 0, 0); err != nil {
					return err
				}
				if err := r.atlasTexture.SetAlphaMod(uint8(shadowAlpha * 255)); err != nil {
					return err
				}
				shadowDst := &sdl.Rect{X: dst.X + 1, Y: dst.Y + 1, W: dst.W, H: dst.H}
				if err := r.sdlRenderer.Copy(r.atlasTexture, src, shadowDst); err != nil {
					return err
				}
			}

			if err := r.atlasTexture.SetColorMod(255, 255, 255); err != nil {
				return err
			}
			if err := r.atlasTexture.SetAlphaMod(uint8(g.Alpha * slot.Frame.Opacity * 255)); err != nil {
				return err
			}
			if err := r.sdlRenderer.Copy(r.atlasTexture, src, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear fills the viewport with background before the frame pass.
func (r *Renderer) Clear(background RGBA) error {
	if err := r.sdlRenderer.SetDrawColor(background.R, background.G, background.B, 255); err != nil {
		return err
	}
	return r.sdlRenderer.Clear()
}

// Present flips the backbuffer, the "paint" step of the event loop.
func (r *Renderer) Present() {
	r.sdlRenderer.Present()
}
