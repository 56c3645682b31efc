// Package config hosts the named configuration options for colors, font,
// opacities, scroll-zoom behavior, and app-only filtering, resolved from
// raw string/bool/float input into concrete typed values with documented
// fallbacks.
package config

import (
	"github.com/rs/zerolog"

	"github.com/Oloruntobi1/flamescope/internal/render"
)

// Config is every named option, resolved to concrete values. Colors are
// pre-parsed; anything that failed to parse falls back to its documented
// default and is logged once via Resolve's logger instead of failing the
// run.
type Config struct {
	PrimaryColor    render.RGBA
	SecondaryColor  render.RGBA
	BackgroundColor render.RGBA
	TextColor       render.RGBA

	FontFamily string
	FontSize   float64

	ShadowOpacity float64
	FramePadding  float64

	Opacities render.Opacities

	ZoomOnScroll       bool
	ScrollZoomSpeed    float64
	ScrollZoomInverted bool

	ShowAppCodeOnly bool
	ModulePath      string
}

// Raw is the string/bool/float form configuration arrives in, from flags,
// a config file, or environment variables — whatever the caller's surface
// is. Empty string fields take the documented default.
type Raw struct {
	PrimaryColor    string
	SecondaryColor  string
	BackgroundColor string
	TextColor       string

	FontFamily string
	FontSize   float64

	ShadowOpacity float64
	FramePadding  float64

	SelectedOpacity   float64
	HoverOpacity      float64
	UnselectedOpacity float64

	ZoomOnScroll       bool
	ScrollZoomSpeed    float64
	ScrollZoomInverted bool

	ShowAppCodeOnly bool
	ModulePath      string
}

// Defaults returns the documented baseline for every option.
func Defaults() Config {
	op := render.DefaultOpacities()
	return Config{
		PrimaryColor:    render.RGBA{R: 0xe6, G: 0x55, B: 0x2b, A: 255},
		SecondaryColor:  render.RGBA{R: 0xf4, G: 0xc2, B: 0x42, A: 255},
		BackgroundColor: render.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 255},
		TextColor:       render.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 255},

		FontFamily: "monospace",
		FontSize:   11,

		ShadowOpacity: 0.4,
		FramePadding:  5,

		Opacities: op,

		ZoomOnScroll:       true,
		ScrollZoomSpeed:    0.05,
		ScrollZoomInverted: false,

		ShowAppCodeOnly: false,
	}
}

// Resolve turns Raw into a Config, falling back field-by-field to Defaults()
// and logging each fallback once through logger. A nil logger is treated
// as zerolog.Nop().
func Resolve(raw Raw, logger *zerolog.Logger) Config {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	cfg := Defaults()

	cfg.PrimaryColor = resolveColor(raw.PrimaryColor, "primary_color", cfg.PrimaryColor, logger)
	cfg.SecondaryColor = resolveColor(raw.SecondaryColor, "secondary_color", cfg.SecondaryColor, logger)
	cfg.BackgroundColor = resolveColor(raw.BackgroundColor, "background_color", cfg.BackgroundColor, logger)
	cfg.TextColor = resolveColor(raw.TextColor, "text_color", cfg.TextColor, logger)

	if raw.FontFamily != "" {
		cfg.FontFamily = raw.FontFamily
	}
	cfg.FontSize = positiveOrDefault(raw.FontSize, "font_size", cfg.FontSize, logger)
	cfg.ShadowOpacity = clampUnitOrDefault(raw.ShadowOpacity, "shadow_opacity", cfg.ShadowOpacity, logger)
	cfg.FramePadding = nonNegativeOrDefault(raw.FramePadding, "frame_padding", cfg.FramePadding, logger)

	cfg.Opacities.Selected = clampUnitOrDefault(raw.SelectedOpacity, "selected_opacity", cfg.Opacities.Selected, logger)
	cfg.Opacities.Hover = clampUnitOrDefault(raw.HoverOpacity, "hover_opacity", cfg.Opacities.Hover, logger)
	cfg.Opacities.Unselected = clampUnitOrDefault(raw.UnselectedOpacity, "unselected_opacity", cfg.Opacities.Unselected, logger)

	cfg.ZoomOnScroll = raw.ZoomOnScroll
	if raw.ScrollZoomSpeed > 0 {
		cfg.ScrollZoomSpeed = raw.ScrollZoomSpeed
	}
	cfg.ScrollZoomInverted = raw.ScrollZoomInverted
	cfg.ShowAppCodeOnly = raw.ShowAppCodeOnly
	cfg.ModulePath = raw.ModulePath

	return cfg
}

func resolveColor(s, field string, fallback render.RGBA, logger *zerolog.Logger) render.RGBA {
	if s == "" {
		return fallback
	}
	c, err := render.ParseHexColor(s, field, fallback)
	if err != nil {
		logger.Warn().Err(err).Str("field", field).Msg("invalid color, using default")
		return fallback
	}
	return c
}

func positiveOrDefault(v float64, field string, fallback float64, logger *zerolog.Logger) float64 {
	if v > 0 {
		return v
	}
	if v != 0 {
		logger.Warn().Str("field", field).Float64("value", v).Msg("invalid value, using default")
	}
	return fallback
}

func nonNegativeOrDefault(v float64, field string, fallback float64, logger *zerolog.Logger) float64 {
	if v > 0 {
		return v
	}
	if v < 0 {
		logger.Warn().Str("field", field).Float64("value", v).Msg("invalid value, using default")
	}
	return fallback
}

func clampUnitOrDefault(v float64, field string, fallback float64, logger *zerolog.Logger) float64 {
	if v == 0 {
		return fallback
	}
	if v < 0 || v > 1 {
		logger.Warn().Str("field", field).Float64("value", v).Msg("out of [0,1], using default")
		return fallback
	}
	return v
}
