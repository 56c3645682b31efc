// Package render implements a two-pass GPU pipeline that draws filled
// frame rectangles and then a glyph-atlas text overlay. The geometry and
// color math in this package is pure and unit-testable; the actual GPU
// calls live in renderer.go behind the veandco/go-sdl2 binding.
package render

import "math"

// RGBA is a straightforward 0..255 color, parsed once from configuration
// hex strings and reused every frame.
type RGBA struct {
	R, G, B, A uint8
}

// ConfigurationError reports a recoverable configuration problem — an
// invalid hex color, a non-finite dimension — that the caller should log
// once and fall back to documented defaults for, never crash on.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "render: invalid " + e.Field + ": " + e.Reason
}

// ParseHexColor parses a "#rrggbb" or "rrggbb" string. On malformed input it
// returns the fallback color and a *ConfigurationError the caller is
// expected to log once.
func ParseHexColor(s, field string, fallback RGBA) (RGBA, error) {
	s = trimHash(s)
	if len(s) != 6 {
		return fallback, &ConfigurationError{Field: field, Reason: "expected 6 hex digits, got " + s}
	}
	r, okR := hexByte(s[0:2])
	g, okG := hexByte(s[2:4])
	b, okB := hexByte(s[4:6])
	if !okR || !okG || !okB {
		return fallback, &ConfigurationError{Field: field, Reason: "non-hex digit in " + s}
	}
	return RGBA{R: r, G: g, B: b, A: 255}, nil
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

func hexByte(s string) (uint8, bool) {
	hi, ok := hexNibble(s[0])
	if !ok {
		return 0, false
	}
	lo, ok := hexNibble(s[1])
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// DepthRatio is node.value / (sum of node'.value over all frames at the
// same depth) — the denominator InterpolateByDepthRatio needs for
// same-depth-ratio coloring.
func DepthRatio(value, depthTotal int64) float64 {
	if depthTotal <= 0 {
		return 0
	}
	r := float64(value) / float64(depthTotal)
	if r > 1 {
		return 1
	}
	return r
}

// InterpolateByDepthRatio computes interpolate(primary, secondary, 1 - r^2),
// a quadratic that emphasizes dominant frames at a depth.
func InterpolateByDepthRatio(primary, secondary RGBA, r float64) RGBA {
	t := 1 - r*r
	return lerp(primary, secondary, t)
}

func lerp(a, b RGBA, t float64) RGBA {
	t = math.Max(0, math.Min(1, t))
	return RGBA{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
		A: lerpByte(a.A, b.A, t),
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Opacities holds the three named opacity levels a frame can be drawn at.
type Opacities struct {
	Selected   float64
	Hover      float64
	Unselected float64
}

// DefaultOpacities is the documented baseline opacity set.
func DefaultOpacities() Opacities {
	return Opacities{Selected: 1.0, Hover: 0.9, Unselected: 0.75}
}

// FrameOpacity picks the opacity for a node given the current selection and
// hover ids.
func FrameOpacity(nodeID, selectedID, hoveredID string, op Opacities) float64 {
	switch {
	case nodeID != "" && nodeID == selectedID:
		return op.Selected
	case nodeID != "" && nodeID == hoveredID:
		return op.Hover
	default:
		return op.Unselected
	}
}
