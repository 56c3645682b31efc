package camera

// Matrix is a 2D affine transform, row-major, mapping screen pixels to clip
// space [-1, 1]^2 with Y flipped: [a b tx; c d ty; 0 0 1].
type Matrix struct {
	A, B, C, D, TX, TY float64
}

// ClipMatrix builds the pixel-to-clip-space matrix for a viewport of the
// given size. Camera pan/zoom is applied to primitive coordinates directly
// before this matrix runs, so the same matrix also converts screen-space
// text without it scaling under horizontal zoom.
func ClipMatrix(viewportW, viewportH float64) Matrix {
	return Matrix{
		A: 2 / viewportW, B: 0, TX: -1,
		C: 0, D: -2 / viewportH, TY: 1,
	}
}

// Apply transforms a screen-pixel point into clip space.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.TX, m.C*x + m.D*y + m.TY
}
