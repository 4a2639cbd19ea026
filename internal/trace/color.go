package trace

import "math"

// RGBA is an 8-bit color. Segments carry their final color so the
// renderer only has to draw with additive blending.
type RGBA struct {
	R, G, B, A uint8
}

// Palette holds the two endpoint colors of the field-line gradient.
type Palette struct {
	Positive RGBA
	Negative RGBA
}

// DefaultPalette matches the classic convention: lines near sources
// render blue, lines near sinks render red.
func DefaultPalette() Palette {
	return Palette{
		Positive: RGBA{0, 121, 241, 255},
		Negative: RGBA{230, 41, 55, 255},
	}
}

// Lerp blends c toward o using fixed-point arithmetic, amount in [0,1].
func (c RGBA) Lerp(o RGBA, amount float64) RGBA {
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return o
	}
	t := int(amount * 256)
	inv := 256 - t
	return RGBA{
		R: uint8((int(c.R)*inv + int(o.R)*t) >> 8),
		G: uint8((int(c.G)*inv + int(o.G)*t) >> 8),
		B: uint8((int(c.B)*inv + int(o.B)*t) >> 8),
		A: 255,
	}
}

// Fade scales alpha only.
func (c RGBA) Fade(alpha float64) RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha * 255)
	return c
}

// mixFactor maps the two nearest-charge distances onto the gradient:
// 0 near a source, 1 near a sink. The exponent compresses the band so
// the red end only dominates close to sinks.
func mixFactor(distPos, distNeg float64) float64 {
	return math.Pow(distPos/(distPos+distNeg+0.001), 0.7)
}

// segmentColor applies the full coloring policy for one emitted step.
func segmentColor(p Palette, distPos, distNeg float64, step, maxSteps int) RGBA {
	col := p.Positive.Lerp(p.Negative, mixFactor(distPos, distNeg))

	alpha := 1.0
	if step > maxSteps-fadeTailSteps {
		alpha = float64(maxSteps-step) / fadeTailSteps
	}
	if distNeg > farSinkDistance {
		alpha *= 0.5
	}

	return col.Fade(translucency * alpha)
}
