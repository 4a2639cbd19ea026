package viz

import (
	"math"
	"sort"

	"github.com/san-kum/fieldtrace/internal/emfield"
	"github.com/san-kum/fieldtrace/internal/trace"
)

// Camera projects world space onto the canvas with rotation around
// the world axes plus a perspective divide.
type Camera struct {
	Distance   float64
	Near       float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 60, Near: 0.1, Zoom: 1.0, RotX: -0.6}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p emfield.Vec3) emfield.Vec3 {
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project maps a world point to dot coordinates on a canvas of the
// given dot dimensions. The bool reports whether the point landed on
// screen. Dot cells are roughly twice as tall as wide, so x doubles.
func (c *Camera) Project(p emfield.Vec3, dotW, dotH int) (x, y int, depth float64, ok bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := math.Min(float64(dotW)/2, float64(dotH))
	pScale := minDim / 55.0 // world spans +-50 with a margin

	x = int(rot.X*scale*pScale*2) + dotW/2
	y = int(-rot.Y*scale*pScale) + dotH/2
	return x, y, rot.Z, x >= 0 && x < dotW && y >= 0 && y < dotH
}

// AnsiColor folds an RGBA segment color into the 6x6x6 ANSI cube.
func AnsiColor(c trace.RGBA) uint8 {
	r := int(c.R) * 6 / 256
	g := int(c.G) * 6 / 256
	b := int(c.B) * 6 / 256
	return uint8(16 + 36*r + 6*g + b)
}

type projected struct {
	x1, y1, x2, y2 int
	depth          float64
	color          uint8
}

// RenderSegments draws traced field lines back to front. Alpha below
// a threshold is dropped instead of blended; Braille cells have no
// real translucency to offer.
func RenderSegments(c *Canvas, segments []trace.Segment, cam *Camera) {
	dotW, dotH := c.Width*2, c.Height*4

	proj := make([]projected, 0, len(segments))
	for _, seg := range segments {
		if seg.Color.A < 32 {
			continue
		}
		x1, y1, d1, v1 := cam.Project(seg.Start, dotW, dotH)
		x2, y2, d2, v2 := cam.Project(seg.End, dotW, dotH)
		if v1 || v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2, AnsiColor(seg.Color)})
		}
	}

	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, p := range proj {
		c.Line(p.x1, p.y1, p.x2, p.y2, p.color)
	}
}

// RenderCharges overlays charge markers after the lines so they stay
// visible: a small diamond of dots per charge.
func RenderCharges(c *Canvas, charges []emfield.Charge, selected int, cam *Camera) {
	dotW, dotH := c.Width*2, c.Height*4

	for i, ch := range charges {
		x, y, _, ok := cam.Project(ch.Position, dotW, dotH)
		if !ok {
			continue
		}

		color := uint8(39) // blue for sources
		if ch.Value < 0 {
			color = 196 // red for sinks
		}
		if i == selected {
			color = 231
		}

		for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}, {0, 2}, {0, -2}} {
			c.Set(x+d[0], y+d[1], color)
		}
	}
}
