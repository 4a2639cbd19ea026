// Package export renders traced frames to standalone files.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fieldtrace/internal/emfield"
	"github.com/san-kum/fieldtrace/internal/trace"
)

// SegmentsToSVG draws a top-down (x,z) projection of the traced field
// as one SVG line per segment, keeping the trace colors. Bounds come
// from the data with a 10% margin.
func SegmentsToSVG(segments []trace.Segment, width, height int) string {
	if len(segments) == 0 {
		return ""
	}

	minX, maxX := segments[0].Start.X, segments[0].Start.X
	minZ, maxZ := segments[0].Start.Z, segments[0].Start.Z
	grow := func(p emfield.Vec3) {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	for _, seg := range segments {
		grow(seg.Start)
		grow(seg.End)
	}

	rangeX := maxX - minX
	rangeZ := maxZ - minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minZ -= rangeZ * 0.1
	maxZ += rangeZ * 0.1
	rangeX = maxX - minX
	rangeZ = maxZ - minZ

	toScreen := func(p emfield.Vec3) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Z-minZ)/rangeZ*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke-width="1">
`, width, height, width, height))

	for _, seg := range segments {
		x1, y1 := toScreen(seg.Start)
		x2, y2 := toScreen(seg.End)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="rgb(%d,%d,%d)" stroke-opacity="%.3f"/>
`, x1, y1, x2, y2, seg.Color.R, seg.Color.G, seg.Color.B, float64(seg.Color.A)/255))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
