package trace

import (
	"math"

	"github.com/san-kum/fieldtrace/internal/emfield"
)

// SeedRadius is the spherical shell around a positive charge from
// which streamlines launch.
const SeedRadius = 0.1

// SeedCount returns the number of seeds one positive charge produces
// at the given resolution: (3R-1) * 4R, poles excluded.
func SeedCount(resolution int) int {
	if resolution < 1 {
		resolution = 1
	}
	return (3*resolution - 1) * 4 * resolution
}

// Seeds enumerates the shell deterministically: polar bands first
// (theta index 1..numTheta-1, the poles are skipped), then azimuth
// within each band. Callers rely on this ordering being stable.
func Seeds(center emfield.Vec3, resolution int) []emfield.Vec3 {
	if resolution < 1 {
		resolution = 1
	}
	numTheta := 3 * resolution
	numPhi := 4 * resolution

	seeds := make([]emfield.Vec3, 0, (numTheta-1)*numPhi)
	for t := 1; t < numTheta; t++ {
		theta := math.Pi * float64(t) / float64(numTheta)
		sinT, cosT := math.Sincos(theta)

		for p := 0; p < numPhi; p++ {
			phi := 2 * math.Pi * float64(p) / float64(numPhi)
			seeds = append(seeds, emfield.Vec3{
				X: center.X + SeedRadius*sinT*math.Cos(phi),
				Y: center.Y + SeedRadius*sinT*math.Sin(phi),
				Z: center.Z + SeedRadius*cosT,
			})
		}
	}
	return seeds
}
