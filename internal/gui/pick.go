package gui

import (
	"math"

	"github.com/san-kum/fieldtrace/internal/emfield"
)

// GroundLimit bounds picked points; charges live on a finite plate.
const GroundLimit = 50.0

const (
	lookSensitivity = 0.003
	moveSpeed       = 15.0
	pitchLimit      = 1.5
)

var groundNormal = emfield.Vec3{Y: 1}

// GroundIntersection intersects a mouse ray with the y=0 plane.
// Rays parallel to the plane or pointing away miss; hits are clamped
// to the plate.
func GroundIntersection(origin, dir emfield.Vec3) (emfield.Vec3, bool) {
	denom := dir.Dot(groundNormal)
	if math.Abs(denom) < 1e-3 {
		return emfield.Vec3{}, false
	}
	t := -origin.Dot(groundNormal) / denom
	if t < 0 {
		return emfield.Vec3{}, false
	}
	p := origin.Add(dir.Scale(t))
	p.Y = 0
	p.X = clamp(p.X, -GroundLimit, GroundLimit)
	p.Z = clamp(p.Z, -GroundLimit, GroundLimit)
	return p, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FlyCamera is the free-look camera state, kept apart from raylib so
// the math is testable. Yaw spins around world Y, pitch is clamped
// short of the poles.
type FlyCamera struct {
	Position emfield.Vec3
	Yaw      float64
	Pitch    float64
}

func (c *FlyCamera) Forward() emfield.Vec3 {
	cp := math.Cos(c.Pitch)
	return emfield.Vec3{
		X: math.Sin(c.Yaw) * cp,
		Y: math.Sin(c.Pitch),
		Z: math.Cos(c.Yaw) * cp,
	}
}

func (c *FlyCamera) Right() emfield.Vec3 {
	return c.Forward().Cross(emfield.Vec3{Y: 1})
}

// Look applies a mouse delta in pixels.
func (c *FlyCamera) Look(dx, dy float64) {
	c.Yaw -= dx * lookSensitivity
	c.Pitch -= dy * lookSensitivity
	c.Pitch = clamp(c.Pitch, -pitchLimit, pitchLimit)
}

// Move advances the camera along an unnormalized move vector composed
// from the held movement keys.
func (c *FlyCamera) Move(dir emfield.Vec3, dt float64) {
	c.Position = c.Position.Add(dir.Scale(moveSpeed * dt))
}

// AimAt points the camera at a world position from where it stands.
func (c *FlyCamera) AimAt(target emfield.Vec3) {
	fwd := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(fwd.Y)
	c.Yaw = math.Atan2(fwd.X, fwd.Z)
}
