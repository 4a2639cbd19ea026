package emfield

import "math"

const (
	// SinkRadius is the capture radius of a negative charge; a query
	// point inside it absorbs the streamline.
	SinkRadius   = 0.2
	sinkRadiusSq = SinkRadius * SinkRadius

	// distSentinel stands in for "no charge of that sign exists".
	distSentinel = 10000.0

	// minDist clamps the inverse-cube term when a query point lands
	// on top of a charge, keeping the field vector finite.
	minDist = 1e-6
)

// FieldSample is the superposed field at one query point plus the
// auxiliary distances the tracer's coloring and termination need.
type FieldSample struct {
	F               Vec3
	MinDistPositive float64
	MinDistNegative float64
	HitSink         bool
}

// Evaluator computes Coulomb-law superposition over a fixed charge
// snapshot. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	charges []Charge
}

func NewEvaluator(charges []Charge) *Evaluator {
	return &Evaluator{charges: charges}
}

func (e *Evaluator) NumCharges() int { return len(e.charges) }

// Sample evaluates F = sum_k value_k * (p - pos_k) / |p - pos_k|^3.
// No physical constant is applied; the tracer normalizes direction
// anyway, so only the superposition shape matters.
func (e *Evaluator) Sample(p Vec3) FieldSample {
	s := FieldSample{
		MinDistPositive: distSentinel,
		MinDistNegative: distSentinel,
	}

	for _, c := range e.charges {
		r := p.Sub(c.Position)
		r2 := r.LengthSq()

		if r2 < sinkRadiusSq && c.Value < 0 {
			s.HitSink = true
		}

		d := math.Sqrt(r2)
		if c.Value > 0 {
			if d < s.MinDistPositive {
				s.MinDistPositive = d
			}
		} else if d < s.MinDistNegative {
			s.MinDistNegative = d
		}

		if d < minDist {
			d = minDist
		}
		inv := 1 / d
		s.F = s.F.Add(r.Scale(c.Value * inv * inv * inv))
	}

	return s
}
