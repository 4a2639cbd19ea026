package trace

import "github.com/san-kum/fieldtrace/internal/emfield"

// Engine constants. Step length and escape radius are part of the
// visual contract, not user knobs.
const (
	StepSize       = 0.05
	EscapeRadius   = 50.0
	escapeRadiusSq = EscapeRadius * EscapeRadius
	stallMagSq     = 1e-12

	fadeTailSteps   = 50
	farSinkDistance = 20.0
	translucency    = 0.6

	// DefaultMaxSteps bounds one trace; adjustable per frame in
	// increments of MaxStepsIncrement down to MinMaxSteps.
	DefaultMaxSteps   = 3000
	MinMaxSteps       = 10
	MaxStepsIncrement = 5
)

// Termination is the outcome of one streamline trace. All four are
// normal results, not errors.
type Termination int

const (
	// Absorbed: the line entered a sink's capture radius.
	Absorbed Termination = iota
	// Stalled: the field was too weak to define a direction.
	Stalled
	// Escaped: the line left the simulated region around the origin.
	Escaped
	// Exhausted: the step budget ran out.
	Exhausted
)

func (t Termination) String() string {
	switch t {
	case Absorbed:
		return "absorbed"
	case Stalled:
		return "stalled"
	case Escaped:
		return "escaped"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Segment is one colored piece of a streamline, ready to draw with
// additive blending.
type Segment struct {
	Start, End emfield.Vec3
	Color      RGBA
}

// Result holds the output of a single trace.
type Result struct {
	Segments    []Segment
	Termination Termination
	Steps       int
}

// Tracer integrates streamlines through a fixed evaluator. It is
// stateless across traces and safe to share between goroutines.
type Tracer struct {
	ev       *emfield.Evaluator
	maxSteps int
	palette  Palette
}

func NewTracer(ev *emfield.Evaluator, maxSteps int, palette Palette) *Tracer {
	if maxSteps < MinMaxSteps {
		maxSteps = MinMaxSteps
	}
	return &Tracer{ev: ev, maxSteps: maxSteps, palette: palette}
}

// Trace integrates one field line from seed until a termination
// condition fires. Checks run in priority order each step: absorbed,
// stalled, then (after advancing) escaped; a full budget is exhausted.
func (tr *Tracer) Trace(seed emfield.Vec3) Result {
	res := Result{Segments: make([]Segment, 0, 64), Termination: Exhausted}
	p := seed

	for step := 0; step < tr.maxSteps; step++ {
		s := tr.ev.Sample(p)
		res.Steps = step + 1

		if s.HitSink {
			res.Termination = Absorbed
			return res
		}
		if s.F.LengthSq() < stallMagSq {
			res.Termination = Stalled
			return res
		}

		start := p
		p = p.Add(s.F.Normalize().Scale(StepSize))

		if p.LengthSq() > escapeRadiusSq {
			res.Termination = Escaped
			return res
		}

		res.Segments = append(res.Segments, Segment{
			Start: start,
			End:   p,
			Color: segmentColor(tr.palette, s.MinDistPositive, s.MinDistNegative, step, tr.maxSteps),
		})
	}

	return res
}
