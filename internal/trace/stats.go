package trace

// Stats aggregates per-trace outcomes for one frame. The plot and
// bench commands read these; the renderers ignore them.
type Stats struct {
	Traces    int
	Segments  int
	StepCount []int // steps taken by each trace, in trace order

	absorbed  int
	stalled   int
	escaped   int
	exhausted int
}

func (s *Stats) observe(r Result) {
	s.Traces++
	s.Segments += len(r.Segments)
	s.StepCount = append(s.StepCount, r.Steps)

	switch r.Termination {
	case Absorbed:
		s.absorbed++
	case Stalled:
		s.stalled++
	case Escaped:
		s.escaped++
	case Exhausted:
		s.exhausted++
	}
}

func (s *Stats) Count(t Termination) int {
	switch t {
	case Absorbed:
		return s.absorbed
	case Stalled:
		return s.stalled
	case Escaped:
		return s.escaped
	case Exhausted:
		return s.exhausted
	}
	return 0
}

func (s *Stats) MeanSteps() float64 {
	if s.Traces == 0 {
		return 0
	}
	total := 0
	for _, n := range s.StepCount {
		total += n
	}
	return float64(total) / float64(s.Traces)
}
