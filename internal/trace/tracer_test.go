package trace

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/fieldtrace/internal/emfield"
)

func dipole() []emfield.Charge {
	return []emfield.Charge{
		{Position: emfield.Vec3{X: -8, Y: 0, Z: 0}, Value: 2.0},
		{Position: emfield.Vec3{X: 8, Y: 0, Z: 0}, Value: -2.0},
	}
}

func TestTraceAbsorbedAtSinkBoundary(t *testing.T) {
	charges := []emfield.Charge{{Position: emfield.Vec3{}, Value: -1.0}}
	tr := NewTracer(emfield.NewEvaluator(charges), DefaultMaxSteps, DefaultPalette())

	// Seeded just inside the capture radius: absorbed on the first step.
	res := tr.Trace(emfield.Vec3{X: 0.19, Y: 0, Z: 0})
	if res.Termination != Absorbed {
		t.Fatalf("expected absorbed, got %v", res.Termination)
	}
	if res.Steps != 1 {
		t.Errorf("expected termination within one step, took %d", res.Steps)
	}
	if len(res.Segments) != 0 {
		t.Errorf("absorbed first step should emit no segments, got %d", len(res.Segments))
	}
}

func TestTraceEscapes(t *testing.T) {
	charges := []emfield.Charge{{Position: emfield.Vec3{}, Value: 5.0}}
	tr := NewTracer(emfield.NewEvaluator(charges), DefaultMaxSteps, DefaultPalette())

	res := tr.Trace(emfield.Vec3{X: SeedRadius, Y: 0, Z: 0})
	if res.Termination != Escaped {
		t.Fatalf("expected escaped, got %v", res.Termination)
	}
	if len(res.Segments) > DefaultMaxSteps {
		t.Errorf("segment count exceeds step budget: %d", len(res.Segments))
	}

	last := res.Segments[len(res.Segments)-1]
	if last.End.Length() > EscapeRadius {
		t.Errorf("emitted segment beyond escape radius at %v", last.End)
	}
}

func TestTraceStalled(t *testing.T) {
	// Two equal positive charges; the midpoint axis is a null of the
	// field, so a trace seeded exactly there cannot pick a direction.
	charges := []emfield.Charge{
		{Position: emfield.Vec3{X: -1, Y: 0, Z: 0}, Value: 1.0},
		{Position: emfield.Vec3{X: 1, Y: 0, Z: 0}, Value: 1.0},
	}
	tr := NewTracer(emfield.NewEvaluator(charges), DefaultMaxSteps, DefaultPalette())

	res := tr.Trace(emfield.Vec3{X: 0, Y: 0, Z: 0})
	if res.Termination != Stalled {
		t.Fatalf("expected stalled, got %v", res.Termination)
	}
	if res.Steps != 1 {
		t.Errorf("stall should fire on first sample, took %d steps", res.Steps)
	}
}

func TestTraceExhausted(t *testing.T) {
	tr := NewTracer(emfield.NewEvaluator(dipole()), MinMaxSteps, DefaultPalette())

	res := tr.Trace(emfield.Vec3{X: -8 + SeedRadius, Y: 0, Z: 0})
	if res.Termination != Exhausted {
		t.Fatalf("expected exhausted with tiny budget, got %v", res.Termination)
	}
	if res.Steps != MinMaxSteps {
		t.Errorf("expected %d steps, got %d", MinMaxSteps, res.Steps)
	}
	if len(res.Segments) != MinMaxSteps {
		t.Errorf("expected %d segments, got %d", MinMaxSteps, len(res.Segments))
	}
}

func TestTraceDipoleLandsOnSink(t *testing.T) {
	tr := NewTracer(emfield.NewEvaluator(dipole()), DefaultMaxSteps, DefaultPalette())

	// Launch toward the sink along the axis.
	res := tr.Trace(emfield.Vec3{X: -8 + SeedRadius, Y: 0, Z: 0})
	if res.Termination != Absorbed {
		t.Fatalf("axis streamline should be absorbed, got %v", res.Termination)
	}

	end := res.Segments[len(res.Segments)-1].End
	if end.DistanceTo(emfield.Vec3{X: 8, Y: 0, Z: 0}) > emfield.SinkRadius+StepSize {
		t.Errorf("trace ended far from the sink: %v", end)
	}
}

func TestTraceStepLength(t *testing.T) {
	tr := NewTracer(emfield.NewEvaluator(dipole()), 100, DefaultPalette())

	res := tr.Trace(emfield.Vec3{X: -8, Y: SeedRadius, Z: 0})
	for i, seg := range res.Segments {
		l := seg.End.Sub(seg.Start).Length()
		if math.Abs(l-StepSize) > 1e-9 {
			t.Fatalf("segment %d has length %g, expected %g", i, l, StepSize)
		}
	}

	// Segments chain end to start.
	for i := 1; i < len(res.Segments); i++ {
		if res.Segments[i].Start != res.Segments[i-1].End {
			t.Fatalf("segment %d does not continue the previous one", i)
		}
	}
}

func TestFrameEmptyStore(t *testing.T) {
	o := NewOrchestrator(DefaultFrameConfig())

	frame := o.Frame(nil)
	if frame.Stats.Traces != 0 || len(frame.Segments) != 0 {
		t.Errorf("no charges should trace nothing, got %d traces", frame.Stats.Traces)
	}
}

func TestFrameOnlyNegativeCharges(t *testing.T) {
	o := NewOrchestrator(DefaultFrameConfig())

	frame := o.Frame([]emfield.Charge{{Position: emfield.Vec3{}, Value: -2.0}})
	if frame.Stats.Traces != 0 {
		t.Errorf("negative charges are sinks, not sources; traced %d", frame.Stats.Traces)
	}
}

func TestFrameTraceCount(t *testing.T) {
	cfg := DefaultFrameConfig()
	cfg.Resolution = 2
	cfg.MaxSteps = 50
	o := NewOrchestrator(cfg)

	frame := o.Frame(dipole())
	if frame.Stats.Traces != SeedCount(2) {
		t.Errorf("expected %d traces for one positive charge, got %d", SeedCount(2), frame.Stats.Traces)
	}
}

func TestFrameParallelMatchesSerial(t *testing.T) {
	cfg := DefaultFrameConfig()
	cfg.Resolution = 2
	cfg.MaxSteps = 200
	cfg.Workers = 4
	o := NewOrchestrator(cfg)

	charges := append(dipole(), emfield.Charge{Position: emfield.Vec3{X: 0, Y: 0, Z: 6}, Value: 1.5})

	serial := o.Frame(charges)
	parallel, err := o.FrameParallel(context.Background(), charges)
	if err != nil {
		t.Fatalf("parallel frame failed: %v", err)
	}

	if len(serial.Segments) != len(parallel.Segments) {
		t.Fatalf("segment count mismatch: %d vs %d", len(serial.Segments), len(parallel.Segments))
	}
	for i := range serial.Segments {
		if serial.Segments[i] != parallel.Segments[i] {
			t.Fatalf("segment %d differs between serial and parallel paths", i)
		}
	}
	if serial.Stats.Traces != parallel.Stats.Traces || serial.Stats.Segments != parallel.Stats.Segments {
		t.Fatal("stats diverged between serial and parallel paths")
	}
	for _, term := range []Termination{Absorbed, Stalled, Escaped, Exhausted} {
		if serial.Stats.Count(term) != parallel.Stats.Count(term) {
			t.Fatalf("%v count diverged", term)
		}
	}
}

func TestFrameParallelCancellation(t *testing.T) {
	cfg := DefaultFrameConfig()
	cfg.Resolution = 4
	o := NewOrchestrator(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.FrameParallel(ctx, dipole()); err == nil {
		t.Error("expected context error from cancelled frame")
	}
}

func TestClampKnobs(t *testing.T) {
	cfg := FrameConfig{MaxSteps: 3, Resolution: 0}
	cfg.ClampKnobs()
	if cfg.MaxSteps != MinMaxSteps {
		t.Errorf("maxSteps floor not applied: %d", cfg.MaxSteps)
	}
	if cfg.Resolution != 1 {
		t.Errorf("resolution floor not applied: %d", cfg.Resolution)
	}
}
