package trace

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/fieldtrace/internal/emfield"
)

// FrameConfig carries the two user knobs plus the palette. Workers
// only affects the parallel path; <= 0 means NumCPU.
type FrameConfig struct {
	MaxSteps   int
	Resolution int
	Palette    Palette
	Workers    int
}

func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		MaxSteps:   DefaultMaxSteps,
		Resolution: 3,
		Palette:    DefaultPalette(),
	}
}

// ClampKnobs enforces the knob floors in place.
func (c *FrameConfig) ClampKnobs() {
	if c.MaxSteps < MinMaxSteps {
		c.MaxSteps = MinMaxSteps
	}
	if c.Resolution < 1 {
		c.Resolution = 1
	}
}

// Frame is one fully traced charge configuration.
type Frame struct {
	Segments []Segment
	Stats    Stats
}

// Orchestrator runs every streamline of a frame: for each positive
// charge, for each seed on its shell, one trace against a snapshot.
// Nothing is cached between frames; charges may move every frame and
// a full recompute is cheap relative to the frame budget.
type Orchestrator struct {
	cfg FrameConfig
}

func NewOrchestrator(cfg FrameConfig) *Orchestrator {
	cfg.ClampKnobs()
	return &Orchestrator{cfg: cfg}
}

func (o *Orchestrator) Config() FrameConfig { return o.cfg }

// Frame traces serially in seed order.
func (o *Orchestrator) Frame(charges []emfield.Charge) *Frame {
	ev := emfield.NewEvaluator(charges)
	tr := NewTracer(ev, o.cfg.MaxSteps, o.cfg.Palette)

	frame := &Frame{}
	for _, c := range charges {
		if !c.Positive() {
			continue
		}
		for _, seed := range Seeds(c.Position, o.cfg.Resolution) {
			res := tr.Trace(seed)
			frame.Stats.observe(res)
			frame.Segments = append(frame.Segments, res.Segments...)
		}
	}
	return frame
}

// FrameParallel fans traces out across workers. Each trace reads the
// shared snapshot and writes only its own result slot, so the output
// is byte-identical to the serial path.
func (o *Orchestrator) FrameParallel(ctx context.Context, charges []emfield.Charge) (*Frame, error) {
	seeds := o.collectSeeds(charges)
	if len(seeds) == 0 {
		return &Frame{}, nil
	}

	ev := emfield.NewEvaluator(charges)
	tr := NewTracer(ev, o.cfg.MaxSteps, o.cfg.Palette)

	workers := o.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}

	results := make([]Result, len(seeds))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = tr.Trace(seeds[i])
			}
		}()
	}

	var err error
feed:
	for i := range seeds {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	frame := &Frame{}
	for _, res := range results {
		frame.Stats.observe(res)
		frame.Segments = append(frame.Segments, res.Segments...)
	}
	return frame, nil
}

func (o *Orchestrator) collectSeeds(charges []emfield.Charge) []emfield.Vec3 {
	var seeds []emfield.Vec3
	for _, c := range charges {
		if c.Positive() {
			seeds = append(seeds, Seeds(c.Position, o.cfg.Resolution)...)
		}
	}
	return seeds
}
