package trace

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldtrace/internal/emfield"
)

var _ = Describe("segment coloring", func() {
	var palette Palette

	BeforeEach(func() {
		palette = DefaultPalette()
	})

	It("blends halfway with exponent compression at equal distances", func() {
		// Nearly independent of the absolute distances; the 0.001
		// damping term pulls small-distance values slightly low.
		Expect(mixFactor(1, 1)).To(BeNumerically("~", math.Pow(0.5, 0.7), 1e-3))
		Expect(mixFactor(7, 7)).To(BeNumerically("~", math.Pow(0.5, 0.7), 1e-4))
	})

	It("approaches the source color near a positive charge", func() {
		col := palette.Positive.Lerp(palette.Negative, mixFactor(0.001, 10))
		Expect(col.B).To(BeNumerically(">", col.R))
	})

	It("approaches the sink color near a negative charge", func() {
		col := palette.Positive.Lerp(palette.Negative, mixFactor(10, 0.001))
		Expect(col.R).To(BeNumerically(">", col.B))
	})

	It("applies full translucency outside the fade tail", func() {
		col := segmentColor(palette, 1, 1, 0, DefaultMaxSteps)
		Expect(col.A).To(BeNumerically("~", translucency*255, 1))
	})

	It("ramps alpha to zero over the final fade tail", func() {
		maxSteps := 200
		tail := segmentColor(palette, 1, 1, maxSteps-1, maxSteps)
		mid := segmentColor(palette, 1, 1, maxSteps-fadeTailSteps/2, maxSteps)
		Expect(tail.A).To(BeNumerically("<", mid.A))
		Expect(float64(mid.A)).To(BeNumerically("<", translucency*255))
	})

	It("halves alpha far from any sink", func() {
		near := segmentColor(palette, 1, 5, 0, DefaultMaxSteps)
		far := segmentColor(palette, 1, farSinkDistance+1, 0, DefaultMaxSteps)
		Expect(float64(far.A)).To(BeNumerically("~", float64(near.A)/2, 2))
	})

	It("clamps lerp endpoints", func() {
		Expect(palette.Positive.Lerp(palette.Negative, -0.5)).To(Equal(palette.Positive))
		Expect(palette.Positive.Lerp(palette.Negative, 1.5)).To(Equal(palette.Negative))
	})
})

var _ = Describe("termination boundaries", func() {
	It("absorbs a trace seeded at the capture boundary within one advancing step", func() {
		charges := []emfield.Charge{{Position: emfield.Vec3{}, Value: -1.0}}
		tr := NewTracer(emfield.NewEvaluator(charges), DefaultMaxSteps, DefaultPalette())

		res := tr.Trace(emfield.Vec3{X: emfield.SinkRadius, Y: 0, Z: 0})

		Expect(res.Termination).To(Equal(Absorbed))
		Expect(res.Steps).To(BeNumerically("<=", 2))
		Expect(len(res.Segments)).To(BeNumerically("<=", 1))
	})

	It("never emits more segments than the step budget", func() {
		charges := []emfield.Charge{{Position: emfield.Vec3{}, Value: 3.0}}
		for _, budget := range []int{MinMaxSteps, 100, 500} {
			tr := NewTracer(emfield.NewEvaluator(charges), budget, DefaultPalette())
			res := tr.Trace(emfield.Vec3{X: 0, Y: SeedRadius, Z: 0})
			Expect(len(res.Segments)).To(BeNumerically("<=", budget))
		}
	})

	It("raises the budget floor for degenerate values", func() {
		tr := NewTracer(emfield.NewEvaluator(nil), 0, DefaultPalette())
		res := tr.Trace(emfield.Vec3{X: 1, Y: 0, Z: 0})
		// Empty field: stalls immediately regardless of budget.
		Expect(res.Termination).To(Equal(Stalled))
	})
})
