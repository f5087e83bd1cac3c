package reactor

import (
	"errors"
	"math"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/base"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/debug"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/element"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/logging"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/metrics"
)

func newReactor(opts ...Option) *Reactor {
	log := logging.NewTestLogger()
	cell, err := element.NewCapacitor(1.347e-9, "C_cell")
	Expect(err).NotTo(HaveOccurred())
	barrier, err := element.NewCapacitor(2.13e-9, "C_barrier")
	Expect(err).NotTo(HaveOccurred())
	gap, err := element.NewCapacitor(3.660e-9, "C_gap")
	Expect(err).NotTo(HaveOccurred())
	vs, err := element.NewVoltageSource(log, 6000, 910)
	Expect(err).NotTo(HaveOccurred())
	r, err := New(log, cell, barrier, gap, vs, opts...)
	Expect(err).NotTo(HaveOccurred())
	return r
}

type failingSink struct{ err error }

func (f failingSink) Plot(string, string, []float64, float64) error { return f.err }

func (f failingSink) PlotCurve(string, string, string, []float64, []float64) error { return f.err }

var _ = Describe("Reactor", func() {
	Context("construction", func() {
		It("should reduce the intensity equation", func() {
			r := newReactor(WithRunID("run-1"))
			Expect(r.RunID()).To(Equal("run-1"))
			Expect(r.Intensity().Stage()).To(Equal(base.StageReduced))
			Expect(r.Barrier().Value()).To(Equal(2.13e-9))
			Expect(r.Gap().Symbol()).To(Equal("C_gap"))
			Expect(r.Charge().Equation().String()).To(Equal("Q(t) = V(t)*C_cell"))
		})

		It("should reject missing inputs", func() {
			cell, err := element.NewCapacitor(1e-9, "C")
			Expect(err).NotTo(HaveOccurred())
			_, err = New(logging.NewTestLogger(), cell, cell, cell, nil)
			Expect(err).To(MatchError(ErrNilInput))
		})

		It("should generate a run id by default", func() {
			Expect(newReactor().RunID()).NotTo(BeEmpty())
			Expect(newReactor().RunID()).NotTo(Equal(newReactor().RunID()))
		})
	})

	Context("simulation", func() {
		It("should solve the reference scenario", func() {
			rec := metrics.NewRecorder()
			r := newReactor(WithMetrics(rec))
			res, err := r.Simulate(1e-2, 1e5)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Time).To(HaveLen(1000))
			Expect(res.Intensity).To(HaveLen(1000))
			Expect(res.Voltage).To(HaveLen(1000))
			Expect(res.Power).To(HaveLen(1000))
			Expect(res.RunID).To(Equal(r.RunID()))

			Expect(res.Time[0]).To(BeZero())
			Expect(res.Voltage[0]).To(BeNumerically("~", 0, 1e-9))
			Expect(res.Intensity[0]).To(BeNumerically("~", 7.35462, 1e-5))
			Expect(res.Power[0]).To(BeNumerically("~", 0, 1e-9))

			for k, tm := range res.Time {
				Expect(res.Voltage[k]).To(BeNumerically("~", 6000*math.Sin(910*tm), 1e-6))
				Expect(res.Intensity[k]).To(BeNumerically("~", 6000*910*1.347e-9*math.Cos(910*tm)*1e3, 1e-9))
				Expect(res.Power[k]).To(BeNumerically("~", res.Intensity[k]*res.Voltage[k]*1e-3, 1e-9))
			}
			Expect(r.Intensity().Solutions()).To(Equal(res.Intensity))
			Expect(r.VoltageSource().Solutions()).To(Equal(res.Voltage))

			n, err := testutil.GatherAndCount(rec.Registry(), "reactor_samples_solved_total")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
			path := GinkgoT().TempDir() + "/reactor.prom"
			Expect(rec.WriteTextfile(path)).To(Succeed())
			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`reactor_samples_solved_total{quantity="intensity"} 1000`))
			Expect(string(data)).To(ContainSubstring(`reactor_simulations_total{outcome="success"} 1`))
		})

		It("should match a sequential evaluation", func() {
			r := newReactor()
			res, err := r.Simulate(2e-3, 5e4)
			Expect(err).NotTo(HaveOccurred())
			times, err := maths.TimeAxis(2e-3, 5e4)
			Expect(err).NotTo(HaveOccurred())
			i, err := r.Intensity().Solve(times)
			Expect(err).NotTo(HaveOccurred())
			v, err := r.VoltageSource().Solve(times)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Intensity).To(Equal(i))
			Expect(res.Voltage).To(Equal(v))
		})

		It("should reject an empty time window", func() {
			rec := metrics.NewRecorder()
			r := newReactor(WithMetrics(rec))
			_, err := r.Simulate(0, 1e5)
			Expect(errors.Is(err, maths.ErrInvalidWindow)).To(BeTrue())
			_, err = r.Simulate(1e-6, 1e2)
			Expect(errors.Is(err, maths.ErrNoSamples)).To(BeTrue())
			n, err := testutil.GatherAndCount(rec.Registry(), "reactor_simulations_total")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
		})
	})

	Context("plots", func() {
		It("should write every diagnostic plot", func() {
			axis, err := debug.NewAxis(1e-2, 1e5)
			Expect(err).NotTo(HaveOccurred())
			record := debug.NewRecord(axis)
			dir := GinkgoT().TempDir()
			png := debug.NewPNG(dir, axis, debug.NewNoise(3))

			r := newReactor()
			res, err := r.SimulateWithPlots(1e-2, 1e5, debug.NewMulti(record, png))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Power).To(HaveLen(1000))
			Expect(record.Titles()).To(Equal([]string{
				IntensityTitle, VoltageTitle, PowerTitle, NoisyPowerTitle, base.LissajousTitle,
			}))

			s, ok := record.Series(NoisyPowerTitle)
			Expect(ok).To(BeTrue())
			Expect(s.Severity).To(Equal(2.0))
			Expect(s.Data).To(Equal(res.Power))
			s, ok = record.Series(VoltageTitle)
			Expect(ok).To(BeTrue())
			Expect(s.Severity).To(Equal(100.0))
			Expect(s.YLabel).To(Equal(VoltageLabel))

			for _, title := range record.Titles() {
				_, err := os.Stat(png.Path(title))
				Expect(err).NotTo(HaveOccurred(), title)
			}
		})

		It("should propagate sink errors", func() {
			boom := errors.New("boom")
			_, err := newReactor().SimulateWithPlots(1e-3, 1e5, failingSink{boom})
			Expect(errors.Is(err, boom)).To(BeTrue())
			_, err = newReactor().SimulateWithPlots(1e-3, 1e5, nil)
			Expect(errors.Is(err, debug.ErrNoSink)).To(BeTrue())
		})
	})
})
