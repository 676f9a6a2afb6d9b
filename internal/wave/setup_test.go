package wave_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/seastate/internal/wave"
)

var _ = Describe("Setup", func() {
	var (
		cfg    wave.Config
		params wave.Params
	)

	BeforeEach(func() {
		cfg = wave.Config{
			Type:       wave.Irregular,
			Spectrum:   wave.PiersonMoskowitz,
			Period:     8,
			Height:     2.5,
			PhaseSeed:  7,
			Directions: []float64{0},
			Spread:     []float64{1},
			Gauges:     [3]wave.Gauge{{X: 20}, {Y: 20}, {X: -15, Y: 15}},
		}
		params = wave.DefaultParams()
		params.EndTime = 1800
		params.Dt = 0.25
	})

	Context("with an equal-energy irregular sea", func() {
		var st *wave.State

		BeforeEach(func() {
			var err error
			st, err = wave.Setup(cfg, params)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rebins to the default bin count", func() {
			Expect(st.Grid.Len()).To(Equal(wave.DefaultNumFreqEqualEnergy))
			Expect(st.K).To(HaveLen(st.Grid.Len()))
			Expect(st.Spectrum.S).To(HaveLen(st.Grid.Len()))
			Expect(st.Phase.Freqs()).To(Equal(st.Grid.Len()))
			Expect(st.Phase.Dirs()).To(Equal(1))
		})

		It("keeps frequencies increasing with positive bandwidths", func() {
			for i := 1; i < st.Grid.Len(); i++ {
				Expect(st.Grid.W[i]).To(BeNumerically(">", st.Grid.W[i-1]))
			}
			for _, dw := range st.Grid.DW {
				Expect(dw).To(BeNumerically(">", 0))
			}
		})

		It("produces four aligned series", func() {
			n := params.Steps() + 1
			Expect(st.Origin.Len()).To(Equal(n))
			for _, g := range st.Gauges {
				Expect(g.Len()).To(Equal(n))
			}
			Expect(st.Origin.Time[1] - st.Origin.Time[0]).To(BeNumerically("~", params.Dt, 1e-12))
		})

		It("reproduces the significant height statistically", func() {
			hs := 4 * stat.StdDev(st.Origin.Eta, nil)
			Expect(hs).To(BeNumerically("~", cfg.Height, 0.15*cfg.Height))
		})

		It("reports deep-water power close to the Hs-Te estimate", func() {
			// Pw = rho g^2 Hs^2 Te / (64 pi) with Te ~ 0.857 Tp for PM.
			te := 0.857 * cfg.Period
			want := params.Density * params.Gravity * params.Gravity * cfg.Height * cfg.Height * te / (64 * math.Pi)
			Expect(st.Power).To(BeNumerically("~", want, 0.05*want))
		})
	})

	Context("phase reproducibility", func() {
		It("repeats bit for bit with the same seed", func() {
			a, err := wave.Setup(cfg, params)
			Expect(err).NotTo(HaveOccurred())
			b, err := wave.Setup(cfg, params)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Phase.Equal(b.Phase)).To(BeTrue())
			Expect(a.Grid.W).To(Equal(b.Grid.W))
			Expect(a.Origin.Eta).To(Equal(b.Origin.Eta))
		})

		It("differs between unseeded runs", func() {
			cfg.PhaseSeed = 0
			cfg.Discretization = wave.Traditional
			cfg.NumFreq = 200
			a, err := wave.Setup(cfg, params)
			Expect(err).NotTo(HaveOccurred())
			b, err := wave.Setup(cfg, params)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Phase.Equal(b.Phase)).To(BeFalse())
		})

		It("runs independent seeds concurrently", func() {
			cfg.Discretization = wave.Traditional
			cfg.NumFreq = 150
			params.EndTime = 100
			states, err := wave.Ensemble(cfg, params, []int64{1, 2, 3, 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(states).To(HaveLen(4))
			Expect(states[0].Phase.Equal(states[3].Phase)).To(BeTrue())
			Expect(states[0].Phase.Equal(states[1].Phase)).To(BeFalse())
			Expect(states[0].Config.PhaseSeed).To(Equal(int64(1)))
		})
	})

	Context("with a frequency range override", func() {
		It("logs and clamps bounds outside the BEM range", func() {
			core, logs := observer.New(zapcore.WarnLevel)
			cfg.Discretization = wave.Traditional
			cfg.NumFreq = 100
			cfg.FreqRange = []float64{-0.5, 99}

			st, err := wave.Setup(cfg, params, wave.WithLogger(zap.New(core)))
			Expect(err).NotTo(HaveOccurred())
			Expect(logs.Len()).To(Equal(2))
			Expect(st.Grid.W[0]).To(Equal(params.BEMFreq[0]))
			Expect(st.Grid.W[st.Grid.Len()-1]).To(BeNumerically("~", params.BEMFreq[1], 1e-12))
		})
	})

	Context("with finite depth", func() {
		It("solves longer waves than deep water predicts", func() {
			cfg.Discretization = wave.Traditional
			cfg.NumFreq = 100
			params.WaterDepth = 30
			params.EndTime = 50
			st, err := wave.Setup(cfg, params)
			Expect(err).NotTo(HaveOccurred())
			for i, w := range st.Grid.W {
				Expect(st.K[i]).To(BeNumerically(">=", w*w/params.Gravity))
			}
		})
	})

	DescribeTable("configuration errors",
		func(mutate func(*wave.Config), want error) {
			mutate(&cfg)
			_, err := wave.Setup(cfg, params)
			Expect(err).To(MatchError(want))
		},
		Entry("unknown type", func(c *wave.Config) { c.Type = wave.Type(42) }, wave.ErrUnknownWaveType),
		Entry("bretschneider", func(c *wave.Config) { c.Spectrum = wave.Bretschneider }, wave.ErrUnsupportedSpectrum),
		Entry("noWave without period", func(c *wave.Config) { c.Type = wave.NoWave; c.Period = 0 }, wave.ErrMissingField),
		Entry("spectrumImport without data", func(c *wave.Config) { c.Type = wave.SpectrumImport }, wave.ErrMissingField),
		Entry("spread mismatch", func(c *wave.Config) { c.Spread = []float64{0.5, 0.5} }, wave.ErrDirectionSpread),
	)

	It("rejects invalid run parameters", func() {
		params.Dt = 0
		_, err := wave.Setup(cfg, params)
		Expect(err).To(MatchError(wave.ErrInvalidParams))
	})
})
