package reactor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sootsim/internal/gas"
	"github.com/san-kum/sootsim/internal/reactor"
)

func newPrecursorMixture() *gas.Mixture {
	m, err := gas.NewMixture(
		[]string{"A4", "C2H2", "O2", "OH", "H2", "CO", "N2"},
		[]float64{202.0, 26.04, 32.0, 17.01, 2.016, 28.01, 28.0134},
		make([]float64, 7),
		1500, 101325,
		[]float64{0.05, 0.05, 0.1, 0.01, 0.01, 0.01, 0.77},
		1200,
		gas.InertProduction,
	)
	Expect(err).NotTo(HaveOccurred())
	return m
}

var _ = Describe("Reactor", func() {
	var cfg reactor.Config

	BeforeEach(func() {
		cfg = reactor.DefaultConfig()
		cfg.Ensemble.MinSize = 8
		cfg.Ensemble.MaxSize = 64
		cfg.Seed = 42
	})

	Context("with an empty ensemble and no precursor", func() {
		It("idles: the clock advances and no events fire", func() {
			g := newPrecursorMixture()
			Expect(g.SetTPY(1500, 101325, []float64{0, 0, 0.1, 0, 0, 0, 0.9})).To(Succeed())

			r, err := reactor.Initialize(cfg, g, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Step(1e-6)).To(Succeed())
			Expect(r.Time()).To(BeNumerically("~", 1e-6, 1e-12))
			Expect(r.Ensemble().Len()).To(Equal(0))
		})
	})

	DescribeTable("splitting schemes advance the clock and keep the gas state finite",
		func(scheme string) {
			split, err := reactor.ParseSplitting(scheme)
			Expect(err).NotTo(HaveOccurred())
			cfg.Splitting = split

			g := newPrecursorMixture()
			r, err := reactor.Initialize(cfg, g, nil)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 5; i++ {
				Expect(r.Step(1e-7)).To(Succeed())
			}

			snap := r.Snapshot()
			Expect(snap.T).To(BeNumerically(">", 0))
			for _, y := range snap.Y {
				Expect(y).To(BeNumerically(">=", 0))
			}
		},
		Entry("lie", "lie"),
		Entry("strang", "strang"),
		Entry("predictor", "predictor"),
	)

	It("grows the ensemble via nucleation when a precursor is present", func() {
		g := newPrecursorMixture()
		r, err := reactor.Initialize(cfg, g, nil)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 50; i++ {
			Expect(r.Step(1e-8)).To(Succeed())
		}

		Expect(r.Ensemble().Len()).To(BeNumerically(">", 0))
	})

	It("Reset empties the ensemble and zeros the clock", func() {
		g := newPrecursorMixture()
		r, err := reactor.Initialize(cfg, g, nil)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 20; i++ {
			Expect(r.Step(1e-8)).To(Succeed())
		}
		Expect(r.Reset()).To(Succeed())

		Expect(r.Time()).To(Equal(0.0))
		Expect(r.Ensemble().Len()).To(Equal(0))
	})

	It("Run emits a snapshot at t=0 plus one per output interval", func() {
		g := newPrecursorMixture()
		r, err := reactor.Initialize(cfg, g, nil)
		Expect(err).NotTo(HaveOccurred())

		snaps, err := r.Run(1e-6, 1e-7, 2e-7)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(snaps)).To(BeNumerically(">=", 2))
		Expect(snaps[0].Time).To(Equal(0.0))
	})

	It("rejects a non-positive dt", func() {
		g := newPrecursorMixture()
		r, err := reactor.Initialize(cfg, g, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Step(0)).To(HaveOccurred())
		Expect(r.Step(-1)).To(HaveOccurred())
	})
})
