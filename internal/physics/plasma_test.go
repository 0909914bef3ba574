package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tokasim/internal/physics"
)

var _ = Describe("Plasma", func() {
	Describe("KeV", func() {
		It("converts 150 MK to roughly 12.9 keV", func() {
			Expect(physics.KeV(150e6)).To(BeNumerically("~", 12.93, 0.01))
		})
	})

	Describe("ReactionRateCoefficient", func() {
		It("is zero below 0.1 keV", func() {
			Expect(physics.ReactionRateCoefficient(0.05)).To(BeZero())
		})

		It("increases from 5 to 20 keV", func() {
			low := physics.ReactionRateCoefficient(5.0)
			high := physics.ReactionRateCoefficient(20.0)
			Expect(low).To(BeNumerically(">", 0))
			Expect(high).To(BeNumerically(">", low))
		})
	})

	Describe("FusionReactionRate", func() {
		It("scales with the square of density", func() {
			base := physics.FusionReactionRate(1e20, 150e6)
			doubled := physics.FusionReactionRate(2e20, 150e6)
			Expect(doubled / base).To(BeNumerically("~", 4.0, 1e-9))
		})
	})

	Describe("radiation losses", func() {
		It("caps synchrotron loss at half the bremsstrahlung loss", func() {
			brems := physics.BremsstrahlungLoss(1e20, 150e6)
			synch := physics.SynchrotronLoss(1e20, 150e6, 50.0)
			Expect(synch).To(BeNumerically("<=", 0.5*brems))
		})

		It("is zero for a cold plasma", func() {
			Expect(physics.BremsstrahlungLoss(1e20, 0)).To(BeZero())
			Expect(physics.SynchrotronLoss(1e20, 0, 5.3)).To(BeZero())
		})
	})

	Describe("MeetsLawsonCriterion", func() {
		It("holds for an ITER-like plasma", func() {
			Expect(physics.MeetsLawsonCriterion(1e20, 1.5, 150e6)).To(BeTrue())
		})

		It("fails when the density-time product is short", func() {
			Expect(physics.MeetsLawsonCriterion(1e20, 0.5, 150e6)).To(BeFalse())
		})

		It("fails below the temperature window", func() {
			Expect(physics.MeetsLawsonCriterion(1e20, 1.5, 30e6)).To(BeFalse())
		})

		It("fails above the temperature window", func() {
			Expect(physics.MeetsLawsonCriterion(1e20, 1.5, 800e6)).To(BeFalse())
		})
	})

	Describe("ComputePlasmaState", func() {
		It("balances the power densities", func() {
			state := physics.ComputePlasmaState(1e20, 150e6, 1.5, 5.3)
			Expect(state.TotalLossDensity).To(Equal(state.BremsstrahlungLoss + state.SynchrotronLoss))
			Expect(state.NetPowerDensity).To(Equal(state.FusionPowerDensity - state.TotalLossDensity))
			Expect(state.TripleProduct).To(Equal(1e20 * 1.5 * 150e6))
			Expect(state.MeetsLawson).To(BeTrue())
		})
	})
})

var _ = Describe("Magnetic", func() {
	Describe("SafetyFactor", func() {
		It("matches the ITER-like value", func() {
			q := physics.SafetyFactor(6.2, 2.0, 5.3, 15e6)
			Expect(q).To(BeNumerically("~", 1.14, 0.01))
		})

		It("is infinite with no plasma current", func() {
			Expect(math.IsInf(physics.SafetyFactor(6.2, 2.0, 5.3, 0), 1)).To(BeTrue())
		})
	})

	Describe("Beta", func() {
		It("is infinite with no magnetic pressure", func() {
			Expect(math.IsInf(physics.Beta(1e5, 0), 1)).To(BeTrue())
		})

		It("is the pressure ratio otherwise", func() {
			Expect(physics.Beta(1e4, 1e6)).To(Equal(0.01))
		})
	})

	Describe("ConfinementTime", func() {
		It("stays within the clamp range", func() {
			tiny := physics.ConfinementTime(0.5, 0.1, 1e19, 1.0, 1e5, 1.0, 100.0, 0)
			huge := physics.ConfinementTime(10.0, 3.0, 3e20, 20.0, 20e6, 2.5, 1.0, 0)
			Expect(tiny).To(BeNumerically(">=", 0.1))
			Expect(huge).To(BeNumerically("<=", 1000.0))
		})

		It("treats an unheated plasma as 1 MW", func() {
			unheated := physics.ConfinementTime(6.2, 2.0, 1e20, 5.3, 15e6, 1.7, 0, 0)
			oneMW := physics.ConfinementTime(6.2, 2.0, 1e20, 5.3, 15e6, 1.7, 1.0, 0)
			Expect(unheated).To(Equal(oneMW))
		})

		It("feeds sub-megawatt heating through the power law", func() {
			half := physics.ConfinementTime(6.2, 2.0, 1e20, 5.3, 15e6, 1.7, 0.5, 0)
			oneMW := physics.ConfinementTime(6.2, 2.0, 1e20, 5.3, 15e6, 1.7, 1.0, 0)
			Expect(half).To(BeNumerically(">", oneMW))
			Expect(half / oneMW).To(BeNumerically("~", math.Pow(0.5, -0.69), 1e-9))
		})
	})

	Describe("ComputeGeometry", func() {
		It("derives the torus volume and surface", func() {
			g := physics.ComputeGeometry(6.2, 2.0, 1.7, 0.33)
			Expect(g.AspectRatio).To(BeNumerically("~", 3.1, 1e-12))
			Expect(g.PlasmaVolume).To(BeNumerically("~", 2*math.Pi*math.Pi*6.2*4.0*1.7, 1e-6))
			Expect(g.SurfaceArea).To(BeNumerically("~", 4*math.Pi*math.Pi*6.2*2.0*1.7, 1e-6))
		})
	})
})
