package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tokasim/internal/physics"
)

var _ = Describe("Power", func() {
	Describe("QFactor", func() {
		It("is the fusion gain", func() {
			Expect(physics.QFactor(500e6, 50e6)).To(Equal(10.0))
		})

		It("is infinite for a free-running burn", func() {
			Expect(math.IsInf(physics.QFactor(500e6, 0), 1)).To(BeTrue())
		})

		It("is zero for an inert plasma with no input", func() {
			Expect(physics.QFactor(0, 0)).To(BeZero())
		})
	})

	Describe("Breakeven and Ignition", func() {
		It("breaks even above Q=1", func() {
			Expect(physics.Breakeven(1.1)).To(BeTrue())
			Expect(physics.Breakeven(1.0)).To(BeFalse())
		})

		It("ignites above the threshold", func() {
			Expect(physics.Ignition(10.1, 10.0)).To(BeTrue())
			Expect(physics.Ignition(10.0, 10.0)).To(BeFalse())
		})

		It("ignites at infinite gain", func() {
			Expect(physics.Ignition(math.Inf(1), 10.0)).To(BeTrue())
		})
	})

	Describe("ThermalPower", func() {
		It("never goes negative", func() {
			Expect(physics.ThermalPower(0, 0, 10e6)).To(BeZero())
		})
	})

	Describe("PlasmaResistance", func() {
		It("clamps a cold resistive plasma at the ceiling", func() {
			Expect(physics.PlasmaResistance(6.2, 2.0, 1e6, 1e20)).To(Equal(1e-5))
		})

		It("stays within the clamp range when hot", func() {
			r := physics.PlasmaResistance(6.2, 2.0, 1e9, 1e20)
			Expect(r).To(BeNumerically(">=", 1e-7))
			Expect(r).To(BeNumerically("<=", 1e-5))
		})
	})

	Describe("ComputePowerBalance", func() {
		It("accounts for the full chain", func() {
			pb := physics.ComputePowerBalance(500e6, 50e6, 100e6)
			Expect(pb.ThermalPower).To(Equal(450e6))
			Expect(pb.ElectricalPower).To(BeNumerically("~", 148.5e6, 1e-3))
			Expect(pb.NetPower).To(BeNumerically("~", 98.5e6, 1e-3))
			Expect(pb.QFactor).To(Equal(10.0))
			Expect(pb.Breakeven).To(BeTrue())
			Expect(pb.Ignition).To(BeFalse())
		})
	})
})

var _ = Describe("Neutronics", func() {
	Describe("NeutronPower", func() {
		It("carries 14.1 of 17.6 MeV", func() {
			Expect(physics.NeutronPower(500e6)).To(BeNumerically("~", 500e6*14.1/17.6, 1e-3))
		})
	})

	Describe("NeutronFlux", func() {
		It("is zero with no wall area", func() {
			Expect(physics.NeutronFlux(500e6, 0)).To(BeZero())
		})
	})

	Describe("BreedingRatio", func() {
		It("is production over consumption", func() {
			Expect(physics.BreedingRatio(1.2e20, 1.0e20)).To(BeNumerically("~", 1.2, 1e-12))
		})

		It("is infinite when nothing burns but tritium breeds", func() {
			Expect(math.IsInf(physics.BreedingRatio(1e19, 0), 1)).To(BeTrue())
		})

		It("is zero for an idle blanket", func() {
			Expect(physics.BreedingRatio(0, 0)).To(BeZero())
		})
	})

	Describe("DPARate", func() {
		It("converts flux to displacements per year", func() {
			Expect(physics.DPARate(1e17)).To(BeNumerically("~", 1e17*1e-24*physics.SecondsPerYear, 1e-6))
		})
	})

	Describe("LithiumNumberDensity", func() {
		It("converts mass density to atoms", func() {
			Expect(physics.LithiumNumberDensity(534.0)).To(BeNumerically("~", 4.633e28, 1e25))
		})
	})

	Describe("ComputeNeutronicsState", func() {
		It("keeps the rates consistent", func() {
			st := physics.ComputeNeutronicsState(500e6, 700.0, 4.6e28, 1.0)
			Expect(st.TritiumConsumptionRate).To(BeNumerically("~", 500e6/physics.DTFusionEnergy, 1e6))
			Expect(st.BreedingRatio).To(BeNumerically("~", st.TritiumProductionRate/st.TritiumConsumptionRate, 1e-9))
			Expect(st.NeutronFlux).To(BeNumerically(">", 0))
			Expect(st.DPARate).To(BeNumerically(">", 0))
		})
	})
})
