package physics

import "math"

const (
	// Natural lithium isotopics and breeding cross sections (barns).
	li6Fraction     = 0.075
	li6CrossSection = 940.0
	li7CrossSection = 0.045
	barn            = 1e-28 // m^2

	// dpaCrossSection is the effective displacement cross section of
	// structural materials for 14 MeV neutrons, in m^2.
	dpaCrossSection = 1e-24

	lithiumAtomicMass = 6.941 * 1.66053906660e-27 // kg
)

// NeutronicsState holds the per-tick neutron economy.
type NeutronicsState struct {
	NeutronFlux            float64 // n/m^2/s at the first wall
	WallLoading            float64 // MW/m^2
	TritiumProductionRate  float64 // atoms/s
	TritiumConsumptionRate float64 // atoms/s
	BreedingRatio          float64
	DPARate                float64 // DPA/year
}

// LithiumNumberDensity converts a lithium mass density in kg/m^3 to an
// atom number density in m^-3.
func LithiumNumberDensity(massDensity float64) float64 {
	return massDensity / lithiumAtomicMass
}

// NeutronPower returns the fraction of fusion power carried by
// neutrons, 14.1/17.6 of the total.
func NeutronPower(fusionPower float64) float64 {
	return fusionPower * 14.1 / 17.6
}

// NeutronFlux returns the first-wall neutron flux in n/m^2/s.
func NeutronFlux(fusionPower, surfaceArea float64) float64 {
	if surfaceArea == 0 {
		return 0
	}
	return NeutronPower(fusionPower) / DTNeutronEnergy / surfaceArea
}

// NeutronWallLoading returns the neutron power density on the first
// wall in MW/m^2.
func NeutronWallLoading(fusionPower, surfaceArea float64) float64 {
	if surfaceArea == 0 {
		return 0
	}
	return NeutronPower(fusionPower) / surfaceArea / 1e6
}

// TritiumConsumptionRate returns tritium atoms burned per second,
// one per D-T reaction.
func TritiumConsumptionRate(fusionPower float64) float64 {
	return fusionPower / DTFusionEnergy
}

// TritiumProductionRate returns tritium atoms bred per second in a
// blanket of the given lithium number density and thickness, using the
// isotope-weighted effective cross section.
func TritiumProductionRate(neutronFlux, lithiumDensity, thickness float64) float64 {
	effective := (li6Fraction*li6CrossSection + (1.0-li6Fraction)*li7CrossSection) * barn
	return neutronFlux * lithiumDensity * effective * thickness
}

// BreedingRatio returns production/consumption. Zero consumption yields
// +Inf when production is present and 0 otherwise.
func BreedingRatio(production, consumption float64) float64 {
	if consumption == 0 {
		if production > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return production / consumption
}

// DPARate returns displacements per atom per year at the first wall.
func DPARate(neutronFlux float64) float64 {
	return neutronFlux * dpaCrossSection * SecondsPerYear
}

// ComputeNeutronicsState evaluates the full neutron economy for the tick.
func ComputeNeutronicsState(fusionPower, surfaceArea, lithiumDensity, blanketThickness float64) NeutronicsState {
	flux := NeutronFlux(fusionPower, surfaceArea)
	production := TritiumProductionRate(flux, lithiumDensity, blanketThickness)
	consumption := TritiumConsumptionRate(fusionPower)
	return NeutronicsState{
		NeutronFlux:            flux,
		WallLoading:            NeutronWallLoading(fusionPower, surfaceArea),
		TritiumProductionRate:  production,
		TritiumConsumptionRate: consumption,
		BreedingRatio:          BreedingRatio(production, consumption),
		DPARate:                DPARate(flux),
	}
}
