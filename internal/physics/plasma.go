package physics

import "math"

// Physical constants used across the evaluators.
const (
	Boltzmann        = 1.380649e-23    // J/K
	ElementaryCharge = 1.602176634e-19 // C
	Mu0              = 4.0 * math.Pi * 1e-7

	// DTFusionEnergy is the energy released per D-T reaction (17.6 MeV).
	DTFusionEnergy = 17.6e6 * ElementaryCharge
	// DTNeutronEnergy is the energy carried by the fusion neutron (14.1 MeV).
	DTNeutronEnergy = 14.1e6 * ElementaryCharge

	SecondsPerYear = 365.25 * 24 * 3600
)

const (
	// zEff is the effective plasma charge assumed for radiation losses.
	zEff = 1.5

	// Lawson ignition window.
	lawsonMinDensityTime = 1e20 // m^-3 s
	lawsonMinTempKeV     = 5.0
	lawsonMaxTempKeV     = 60.0
)

// PlasmaState holds the per-tick plasma quantities derived from
// temperature, density and confinement.
type PlasmaState struct {
	Temperature        float64 // K
	Density            float64 // m^-3
	ConfinementTime    float64 // s
	TripleProduct      float64 // m^-3 s K
	FusionPowerDensity float64 // W/m^3
	BremsstrahlungLoss float64 // W/m^3
	SynchrotronLoss    float64 // W/m^3
	TotalLossDensity   float64 // W/m^3
	NetPowerDensity    float64 // W/m^3
	MeetsLawson        bool
}

// KeV converts a plasma temperature in kelvin to kiloelectronvolts.
func KeV(temperature float64) float64 {
	return temperature * Boltzmann / (ElementaryCharge * 1000.0)
}

// ReactionRateCoefficient returns the D-T <sigma*v> in m^3/s for a
// temperature in keV, using the simplified Bosch-Hale style fit. Below
// 0.1 keV the plasma is effectively inert and the coefficient is zero.
func ReactionRateCoefficient(temperatureKeV float64) float64 {
	if temperatureKeV < 0.1 {
		return 0
	}
	return 3.7e-19 * math.Pow(temperatureKeV, -2.0/3.0) *
		math.Exp(-19.94*math.Pow(temperatureKeV, -1.0/3.0))
}

// FusionReactionRate returns D-T reactions per m^3 per second for a
// 50/50 fuel mix at the given total ion density.
func FusionReactionRate(density, temperature float64) float64 {
	half := density / 2.0
	return half * half * ReactionRateCoefficient(KeV(temperature))
}

// FusionPowerDensity returns the fusion power density in W/m^3.
func FusionPowerDensity(density, temperature float64) float64 {
	return FusionReactionRate(density, temperature) * DTFusionEnergy
}

// BremsstrahlungLoss returns the bremsstrahlung radiation loss density
// in W/m^3.
func BremsstrahlungLoss(density, temperature float64) float64 {
	tKeV := KeV(temperature)
	if tKeV <= 0 {
		return 0
	}
	return 5.35e-37 * density * density * math.Sqrt(tKeV) * zEff * zEff
}

// SynchrotronLoss returns the synchrotron radiation loss density in
// W/m^3, capped at half the bremsstrahlung loss to account for wall
// reflection.
func SynchrotronLoss(density, temperature, magneticField float64) float64 {
	tKeV := KeV(temperature)
	if tKeV <= 0 {
		return 0
	}
	loss := 1e-17 * magneticField * magneticField * math.Pow(tKeV, 2.5) * density
	return math.Min(loss, 0.5*BremsstrahlungLoss(density, temperature))
}

// TripleProduct returns n*tau_E*T in m^-3 s K.
func TripleProduct(density, confinementTime, temperature float64) float64 {
	return density * confinementTime * temperature
}

// MeetsLawsonCriterion reports whether the plasma satisfies the ignition
// window: n*tau_E >= 1e20 m^-3 s and 5 <= T <= 60 keV.
func MeetsLawsonCriterion(density, confinementTime, temperature float64) bool {
	tKeV := KeV(temperature)
	return density*confinementTime >= lawsonMinDensityTime &&
		tKeV >= lawsonMinTempKeV && tKeV <= lawsonMaxTempKeV
}

// ComputePlasmaState evaluates the full plasma sub-state.
func ComputePlasmaState(density, temperature, confinementTime, magneticField float64) PlasmaState {
	fusion := FusionPowerDensity(density, temperature)
	brems := BremsstrahlungLoss(density, temperature)
	synch := SynchrotronLoss(density, temperature, magneticField)
	return PlasmaState{
		Temperature:        temperature,
		Density:            density,
		ConfinementTime:    confinementTime,
		TripleProduct:      TripleProduct(density, confinementTime, temperature),
		FusionPowerDensity: fusion,
		BremsstrahlungLoss: brems,
		SynchrotronLoss:    synch,
		TotalLossDensity:   brems + synch,
		NetPowerDensity:    fusion - brems - synch,
		MeetsLawson:        MeetsLawsonCriterion(density, confinementTime, temperature),
	}
}
