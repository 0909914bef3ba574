package physics

import "math"

// Geometry describes the torus derived from the machine dimensions.
type Geometry struct {
	MajorRadius   float64 // m
	MinorRadius   float64 // m
	AspectRatio   float64
	Elongation    float64
	Triangularity float64
	PlasmaVolume  float64 // m^3
	SurfaceArea   float64 // m^2
}

// MagneticState holds the per-tick magnetic configuration.
type MagneticState struct {
	ToroidalField    float64 // T
	PoloidalField    float64 // T
	TotalField       float64 // T
	MagneticPressure float64 // Pa
	PlasmaPressure   float64 // Pa
	Beta             float64
	SafetyFactor     float64
}

// PlasmaVolume returns the volume of an elongated torus, 2*pi^2*R*a^2*kappa.
func PlasmaVolume(majorRadius, minorRadius, elongation float64) float64 {
	return 2.0 * math.Pi * math.Pi * majorRadius * minorRadius * minorRadius * elongation
}

// PlasmaSurfaceArea returns the torus surface area, 4*pi^2*R*a*kappa.
func PlasmaSurfaceArea(majorRadius, minorRadius, elongation float64) float64 {
	return 4.0 * math.Pi * math.Pi * majorRadius * minorRadius * elongation
}

// ComputeGeometry evaluates the derived torus geometry.
func ComputeGeometry(majorRadius, minorRadius, elongation, triangularity float64) Geometry {
	return Geometry{
		MajorRadius:   majorRadius,
		MinorRadius:   minorRadius,
		AspectRatio:   majorRadius / minorRadius,
		Elongation:    elongation,
		Triangularity: triangularity,
		PlasmaVolume:  PlasmaVolume(majorRadius, minorRadius, elongation),
		SurfaceArea:   PlasmaSurfaceArea(majorRadius, minorRadius, elongation),
	}
}

// PoloidalField returns the poloidal field produced by the plasma
// current at the plasma edge, mu0*I/(2*pi*R).
func PoloidalField(majorRadius, plasmaCurrent float64) float64 {
	return Mu0 * plasmaCurrent / (2.0 * math.Pi * majorRadius)
}

// MagneticPressure returns B^2/(2*mu0) in Pa.
func MagneticPressure(field float64) float64 {
	return field * field / (2.0 * Mu0)
}

// PlasmaPressure returns n*k_B*T in Pa.
func PlasmaPressure(density, temperature float64) float64 {
	return density * Boltzmann * temperature
}

// Beta returns the ratio of plasma pressure to magnetic pressure.
// A zero magnetic pressure yields +Inf.
func Beta(plasmaPressure, magneticPressure float64) float64 {
	if magneticPressure == 0 {
		return math.Inf(1)
	}
	return plasmaPressure / magneticPressure
}

// SafetyFactor returns the edge safety factor q = 2*pi*a^2*B/(mu0*R*I).
// Zero plasma current yields +Inf.
func SafetyFactor(majorRadius, minorRadius, toroidalField, plasmaCurrent float64) float64 {
	if plasmaCurrent == 0 {
		return math.Inf(1)
	}
	return 2.0 * math.Pi * minorRadius * minorRadius * toroidalField /
		(Mu0 * majorRadius * plasmaCurrent)
}

// ConfinementTime returns the energy confinement time from the
// ITER-98(y,2) H-mode scaling, in seconds. External and ohmic heating
// powers are in MW; an unheated plasma (external power zero or below)
// is treated as 1 MW to avoid the power-law singularity. Strong
// external heating (>10 MW) and elongation above 1.5 earn modest
// H-factor bonuses. The result is clamped to [0.1, 1000] s.
func ConfinementTime(majorRadius, minorRadius, density, toroidalField, plasmaCurrent, elongation, externalMW, ohmicMW float64) float64 {
	currentMA := plasmaCurrent / 1e6
	external := externalMW
	if external <= 0 {
		external = 1.0
	}
	effectiveMW := external + 0.3*ohmicMW

	tau := 0.0562 *
		math.Pow(currentMA, 0.93) *
		math.Pow(toroidalField, 0.15) *
		math.Pow(effectiveMW, -0.69) *
		math.Pow(density/1e20, 0.41) *
		math.Pow(2.5, 0.19) * // D-T average mass number
		math.Pow(majorRadius, 1.97) *
		math.Pow(elongation, 0.78) *
		math.Pow(minorRadius/majorRadius, 0.58)

	if externalMW > 10.0 {
		tau *= 1.15
	}
	if elongation > 1.5 {
		tau *= math.Min(1.0+0.1*(elongation-1.5), 1.15)
	}
	return clamp(tau, 0.1, 1000.0)
}

// ComputeMagneticState evaluates the full magnetic sub-state.
func ComputeMagneticState(toroidalField, plasmaCurrent, majorRadius, minorRadius, density, temperature float64) MagneticState {
	poloidal := PoloidalField(majorRadius, plasmaCurrent)
	magPressure := MagneticPressure(toroidalField)
	plasmaPressure := PlasmaPressure(density, temperature)
	return MagneticState{
		ToroidalField:    toroidalField,
		PoloidalField:    poloidal,
		TotalField:       math.Sqrt(toroidalField*toroidalField + poloidal*poloidal),
		MagneticPressure: magPressure,
		PlasmaPressure:   plasmaPressure,
		Beta:             Beta(plasmaPressure, magPressure),
		SafetyFactor:     SafetyFactor(majorRadius, minorRadius, toroidalField, plasmaCurrent),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
