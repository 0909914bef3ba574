package physics

import "math"

// thermalToElectrical is the assumed thermal conversion efficiency.
const thermalToElectrical = 0.33

// ignitionQThreshold marks the transition to a self-sustaining burn.
const ignitionQThreshold = 10.0

// PowerBalance holds the per-tick plant-level power accounting.
type PowerBalance struct {
	FusionPower     float64 // W
	InputPower      float64 // W
	RadiationLoss   float64 // W
	ThermalPower    float64 // W
	ElectricalPower float64 // W
	NetPower        float64 // W
	QFactor         float64
	Breakeven       bool
	Ignition        bool
}

// QFactor returns fusion gain Q = P_fusion / P_input. With no input
// power the result is +Inf when fusion power is present and 0 when the
// plasma is inert.
func QFactor(fusionPower, inputPower float64) float64 {
	if inputPower == 0 {
		if fusionPower > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return fusionPower / inputPower
}

// PlasmaResistance returns the Spitzer resistance of the plasma loop
// in ohms, with a neoclassical correction and clamped to the physically
// plausible [1e-7, 1e-5] range.
func PlasmaResistance(majorRadius, minorRadius, temperature, density float64) float64 {
	tEV := temperature * 8.617333262e-5
	tKeV := KeV(temperature)

	coulombLog := 17.3 + 1.5*math.Log(tKeV) - 0.5*math.Log(density/1e20)
	coulombLog = clamp(coulombLog, 10.0, 20.0)

	resistivity := 65.0 * zEff * coulombLog / math.Pow(tEV, 1.5)
	resistivity *= 0.2 // neoclassical trapped-particle correction

	circumference := 2.0 * math.Pi * majorRadius
	crossSection := math.Pi * minorRadius * minorRadius
	return clamp(resistivity*circumference/crossSection, 1e-7, 1e-5)
}

// OhmicHeating returns I^2*R in watts.
func OhmicHeating(plasmaCurrent, resistance float64) float64 {
	return plasmaCurrent * plasmaCurrent * resistance
}

// ThermalPower returns the usable thermal power, never negative.
func ThermalPower(fusionPower, inputPower, radiationLoss float64) float64 {
	return math.Max(0, fusionPower+inputPower-radiationLoss)
}

// Breakeven reports Q > 1.
func Breakeven(q float64) bool { return q > 1.0 }

// Ignition reports whether the gain exceeds the given threshold.
// An infinite Q (burn with zero input) always ignites.
func Ignition(q, threshold float64) bool {
	return q > threshold || math.IsInf(q, 1)
}

// ComputePowerBalance evaluates the full power accounting for the tick.
func ComputePowerBalance(fusionPower, inputPower, radiationLoss float64) PowerBalance {
	q := QFactor(fusionPower, inputPower)
	thermal := ThermalPower(fusionPower, inputPower, radiationLoss)
	electrical := thermalToElectrical * thermal
	return PowerBalance{
		FusionPower:     fusionPower,
		InputPower:      inputPower,
		RadiationLoss:   radiationLoss,
		ThermalPower:    thermal,
		ElectricalPower: electrical,
		NetPower:        electrical - inputPower,
		QFactor:         q,
		Breakeven:       Breakeven(q),
		Ignition:        Ignition(q, ignitionQThreshold),
	}
}
