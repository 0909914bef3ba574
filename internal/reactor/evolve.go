package reactor

import (
	"math"

	"github.com/san-kum/tokasim/internal/physics"
)

// Evolver advances a MutableState by one forward-Euler step using the
// rates captured in the previous snapshot.
type Evolver struct{}

// Step advances state by dt. Elapsed time always moves forward;
// physical updates are skipped while the reactor is failed or
// non-operational, freezing the plasma where it stands.
func (Evolver) Step(state *MutableState, dt float64, prev Snapshot) {
	state.Time += dt

	if prev.Failed || !prev.Operational {
		return
	}

	volume := prev.Geometry.PlasmaVolume

	// dT/dt = (heating - losses) / (n V k_B)
	heatCapacity := state.Density * volume * physics.Boltzmann
	if heatCapacity > 0 {
		netHeating := prev.Power.FusionPower + prev.Power.InputPower -
			prev.Plasma.TotalLossDensity*volume
		state.Temperature += netHeating / heatCapacity * dt
		if state.Temperature < MinTemperature {
			state.Temperature = MinTemperature
		}
		if state.Temperature > MaxTemperature {
			state.Temperature = MaxTemperature
		}
	}

	// Each D-T reaction burns one deuterium and one tritium atom.
	burned := prev.Power.FusionPower / physics.DTFusionEnergy * dt
	state.DeuteriumInventory = math.Max(0, state.DeuteriumInventory-burned)
	state.TritiumInventory = math.Max(0, state.TritiumInventory-burned)

	if prev.Neutronics.TritiumProductionRate > 0 {
		state.TritiumInventory += prev.Neutronics.TritiumProductionRate * dt
	}

	state.AccumulatedDamage += prev.Neutronics.DPARate / physics.SecondsPerYear * dt
}
