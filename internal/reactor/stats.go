package reactor

import (
	"fmt"
	"math"

	"github.com/san-kum/tokasim/internal/materials"
	"github.com/san-kum/tokasim/internal/physics"
)

// Stats summarizes a completed run.
type Stats struct {
	MaxOperationTime float64 // s, elapsed simulation time
	Failed           bool
	FailureCause     string
	AverageQ         float64
	MaxQ             float64
	TotalEnergy      float64 // J of fusion energy produced

	// RuntimeProjection extrapolates how long the final state could be
	// sustained before a hard limit is hit; +Inf when nothing limits it.
	RuntimeProjection  float64 // s
	LimitingFactor     string
	CanRunIndefinitely bool
}

func computeStats(final Snapshot, history []Snapshot, firstWall materials.Material) Stats {
	stats := Stats{
		MaxOperationTime: final.Time,
		Failed:           final.Failed,
		FailureCause:     final.FailureCause,
	}

	// Q aggregates over operational samples; infinite gains are left
	// out of the sums but still count toward the average's denominator.
	operational := 0
	sumQ := 0.0
	for _, snap := range history {
		if !snap.Operational {
			continue
		}
		operational++
		q := snap.Power.QFactor
		if math.IsInf(q, 0) {
			continue
		}
		sumQ += q
		if q > stats.MaxQ {
			stats.MaxQ = q
		}
	}
	if operational > 0 {
		stats.AverageQ = sumQ / float64(operational)
	}

	// Rectangle rule over the sampled history.
	for i := 0; i+1 < len(history); i++ {
		if history[i].Operational {
			dt := history[i+1].Time - history[i].Time
			stats.TotalEnergy += history[i].Power.FusionPower * dt
		}
	}

	stats.RuntimeProjection, stats.LimitingFactor = projectRuntime(final, firstWall)
	stats.CanRunIndefinitely = math.IsInf(stats.RuntimeProjection, 1)
	return stats
}

// projectRuntime extrapolates the final snapshot's damage and fuel
// rates to find the binding constraint.
func projectRuntime(final Snapshot, firstWall materials.Material) (float64, string) {
	projection := math.Inf(1)
	limiting := "None (can run indefinitely)"

	if final.Neutronics.DPARate > 0 {
		remaining := firstWall.MaxDPA - final.MaterialDamage
		if remaining > 0 {
			seconds := remaining / final.Neutronics.DPARate * physics.SecondsPerYear
			if seconds < projection {
				projection = seconds
				limiting = fmt.Sprintf("Material damage (will reach %.1f DPA)", firstWall.MaxDPA)
			}
		}
	}

	if final.Neutronics.BreedingRatio < 1.0 {
		net := final.Neutronics.TritiumConsumptionRate - final.Neutronics.TritiumProductionRate
		if net > 0 && final.TritiumInventory > 0 {
			seconds := final.TritiumInventory / net
			if seconds < projection {
				projection = seconds
				limiting = "Tritium inventory depletion"
			}
		}
	}

	return projection, limiting
}
