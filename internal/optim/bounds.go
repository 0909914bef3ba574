// Package optim searches reactor configuration space for long-running,
// high-gain machines: bounded random sampling and SPSA gradient descent
// over a shared scoring function.
package optim

import (
	"math/rand"

	"github.com/san-kum/tokasim/internal/reactor"
)

// Range is a closed interval for one tunable parameter.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func (r Range) random(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Bounds are the realistic parameter ranges for the tunable
// configuration fields, spanning ITER through compact HTS designs.
type Bounds struct {
	MajorRadius               Range
	MinorRadius               Range
	Elongation                Range
	Triangularity             Range
	ToroidalField             Range
	PlasmaCurrent             Range
	InitialTemperature        Range
	InitialDensity            Range
	InputPower                Range
	AuxiliaryHeating          Range
	CurrentDrivePower         Range
	InitialTritiumInventory   Range
	InitialDeuteriumInventory Range
}

// DefaultBounds covers published machine designs.
func DefaultBounds() Bounds {
	return Bounds{
		MajorRadius:               Range{3.0, 10.0},
		MinorRadius:               Range{0.5, 3.0},
		Elongation:                Range{1.0, 2.5},
		Triangularity:             Range{0.0, 0.6},
		ToroidalField:             Range{2.0, 20.0},
		PlasmaCurrent:             Range{5e6, 20e6},
		InitialTemperature:        Range{50e6, 300e6},
		InitialDensity:            Range{0.5e20, 3e20},
		InputPower:                Range{10e6, 100e6},
		AuxiliaryHeating:          Range{0, 50e6},
		CurrentDrivePower:         Range{0, 20e6},
		InitialTritiumInventory:   Range{1e23, 1e26},
		InitialDeuteriumInventory: Range{1e24, 1e27},
	}
}

// Random draws a configuration uniformly within the bounds. Fields
// without a bound (materials, blanket thickness, minimum tritium) come
// from the defaults.
func (b Bounds) Random(rng *rand.Rand) reactor.Config {
	cfg := reactor.DefaultConfig()
	cfg.MajorRadius = b.MajorRadius.random(rng)
	cfg.MinorRadius = b.MinorRadius.random(rng)
	cfg.Elongation = b.Elongation.random(rng)
	cfg.Triangularity = b.Triangularity.random(rng)
	cfg.ToroidalField = b.ToroidalField.random(rng)
	cfg.PlasmaCurrent = b.PlasmaCurrent.random(rng)
	cfg.InitialTemperature = b.InitialTemperature.random(rng)
	cfg.InitialDensity = b.InitialDensity.random(rng)
	cfg.InputPower = b.InputPower.random(rng)
	cfg.AuxiliaryHeating = b.AuxiliaryHeating.random(rng)
	cfg.CurrentDrivePower = b.CurrentDrivePower.random(rng)
	cfg.InitialTritiumInventory = b.InitialTritiumInventory.random(rng)
	cfg.InitialDeuteriumInventory = b.InitialDeuteriumInventory.random(rng)
	return cfg
}

// Clamp limits every bounded field of cfg to its range.
func (b Bounds) Clamp(cfg reactor.Config) reactor.Config {
	cfg.MajorRadius = b.MajorRadius.Clamp(cfg.MajorRadius)
	cfg.MinorRadius = b.MinorRadius.Clamp(cfg.MinorRadius)
	cfg.Elongation = b.Elongation.Clamp(cfg.Elongation)
	cfg.Triangularity = b.Triangularity.Clamp(cfg.Triangularity)
	cfg.ToroidalField = b.ToroidalField.Clamp(cfg.ToroidalField)
	cfg.PlasmaCurrent = b.PlasmaCurrent.Clamp(cfg.PlasmaCurrent)
	cfg.InitialTemperature = b.InitialTemperature.Clamp(cfg.InitialTemperature)
	cfg.InitialDensity = b.InitialDensity.Clamp(cfg.InitialDensity)
	cfg.InputPower = b.InputPower.Clamp(cfg.InputPower)
	cfg.AuxiliaryHeating = b.AuxiliaryHeating.Clamp(cfg.AuxiliaryHeating)
	cfg.CurrentDrivePower = b.CurrentDrivePower.Clamp(cfg.CurrentDrivePower)
	cfg.InitialTritiumInventory = b.InitialTritiumInventory.Clamp(cfg.InitialTritiumInventory)
	cfg.InitialDeuteriumInventory = b.InitialDeuteriumInventory.Clamp(cfg.InitialDeuteriumInventory)
	return cfg
}
