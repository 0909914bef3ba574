package reactor

import (
	"fmt"

	"github.com/san-kum/tokasim/internal/materials"
	"github.com/san-kum/tokasim/internal/physics"
)

// Operating thresholds for diagnostics and failure classification.
const (
	// Grace periods: the plasma is allowed to be below its stability
	// and ignition targets while it is starting up.
	safetyFactorGrace = 30.0 // s
	lawsonGrace       = 60.0 // s

	qCritical = 1.5
	qMinimum  = 2.0
	qComfort  = 3.0

	betaLimit = 0.1

	wallTempWarnFraction = 0.8
	damageWarnFraction   = 0.8

	minDeuteriumInventory = 1e22 // atoms
)

// StateComputer derives a Snapshot from a MutableState. It is pure:
// the same config and state always produce the same snapshot.
type StateComputer struct {
	cfg       Config
	firstWall materials.Material
	blanket   materials.Material
}

// NewStateComputer validates the configured materials once so Compute
// never has to fail.
func NewStateComputer(cfg Config) (*StateComputer, error) {
	firstWall, ok := materials.Lookup(cfg.FirstWallMaterial)
	if !ok {
		return nil, fmt.Errorf("%w: first wall %q", ErrUnknownMaterial, cfg.FirstWallMaterial)
	}
	blanket, ok := materials.Lookup(cfg.BlanketMaterial)
	if !ok {
		return nil, fmt.Errorf("%w: blanket %q", ErrUnknownMaterial, cfg.BlanketMaterial)
	}
	return &StateComputer{cfg: cfg, firstWall: firstWall, blanket: blanket}, nil
}

// FirstWall returns the resolved first wall material.
func (c *StateComputer) FirstWall() materials.Material { return c.firstWall }

// Blanket returns the resolved blanket material.
func (c *StateComputer) Blanket() materials.Material { return c.blanket }

// Compute evaluates the full reactor state for the given mutable state.
func (c *StateComputer) Compute(state *MutableState) Snapshot {
	cfg := c.cfg

	geom := physics.ComputeGeometry(cfg.MajorRadius, cfg.MinorRadius, cfg.Elongation, cfg.Triangularity)

	// Ohmic heating feeds the confinement scaling but is not counted
	// as external input for the Q factor.
	resistance := physics.PlasmaResistance(cfg.MajorRadius, cfg.MinorRadius, state.Temperature, state.Density)
	ohmic := physics.OhmicHeating(cfg.PlasmaCurrent, resistance)
	externalMW := (cfg.AuxiliaryHeating + cfg.CurrentDrivePower) / 1e6

	confinement := physics.ConfinementTime(
		cfg.MajorRadius, cfg.MinorRadius, state.Density,
		cfg.ToroidalField, cfg.PlasmaCurrent, cfg.Elongation,
		externalMW, ohmic/1e6,
	)

	plasma := physics.ComputePlasmaState(state.Density, state.Temperature, confinement, cfg.ToroidalField)
	magnetic := physics.ComputeMagneticState(
		cfg.ToroidalField, cfg.PlasmaCurrent,
		cfg.MajorRadius, cfg.MinorRadius,
		state.Density, state.Temperature,
	)

	input := cfg.InputPower
	if input <= 0 {
		input = cfg.AuxiliaryHeating + cfg.CurrentDrivePower
	}
	fusion := plasma.FusionPowerDensity * geom.PlasmaVolume
	radiation := plasma.TotalLossDensity * geom.PlasmaVolume
	power := physics.ComputePowerBalance(fusion, input, radiation)

	lithiumDensity := physics.LithiumNumberDensity(534.0)
	if c.blanket.BreedingRatio > 0 {
		lithiumDensity = physics.LithiumNumberDensity(c.blanket.Density)
	}
	neutronics := physics.ComputeNeutronicsState(fusion, geom.SurfaceArea, lithiumDensity, cfg.BlanketThickness)

	// Conduction through ~1 cm of first wall onto a 300 K coolant.
	heatFlux := neutronics.WallLoading * 1e6
	wallTemp := 300.0 + heatFlux*0.01/c.firstWall.ThermalConductivity

	diags := c.diagnose(state, plasma, magnetic, neutronics, wallTemp)
	failed, cause := classify(diags, magnetic.SafetyFactor, state.Time)

	return Snapshot{
		Plasma:             plasma,
		Magnetic:           magnetic,
		Geometry:           geom,
		Power:              power,
		Neutronics:         neutronics,
		FirstWallTemp:      wallTemp,
		MaterialDamage:     state.AccumulatedDamage,
		TritiumInventory:   state.TritiumInventory,
		DeuteriumInventory: state.DeuteriumInventory,
		Diagnostics:        diags,
		Operational:        !failed,
		Failed:             failed,
		FailureCause:       cause,
		Time:               state.Time,
	}
}

func (c *StateComputer) diagnose(state *MutableState, plasma physics.PlasmaState, magnetic physics.MagneticState, neutronics physics.NeutronicsState, wallTemp float64) []Diagnostic {
	var diags []Diagnostic
	warn := func(sub Subsystem, format string, args ...any) {
		diags = append(diags, Diagnostic{sub, SeverityWarning, fmt.Sprintf(format, args...)})
	}
	fail := func(sub Subsystem, format string, args ...any) {
		diags = append(diags, Diagnostic{sub, SeverityError, fmt.Sprintf(format, args...)})
	}

	maxWallTemp := c.firstWall.MaxOperatingTemp
	switch {
	case wallTemp > maxWallTemp:
		fail(SubsystemWallTemperature, "first wall temperature (%.0f K) exceeds material limit (%.0f K)", wallTemp, maxWallTemp)
	case wallTemp > maxWallTemp*wallTempWarnFraction:
		warn(SubsystemWallTemperature, "first wall temperature (%.0f K) approaching limit (%.0f K)", wallTemp, maxWallTemp)
	}

	q := magnetic.SafetyFactor
	switch {
	case q < qCritical:
		fail(SubsystemSafetyFactor, "safety factor (q=%.2f) critically low (minimum: %.1f)", q, qCritical)
	case q < qMinimum:
		if state.Time > safetyFactorGrace {
			fail(SubsystemSafetyFactor, "safety factor (q=%.2f) too low (minimum: %.1f)", q, qMinimum)
		} else {
			warn(SubsystemSafetyFactor, "safety factor (q=%.2f) is low (may stabilize during startup)", q)
		}
	case q < qComfort:
		warn(SubsystemSafetyFactor, "safety factor (q=%.2f) is low", q)
	}

	if magnetic.Beta > betaLimit {
		warn(SubsystemBeta, "beta (%.3f) is high, may affect stability", magnetic.Beta)
	}

	if !plasma.MeetsLawson {
		if state.Time > lawsonGrace {
			fail(SubsystemLawson, "plasma does not meet Lawson criterion for ignition")
		} else {
			warn(SubsystemLawson, "plasma does not yet meet Lawson criterion (startup phase, t=%.1fs)", state.Time)
		}
	}

	if neutronics.BreedingRatio < 1.0 {
		fail(SubsystemBreeding, "tritium breeding ratio (%.2f) below 1.0 (cannot sustain operation)", neutronics.BreedingRatio)
	}

	maxDamage := c.firstWall.MaxDPA
	switch {
	case state.AccumulatedDamage > maxDamage:
		fail(SubsystemDamage, "material damage (%.1f DPA) exceeds limit (%.1f DPA)", state.AccumulatedDamage, maxDamage)
	case state.AccumulatedDamage > maxDamage*damageWarnFraction:
		warn(SubsystemDamage, "high material damage: %.1f DPA (limit: %.1f DPA)", state.AccumulatedDamage, maxDamage)
	}

	if state.TritiumInventory < c.cfg.MinTritiumInventory {
		fail(SubsystemTritium, "tritium inventory (%.2e atoms) below minimum (%.2e atoms)", state.TritiumInventory, c.cfg.MinTritiumInventory)
	}
	if state.DeuteriumInventory < minDeuteriumInventory {
		fail(SubsystemDeuterium, "deuterium inventory (%.2e atoms) too low", state.DeuteriumInventory)
	}

	return diags
}

// critical reports whether an error-severity diagnostic terminates the
// run. Wall temperature, damage, fuel and breeding errors are always
// critical; safety factor and Lawson errors are forgiven during their
// startup grace periods.
func critical(d Diagnostic, q, t float64) bool {
	if d.Severity != SeverityError {
		return false
	}
	switch d.Subsystem {
	case SubsystemWallTemperature, SubsystemDamage, SubsystemTritium, SubsystemDeuterium, SubsystemBreeding:
		return true
	case SubsystemSafetyFactor:
		return q < qCritical || t > safetyFactorGrace
	case SubsystemLawson:
		return t > lawsonGrace
	default:
		return false
	}
}

// classify maps the critical diagnostics to a failure flag and a single
// primary cause, in fixed subsystem priority order. Operability is the
// complement: a snapshot is operational exactly when it is not failed.
func classify(diags []Diagnostic, q, t float64) (bool, string) {
	var criticals []Diagnostic
	for _, d := range diags {
		if critical(d, q, t) {
			criticals = append(criticals, d)
		}
	}
	if len(criticals) == 0 {
		return false, ""
	}

	byOrder := []struct {
		sub   Subsystem
		cause string
	}{
		{SubsystemWallTemperature, "Material temperature limit exceeded"},
		{SubsystemDamage, "Material damage limit exceeded"},
		{SubsystemTritium, "Tritium inventory depleted"},
		{SubsystemDeuterium, "Deuterium inventory depleted"},
		{SubsystemLawson, "Lawson criterion not met after startup period"},
		{SubsystemSafetyFactor, "Safety factor too low (plasma instability)"},
	}
	for _, entry := range byOrder {
		for _, d := range criticals {
			if d.Subsystem == entry.sub {
				return true, entry.cause
			}
		}
	}
	return true, criticals[0].Message
}
