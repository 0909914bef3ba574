// Package reactor implements the tokamak simulation engine: per-tick
// state computation, forward-Euler time evolution and the run loop that
// drives them until failure or the time budget runs out.
package reactor

import (
	"github.com/san-kum/tokasim/internal/physics"
)

// Config holds the machine and operating parameters. Values are treated
// as immutable once a Simulator is constructed; derived perturbations go
// through optim.WithChanges, which copies.
type Config struct {
	// Geometry
	MajorRadius   float64 `yaml:"major_radius" json:"major_radius"`   // m
	MinorRadius   float64 `yaml:"minor_radius" json:"minor_radius"`   // m
	Elongation    float64 `yaml:"elongation" json:"elongation"`       // kappa
	Triangularity float64 `yaml:"triangularity" json:"triangularity"` // delta

	// Magnetic configuration
	ToroidalField float64 `yaml:"toroidal_field" json:"toroidal_field"` // T
	PlasmaCurrent float64 `yaml:"plasma_current" json:"plasma_current"` // A

	// Plasma initial conditions
	InitialTemperature float64 `yaml:"initial_temperature" json:"initial_temperature"` // K
	InitialDensity     float64 `yaml:"initial_density" json:"initial_density"`         // m^-3

	// Materials
	FirstWallMaterial string  `yaml:"first_wall_material" json:"first_wall_material"`
	BlanketMaterial   string  `yaml:"blanket_material" json:"blanket_material"`
	BlanketThickness  float64 `yaml:"blanket_thickness" json:"blanket_thickness"` // m

	// Operation
	InputPower        float64 `yaml:"input_power" json:"input_power"`                 // W
	AuxiliaryHeating  float64 `yaml:"auxiliary_heating" json:"auxiliary_heating"`     // W
	CurrentDrivePower float64 `yaml:"current_drive_power" json:"current_drive_power"` // W

	// Fuel inventory
	InitialTritiumInventory   float64 `yaml:"initial_tritium_inventory" json:"initial_tritium_inventory"`     // atoms
	InitialDeuteriumInventory float64 `yaml:"initial_deuterium_inventory" json:"initial_deuterium_inventory"` // atoms
	MinTritiumInventory       float64 `yaml:"min_tritium_inventory" json:"min_tritium_inventory"`             // atoms
}

// DefaultConfig returns an ITER-like machine.
func DefaultConfig() Config {
	return Config{
		MajorRadius:               6.2,
		MinorRadius:               2.0,
		Elongation:                1.7,
		Triangularity:             0.33,
		ToroidalField:             5.3,
		PlasmaCurrent:             15e6,
		InitialTemperature:        150e6, // ~13 keV, near the D-T optimum
		InitialDensity:            1e20,
		FirstWallMaterial:         "tungsten",
		BlanketMaterial:           "lithium_lead",
		BlanketThickness:          1.0,
		InputPower:                50e6,
		AuxiliaryHeating:          33e6,
		CurrentDrivePower:         0,
		InitialTritiumInventory:   1e25,
		InitialDeuteriumInventory: 1e26,
		MinTritiumInventory:       1e23,
	}
}

// Plasma temperature bounds enforced every evolution step.
const (
	MinTemperature = 1e6   // K
	MaxTemperature = 500e6 // K
)

// MutableState is the evolving reactor state. Everything else in a
// Snapshot is derived from it and the Config.
type MutableState struct {
	Temperature        float64 // K
	Density            float64 // m^-3
	TritiumInventory   float64 // atoms
	DeuteriumInventory float64 // atoms
	AccumulatedDamage  float64 // DPA, non-decreasing
	Time               float64 // s
}

// Reset restores the state to the configured initial conditions.
func (s *MutableState) Reset(cfg Config) {
	s.Temperature = cfg.InitialTemperature
	s.Density = cfg.InitialDensity
	s.TritiumInventory = cfg.InitialTritiumInventory
	s.DeuteriumInventory = cfg.InitialDeuteriumInventory
	s.AccumulatedDamage = 0
	s.Time = 0
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Subsystem identifies which check raised a diagnostic. Failure
// classification keys off these tags, never off message text.
type Subsystem int

const (
	SubsystemWallTemperature Subsystem = iota
	SubsystemSafetyFactor
	SubsystemBeta
	SubsystemLawson
	SubsystemBreeding
	SubsystemDamage
	SubsystemTritium
	SubsystemDeuterium
)

func (s Subsystem) String() string {
	switch s {
	case SubsystemWallTemperature:
		return "wall_temperature"
	case SubsystemSafetyFactor:
		return "safety_factor"
	case SubsystemBeta:
		return "beta"
	case SubsystemLawson:
		return "lawson"
	case SubsystemBreeding:
		return "breeding"
	case SubsystemDamage:
		return "damage"
	case SubsystemTritium:
		return "tritium"
	case SubsystemDeuterium:
		return "deuterium"
	default:
		return "unknown"
	}
}

// Diagnostic is a single warning or error raised during state
// computation. Diagnostics are data in snapshots, not Go errors.
type Diagnostic struct {
	Subsystem Subsystem
	Severity  Severity
	Message   string
}

// Snapshot is the complete derived reactor state at one instant.
// Immutable after creation.
type Snapshot struct {
	Plasma     physics.PlasmaState
	Magnetic   physics.MagneticState
	Geometry   physics.Geometry
	Power      physics.PowerBalance
	Neutronics physics.NeutronicsState

	FirstWallTemp      float64 // K
	MaterialDamage     float64 // DPA
	TritiumInventory   float64 // atoms
	DeuteriumInventory float64 // atoms

	Diagnostics  []Diagnostic
	Operational  bool
	Failed       bool
	FailureCause string
	Time         float64 // s
}

// Warnings returns the warning-severity diagnostics.
func (s Snapshot) Warnings() []Diagnostic {
	return s.filter(SeverityWarning)
}

// Errors returns the error-severity diagnostics.
func (s Snapshot) Errors() []Diagnostic {
	return s.filter(SeverityError)
}

func (s Snapshot) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range s.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// RunOptions controls a simulation run.
type RunOptions struct {
	MaxTime      float64 // s
	Dt           float64 // s
	SaveInterval float64 // s; 0 samples every tick
}

// DefaultRunOptions matches a one-hour run sampled every ten seconds.
func DefaultRunOptions() RunOptions {
	return RunOptions{MaxTime: 3600, Dt: 1.0, SaveInterval: 10.0}
}

// Result of a completed (or interrupted) run.
type Result struct {
	Final   Snapshot
	History []Snapshot
	Stats   Stats
}
