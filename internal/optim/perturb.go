package optim

import (
	"fmt"

	"github.com/san-kum/tokasim/internal/reactor"
)

// Field names accepted by WithChanges.
const (
	FieldMajorRadius               = "major_radius"
	FieldMinorRadius               = "minor_radius"
	FieldElongation                = "elongation"
	FieldTriangularity             = "triangularity"
	FieldToroidalField             = "toroidal_field"
	FieldPlasmaCurrent             = "plasma_current"
	FieldInitialTemperature        = "initial_temperature"
	FieldInitialDensity            = "initial_density"
	FieldInputPower                = "input_power"
	FieldAuxiliaryHeating          = "auxiliary_heating"
	FieldCurrentDrivePower         = "current_drive_power"
	FieldInitialTritiumInventory   = "initial_tritium_inventory"
	FieldInitialDeuteriumInventory = "initial_deuterium_inventory"
)

// WithChanges returns a copy of cfg with the named deltas added and the
// results clamped to the bounds. The input is never mutated.
func WithChanges(cfg reactor.Config, b Bounds, deltas map[string]float64) (reactor.Config, error) {
	out := cfg
	for field, delta := range deltas {
		switch field {
		case FieldMajorRadius:
			out.MajorRadius = b.MajorRadius.Clamp(out.MajorRadius + delta)
		case FieldMinorRadius:
			out.MinorRadius = b.MinorRadius.Clamp(out.MinorRadius + delta)
		case FieldElongation:
			out.Elongation = b.Elongation.Clamp(out.Elongation + delta)
		case FieldTriangularity:
			out.Triangularity = b.Triangularity.Clamp(out.Triangularity + delta)
		case FieldToroidalField:
			out.ToroidalField = b.ToroidalField.Clamp(out.ToroidalField + delta)
		case FieldPlasmaCurrent:
			out.PlasmaCurrent = b.PlasmaCurrent.Clamp(out.PlasmaCurrent + delta)
		case FieldInitialTemperature:
			out.InitialTemperature = b.InitialTemperature.Clamp(out.InitialTemperature + delta)
		case FieldInitialDensity:
			out.InitialDensity = b.InitialDensity.Clamp(out.InitialDensity + delta)
		case FieldInputPower:
			out.InputPower = b.InputPower.Clamp(out.InputPower + delta)
		case FieldAuxiliaryHeating:
			out.AuxiliaryHeating = b.AuxiliaryHeating.Clamp(out.AuxiliaryHeating + delta)
		case FieldCurrentDrivePower:
			out.CurrentDrivePower = b.CurrentDrivePower.Clamp(out.CurrentDrivePower + delta)
		case FieldInitialTritiumInventory:
			out.InitialTritiumInventory = b.InitialTritiumInventory.Clamp(out.InitialTritiumInventory + delta)
		case FieldInitialDeuteriumInventory:
			out.InitialDeuteriumInventory = b.InitialDeuteriumInventory.Clamp(out.InitialDeuteriumInventory + delta)
		default:
			return cfg, fmt.Errorf("optim: unknown field %q", field)
		}
	}
	return out, nil
}
