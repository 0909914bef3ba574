package config

import (
	"sort"

	"github.com/san-kum/tokasim/internal/reactor"
)

// Presets are named machine configurations spanning the main design
// families: a conventional large tokamak, a compact high-field machine
// and a low-aspect-ratio spherical tokamak.
var Presets = map[string]reactor.Config{
	"iter": reactor.DefaultConfig(),

	"compact": {
		MajorRadius:               1.85,
		MinorRadius:               0.57,
		Elongation:                1.97,
		Triangularity:             0.5,
		ToroidalField:             12.2,
		PlasmaCurrent:             8.7e6,
		InitialTemperature:        150e6,
		InitialDensity:            3e20,
		FirstWallMaterial:         "tungsten",
		BlanketMaterial:           "lithium_lead",
		BlanketThickness:          0.5,
		InputPower:                25e6,
		AuxiliaryHeating:          11e6,
		CurrentDrivePower:         0,
		InitialTritiumInventory:   1e25,
		InitialDeuteriumInventory: 1e26,
		MinTritiumInventory:       1e23,
	},

	"spherical": {
		MajorRadius:               2.5,
		MinorRadius:               1.4,
		Elongation:                2.3,
		Triangularity:             0.5,
		ToroidalField:             3.0,
		PlasmaCurrent:             10e6,
		InitialTemperature:        100e6,
		InitialDensity:            1.5e20,
		FirstWallMaterial:         "tungsten_copper",
		BlanketMaterial:           "lithium",
		BlanketThickness:          0.8,
		InputPower:                40e6,
		AuxiliaryHeating:          28e6,
		CurrentDrivePower:         5e6,
		InitialTritiumInventory:   1e25,
		InitialDeuteriumInventory: 1e26,
		MinTritiumInventory:       1e23,
	},
}

// GetPreset returns the named preset.
func GetPreset(name string) (reactor.Config, bool) {
	cfg, ok := Presets[name]
	return cfg, ok
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
