// Package materials holds the static property table for fusion reactor
// components. Values follow published fusion-materials data; the table
// is fixed at compile time and looked up by case-insensitive key.
package materials

import (
	"math"
	"sort"
	"strings"
)

// DefaultMaxDPA is the damage limit assumed when a material has no
// measured value.
const DefaultMaxDPA = 100.0

// Material describes the engineering properties relevant to the engine.
type Material struct {
	Name                   string
	Density                float64 // kg/m^3
	ThermalConductivity    float64 // W/(m K) at room temperature
	SpecificHeat           float64 // J/(kg K)
	MeltingPoint           float64 // K
	MaxOperatingTemp       float64 // K, conservative limit
	AbsorptionCrossSection float64 // barns
	ScatteringCrossSection float64 // barns
	BreedingRatio          float64 // tritium breeding ratio for Li compounds
	ThermalExpansion       float64 // 1/K
	YoungsModulus          float64 // Pa
	YieldStrength          float64 // Pa
	MaxDPA                 float64
}

// ThermalConductivityAt returns the conductivity corrected for
// operating temperature: roughly -20% per 1000 K above 300 K, floored
// at 30% of the room-temperature value.
func (m Material) ThermalConductivityAt(temperature float64) float64 {
	const ref = 300.0
	if temperature < ref {
		return m.ThermalConductivity
	}
	factor := 1.0 - 0.2*(temperature-ref)/1000.0
	return math.Max(m.ThermalConductivity*factor, m.ThermalConductivity*0.3)
}

var table = map[string]Material{
	// First wall candidates.
	"tungsten": {
		Name:                   "Tungsten",
		Density:                19250.0,
		ThermalConductivity:    173.0,
		SpecificHeat:           132.0,
		MeltingPoint:           3695.0,
		MaxOperatingTemp:       1500.0,
		AbsorptionCrossSection: 18.3,
		ScatteringCrossSection: 4.7,
		ThermalExpansion:       4.5e-6,
		YoungsModulus:          411e9,
		YieldStrength:          550e6,
		MaxDPA:                 DefaultMaxDPA,
	},
	"beryllium": {
		Name:                   "Beryllium",
		Density:                1848.0,
		ThermalConductivity:    190.0,
		SpecificHeat:           1825.0,
		MeltingPoint:           1560.0,
		MaxOperatingTemp:       800.0, // embrittlement limit
		AbsorptionCrossSection: 0.0092,
		ScatteringCrossSection: 7.0,
		ThermalExpansion:       11.3e-6,
		YoungsModulus:          287e9,
		YieldStrength:          240e6,
		MaxDPA:                 DefaultMaxDPA,
	},
	"tungsten_copper": {
		Name:                   "Tungsten-Copper Composite",
		Density:                15000.0,
		ThermalConductivity:    200.0,
		SpecificHeat:           200.0,
		MeltingPoint:           1500.0,
		MaxOperatingTemp:       1500.0,
		AbsorptionCrossSection: 18.3,
		ScatteringCrossSection: 4.7,
		ThermalExpansion:       5.0e-6,
		YoungsModulus:          350e9,
		YieldStrength:          800e6,
		MaxDPA:                 DefaultMaxDPA,
	},

	// Breeding blankets.
	"lithium": {
		Name:                   "Lithium",
		Density:                534.0,
		ThermalConductivity:    84.8,
		SpecificHeat:           3570.0,
		MeltingPoint:           453.7,
		MaxOperatingTemp:       1000.0, // as liquid
		AbsorptionCrossSection: 70.5,
		ScatteringCrossSection: 1.4,
		BreedingRatio:          1.0,
		ThermalExpansion:       56e-6,
		YoungsModulus:          4.9e9,
		YieldStrength:          1e6,
		MaxDPA:                 DefaultMaxDPA,
	},
	"lithium_lead": {
		Name:                   "Lithium-Lead",
		Density:                10500.0, // Li17Pb83 eutectic
		ThermalConductivity:    15.0,
		SpecificHeat:           195.0,
		MeltingPoint:           508.0,
		MaxOperatingTemp:       800.0,
		AbsorptionCrossSection: 45.0,
		ScatteringCrossSection: 3.0,
		BreedingRatio:          1.2,
		ThermalExpansion:       20e-6,
		YoungsModulus:          20e9,
		YieldStrength:          50e6,
		MaxDPA:                 DefaultMaxDPA,
	},

	// Structure, coolants, magnets.
	"eurofer97": {
		Name:                   "EUROFER97",
		Density:                7850.0,
		ThermalConductivity:    28.0,
		SpecificHeat:           500.0,
		MeltingPoint:           1800.0,
		MaxOperatingTemp:       550.0, // irradiation limit
		AbsorptionCrossSection: 2.6,
		ScatteringCrossSection: 11.0,
		ThermalExpansion:       12e-6,
		YoungsModulus:          220e9,
		YieldStrength:          500e6,
		MaxDPA:                 DefaultMaxDPA,
	},
	"helium": {
		Name:                   "Helium",
		Density:                0.1785, // STP
		ThermalConductivity:    0.1513,
		SpecificHeat:           5193.0,
		MeltingPoint:           0.95,
		MaxOperatingTemp:       1000.0,
		ScatteringCrossSection: 0.8,
		ThermalExpansion:       0.00366,
		MaxDPA:                 DefaultMaxDPA,
	},
	"water": {
		Name:                   "Water",
		Density:                1000.0,
		ThermalConductivity:    0.6,
		SpecificHeat:           4180.0,
		MeltingPoint:           273.15,
		MaxOperatingTemp:       600.0, // supercritical
		AbsorptionCrossSection: 0.66,
		ScatteringCrossSection: 103.0,
		ThermalExpansion:       207e-6,
		MaxDPA:                 DefaultMaxDPA,
	},
	"hts_magnet": {
		Name:                "HTS Magnet",
		Density:             8000.0,
		ThermalConductivity: 50.0,
		SpecificHeat:        200.0,
		MeltingPoint:        2000.0,
		MaxOperatingTemp:    77.0, // liquid nitrogen
		ThermalExpansion:    10e-6,
		YoungsModulus:       200e9,
		YieldStrength:       500e6,
		MaxDPA:              DefaultMaxDPA,
	},
}

// Lookup returns the material for the given name, case-insensitively.
func Lookup(name string) (Material, bool) {
	m, ok := table[strings.ToLower(name)]
	return m, ok
}

// Names returns the table keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
