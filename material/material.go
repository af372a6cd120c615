// Package material provides the layer properties of a LOGSTOR single pipe
// laid in average soil.
package material

import "dhpipe/model"

var (
	Water = model.Material{
		Name:         "water",
		Density:      997,
		SpecificHeat: 4.2 * 1000,
	}

	// P235TR1
	Steel = model.Material{
		Name:         "steel",
		Density:      7900,
		SpecificHeat: 502.5,
	}

	// PUR foam
	Insulation = model.Material{
		Name:         "insulation",
		Density:      30,
		SpecificHeat: 133,
		Conductivity: 0.027,
	}

	// PE-HD
	Casing = model.Material{
		Name:         "casing",
		Density:      944,
		SpecificHeat: 2250,
		Conductivity: 0.43,
	}

	Soil = model.Material{
		Name:         "soil",
		Density:      1400,
		SpecificHeat: 1103,
		Conductivity: 1.6,
	}
)

// Default returns the property set of the reference pipe.
func Default() model.Materials {
	return model.Materials{
		Water:      Water,
		Steel:      Steel,
		Insulation: Insulation,
		Casing:     Casing,
		Soil:       Soil,
	}
}

// VolumetricHeat is density times specific heat, [J/m3K].
func VolumetricHeat(m model.Material) float64 {
	return m.Density * m.SpecificHeat
}
