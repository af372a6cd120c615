// Package catalogue holds the pre-insulated single steel pipe dimensions
// published in the LOGSTOR product catalogue (version 2018.12).
package catalogue

import (
	"fmt"

	"dhpipe/model"
)

// InsulationClass is the insulation series, 1 (poor) to 3 (good).
type InsulationClass int

const (
	Series1 InsulationClass = 1
	Series2 InsulationClass = 2
	Series3 InsulationClass = 3
)

// nominal diameters, DN
var nominal = [...]int{20, 25, 32, 40, 50, 65, 80, 100, 125}

// bore and steel outer diameter, mm
var (
	waterMM = [...]float64{21.7, 28.5, 37.2, 43.1, 54.5, 70.3, 82.5, 107.1, 132.5}
	steelMM = [...]float64{26.9, 33.7, 42.4, 48.3, 60.3, 76.1, 88.9, 114.3, 139.7}
)

// insulation and casing outer diameter per series, mm
var (
	insulationMM = map[InsulationClass][len(nominal)]float64{
		Series1: {84, 84, 104, 104, 119, 134, 154, 193.6, 218.2},
		Series2: {104, 104, 119, 119, 134, 154, 174, 218.2, 242.8},
		Series3: {119, 119, 134, 134, 154, 174, 193.6, 242.8, 272.2},
	}
	casingMM = map[InsulationClass][len(nominal)]float64{
		Series1: {90, 90, 110, 110, 125, 140, 160, 200, 225},
		Series2: {110, 110, 125, 125, 140, 160, 180, 225, 250},
		Series3: {125, 125, 140, 140, 160, 180, 200, 250, 280},
	}
)

// NominalDiameters lists the catalogued DN values in ascending order.
func NominalDiameters() []int {
	out := make([]int, len(nominal))
	copy(out, nominal[:])
	return out
}

// LayerDiameters returns the water, steel, insulation and casing diameters
// in meters for a nominal diameter and insulation series.
func LayerDiameters(dn int, class InsulationClass) (model.LayerDiameters, error) {
	ind := -1
	for i, v := range nominal {
		if v == dn {
			ind = i
			break
		}
	}
	if ind < 0 {
		return model.LayerDiameters{}, fmt.Errorf("%w: nominal diameter DN%d, catalogued values are %v", model.ErrInvalidArgument, dn, nominal)
	}
	ins, ok := insulationMM[class]
	if !ok {
		return model.LayerDiameters{}, fmt.Errorf("%w: insulation series %d, want 1 (poor), 2 or 3 (good)", model.ErrInvalidArgument, class)
	}
	cas := casingMM[class]
	return model.LayerDiameters{
		Water:      waterMM[ind] * 0.001,
		Steel:      steelMM[ind] * 0.001,
		Insulation: ins[ind] * 0.001,
		Casing:     cas[ind] * 0.001,
	}, nil
}
