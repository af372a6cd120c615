package segment

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"dhpipe/catalogue"
	"dhpipe/model"
)

// Spec selects a catalogue pipe and describes how it is laid.
type Spec struct {
	NominalDiameter int
	InsulationClass catalogue.InsulationClass
	GroundFactor    float64 // disturbed soil diameter / casing diameter
	Depth           float64 // [m]
	Separation      float64 // [m] supply-return distance
	Capacity        model.CapacityModel
}

func DefaultSpec() Spec {
	return Spec{
		NominalDiameter: 20,
		InsulationClass: catalogue.Series1,
		GroundFactor:    model.DefaultGroundFactor,
		Depth:           model.DefaultDepth,
		Separation:      model.DefaultSeparation,
		Capacity:        model.CapacityBore,
	}
}

// Resolve looks the layers up in the catalogue and derives the ground ring
// and casing thickness.
func Resolve(s Spec) (model.PipeGeometry, error) {
	layers, err := catalogue.LayerDiameters(s.NominalDiameter, s.InsulationClass)
	if err != nil {
		return model.PipeGeometry{}, err
	}
	if s.GroundFactor <= 1 {
		return model.PipeGeometry{}, fmt.Errorf("%w: ground diameter factor %g must exceed 1", model.ErrConfiguration, s.GroundFactor)
	}
	var bore float64
	switch s.Capacity {
	case model.CapacityBore, "":
		bore = layers.Water
	case model.CapacityInsulation:
		bore = layers.Insulation
	default:
		return model.PipeGeometry{}, fmt.Errorf("%w: capacity model %q, want bore or insulation", model.ErrInvalidArgument, s.Capacity)
	}
	g := model.PipeGeometry{
		LayerDiameters:  layers,
		Ground:          layers.Casing * s.GroundFactor,
		CasingThickness: (layers.Casing - layers.Insulation) / 2,
		Depth:           s.Depth,
		Separation:      s.Separation,
		CapacityBore:    bore,
	}
	if err := g.Validate(); err != nil {
		return model.PipeGeometry{}, err
	}
	log.WithFields(log.Fields{
		"DN":              s.NominalDiameter,
		"series":          int(s.InsulationClass),
		"water":           g.Water,
		"steel":           g.Steel,
		"insulation":      g.Insulation,
		"casing":          g.Casing,
		"ground":          g.Ground,
		"casingThickness": g.CasingThickness,
		"capacityBore":    g.CapacityBore,
	}).Debug("resolved pipe geometry")
	return g, nil
}
