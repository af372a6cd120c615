package calculator

import (
	"fmt"

	"gopkg.in/ini.v1"

	"dhpipe/catalogue"
	"dhpipe/material"
	"dhpipe/model"
	"dhpipe/segment"
)

// Config is everything one run depends on. It is a value: build it once,
// hand it to Simulate, never share it mutably.
type Config struct {
	Segment        segment.Spec
	Materials      model.Materials
	Boundary       model.BoundaryConditions
	Discretization model.Discretization
	WarmStart      model.WarmStart
}

// DefaultConfig is the reference case: DN20 series 1 supply pipe, 15 m,
// 70/40/10 °C, 0.01 kg/s, 10 nodes, 10000 steps of 1 s.
func DefaultConfig() Config {
	return Config{
		Segment:   segment.DefaultSpec(),
		Materials: material.Default(),
		Boundary: model.BoundaryConditions{
			Role:               model.Supply,
			SupplyTemperature:  70,
			ReturnTemperature:  40,
			GroundTemperature:  10,
			Length:             15,
			MassFlow:           0.01,
			InitialTemperature: 40,
			InletTemperature:   70,
		},
		Discretization: model.Discretization{
			Nodes:    10,
			TimeStep: 1,
			Steps:    10000,
		},
		WarmStart: model.DefaultWarmStart(),
	}
}

// LoadConfig reads an ini file. Missing keys keep the reference case.
func LoadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return ParseConfig(file)
}

// ParseConfig builds a Config from an already loaded ini file.
func ParseConfig(file *ini.File) (Config, error) {
	def := DefaultConfig()

	pipe := file.Section("pipe")
	boundary := file.Section("boundary")
	disc := file.Section("discretization")
	warm := file.Section("warm_start")

	role, err := model.ParsePipeRole(boundary.Key("Role").MustString(string(def.Boundary.Role)))
	if err != nil {
		return Config{}, err
	}
	capacity, err := model.ParseCapacityModel(pipe.Key("Capacity").MustString(string(def.Segment.Capacity)))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Segment: segment.Spec{
			NominalDiameter: pipe.Key("NominalDiameter").MustInt(def.Segment.NominalDiameter),
			InsulationClass: catalogue.InsulationClass(pipe.Key("InsulationClass").MustInt(int(def.Segment.InsulationClass))),
			GroundFactor:    pipe.Key("GroundFactor").MustFloat64(def.Segment.GroundFactor),
			Depth:           pipe.Key("Depth").MustFloat64(def.Segment.Depth),
			Separation:      pipe.Key("Separation").MustFloat64(def.Segment.Separation),
			Capacity:        capacity,
		},
		Materials: model.Materials{
			Water:      loadMaterial(file.Section("water"), def.Materials.Water),
			Steel:      loadMaterial(file.Section("steel"), def.Materials.Steel),
			Insulation: loadMaterial(file.Section("insulation"), def.Materials.Insulation),
			Casing:     loadMaterial(file.Section("casing"), def.Materials.Casing),
			Soil:       loadMaterial(file.Section("soil"), def.Materials.Soil),
		},
		Boundary: model.BoundaryConditions{
			Role:               role,
			SupplyTemperature:  boundary.Key("SupplyTemperature").MustFloat64(def.Boundary.SupplyTemperature),
			ReturnTemperature:  boundary.Key("ReturnTemperature").MustFloat64(def.Boundary.ReturnTemperature),
			GroundTemperature:  boundary.Key("GroundTemperature").MustFloat64(def.Boundary.GroundTemperature),
			Length:             boundary.Key("Length").MustFloat64(def.Boundary.Length),
			MassFlow:           boundary.Key("MassFlow").MustFloat64(def.Boundary.MassFlow),
			InitialTemperature: boundary.Key("InitialTemperature").MustFloat64(def.Boundary.InitialTemperature),
			InletTemperature:   boundary.Key("InletTemperature").MustFloat64(def.Boundary.InletTemperature),
		},
		Discretization: model.Discretization{
			Nodes:    disc.Key("Nodes").MustInt(def.Discretization.Nodes),
			TimeStep: disc.Key("TimeStep").MustFloat64(def.Discretization.TimeStep),
			Steps:    disc.Key("Steps").MustInt(def.Discretization.Steps),
		},
		WarmStart: model.WarmStart{
			InsulationOffset: warm.Key("InsulationOffset").MustFloat64(def.WarmStart.InsulationOffset),
			GroundOffset:     warm.Key("GroundOffset").MustFloat64(def.WarmStart.GroundOffset),
		},
	}, nil
}

func loadMaterial(sec *ini.Section, def model.Material) model.Material {
	return model.Material{
		Name:         def.Name,
		Density:      sec.Key("Density").MustFloat64(def.Density),
		SpecificHeat: sec.Key("SpecificHeat").MustFloat64(def.SpecificHeat),
		Conductivity: sec.Key("Conductivity").MustFloat64(def.Conductivity),
	}
}

// WithEnv returns a copy of c with the fields set in env replaced.
func (c Config) WithEnv(env model.Env) (Config, error) {
	if env.Role != nil {
		role, err := model.ParsePipeRole(*env.Role)
		if err != nil {
			return Config{}, err
		}
		c.Boundary.Role = role
	}
	if env.Capacity != nil {
		capacity, err := model.ParseCapacityModel(*env.Capacity)
		if err != nil {
			return Config{}, err
		}
		c.Segment.Capacity = capacity
	}
	setInt(&c.Segment.NominalDiameter, env.NominalDiameter)
	if env.InsulationClass != nil {
		c.Segment.InsulationClass = catalogue.InsulationClass(*env.InsulationClass)
	}
	setFloat(&c.Boundary.SupplyTemperature, env.SupplyTemperature)
	setFloat(&c.Boundary.ReturnTemperature, env.ReturnTemperature)
	setFloat(&c.Boundary.GroundTemperature, env.GroundTemperature)
	setFloat(&c.Boundary.Length, env.Length)
	setFloat(&c.Boundary.MassFlow, env.MassFlow)
	setFloat(&c.Boundary.InitialTemperature, env.InitialTemperature)
	setFloat(&c.Boundary.InletTemperature, env.InletTemperature)
	setInt(&c.Discretization.Nodes, env.Nodes)
	setFloat(&c.Discretization.TimeStep, env.TimeStep)
	setInt(&c.Discretization.Steps, env.Steps)
	return c, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
