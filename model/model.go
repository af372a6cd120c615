package model

import (
	"fmt"
	"strings"
)

// PipeRole tells whether the segment carries supply or return water.
type PipeRole string

const (
	Supply PipeRole = "supply"
	Return PipeRole = "return"
)

func ParsePipeRole(s string) (PipeRole, error) {
	switch PipeRole(strings.ToLower(strings.TrimSpace(s))) {
	case Supply:
		return Supply, nil
	case Return:
		return Return, nil
	}
	return "", fmt.Errorf("%w: pipe role %q, want supply or return", ErrInvalidArgument, s)
}

func (r PipeRole) Valid() bool {
	return r == Supply || r == Return
}

// CapacityModel selects the diameter that bounds the water column in the
// water-steel node capacity.
type CapacityModel string

const (
	// CapacityBore fills the steel bore with water and counts the steel
	// annulus between bore and steel outer diameter.
	CapacityBore CapacityModel = "bore"
	// CapacityInsulation extends the water column to the insulation
	// diameter, as the LOGSTOR reference trace is computed.
	CapacityInsulation CapacityModel = "insulation"
)

func ParseCapacityModel(s string) (CapacityModel, error) {
	switch CapacityModel(strings.ToLower(strings.TrimSpace(s))) {
	case CapacityBore:
		return CapacityBore, nil
	case CapacityInsulation:
		return CapacityInsulation, nil
	}
	return "", fmt.Errorf("%w: capacity model %q, want bore or insulation", ErrInvalidArgument, s)
}

// LayerDiameters are the outer diameters of the pipe layers, [m].
type LayerDiameters struct {
	Water      float64 `json:"water"`      // steel pipe bore
	Steel      float64 `json:"steel"`      // steel pipe outer
	Insulation float64 `json:"insulation"` // PUR foam outer
	Casing     float64 `json:"casing"`     // PE casing outer
}

// PipeGeometry is the resolved cross-section of one buried segment.
type PipeGeometry struct {
	LayerDiameters
	Ground          float64 `json:"ground"`           // [m] disturbed soil ring outer diameter
	CasingThickness float64 `json:"casing_thickness"` // [m]
	Depth           float64 `json:"depth"`            // [m] burial depth
	Separation      float64 `json:"separation"`       // [m] distance between supply and return
	CapacityBore    float64 `json:"capacity_bore"`    // [m] water column diameter in C_ws, water diameter when 0
}

func (g PipeGeometry) Validate() error {
	if !(g.Water > 0 && g.Water < g.Steel && g.Steel < g.Insulation && g.Insulation < g.Casing && g.Casing < g.Ground) {
		return fmt.Errorf("%w: layer diameters must strictly increase, got water=%g steel=%g insulation=%g casing=%g ground=%g",
			ErrConfiguration, g.Water, g.Steel, g.Insulation, g.Casing, g.Ground)
	}
	if g.Depth <= 0 {
		return fmt.Errorf("%w: burial depth %g must be positive", ErrConfiguration, g.Depth)
	}
	if g.Separation <= 0 {
		return fmt.Errorf("%w: pipe separation %g must be positive", ErrConfiguration, g.Separation)
	}
	return nil
}

// Material holds the thermophysical properties of one layer.
type Material struct {
	Name         string  `json:"name"`
	Density      float64 `json:"density"`       // [kg/m3]
	SpecificHeat float64 `json:"specific_heat"` // [J/kgK]
	Conductivity float64 `json:"conductivity"`  // [W/mK], unused for water and steel
}

type Materials struct {
	Water      Material `json:"water"`
	Steel      Material `json:"steel"`
	Insulation Material `json:"insulation"`
	Casing     Material `json:"casing"`
	Soil       Material `json:"soil"`
}

func (m Materials) Validate() error {
	for _, mat := range []Material{m.Water, m.Steel, m.Insulation, m.Casing, m.Soil} {
		if mat.Density <= 0 || mat.SpecificHeat <= 0 {
			return fmt.Errorf("%w: material %q needs positive density and specific heat", ErrConfiguration, mat.Name)
		}
	}
	for _, mat := range []Material{m.Insulation, m.Casing, m.Soil} {
		if mat.Conductivity <= 0 {
			return fmt.Errorf("%w: material %q needs positive conductivity", ErrConfiguration, mat.Name)
		}
	}
	return nil
}

// BoundaryConditions are fixed for the whole run.
type BoundaryConditions struct {
	Role               PipeRole `json:"role"`
	SupplyTemperature  float64  `json:"supply_temperature"`  // [°C] nominal
	ReturnTemperature  float64  `json:"return_temperature"`  // [°C] nominal
	GroundTemperature  float64  `json:"ground_temperature"`  // [°C] undisturbed
	Length             float64  `json:"length"`              // [m]
	MassFlow           float64  `json:"mass_flow"`           // [kg/s]
	InitialTemperature float64  `json:"initial_temperature"` // [°C] water at t=0
	InletTemperature   float64  `json:"inlet_temperature"`   // [°C]
}

func (b BoundaryConditions) Validate() error {
	if !b.Role.Valid() {
		return fmt.Errorf("%w: pipe role %q, want supply or return", ErrInvalidArgument, b.Role)
	}
	if b.Length <= 0 {
		return fmt.Errorf("%w: pipe length %g must be positive", ErrConfiguration, b.Length)
	}
	if b.MassFlow <= 0 {
		return fmt.Errorf("%w: mass flow %g must be positive", ErrConfiguration, b.MassFlow)
	}
	// the asymmetry divides by the excess temperature of the pipe itself
	if b.Role == Supply && b.SupplyTemperature == b.GroundTemperature {
		return fmt.Errorf("%w: supply temperature must differ from the ground temperature %g", ErrConfiguration, b.GroundTemperature)
	}
	if b.Role == Return && b.ReturnTemperature == b.GroundTemperature {
		return fmt.Errorf("%w: return temperature must differ from the ground temperature %g", ErrConfiguration, b.GroundTemperature)
	}
	return nil
}

// Discretization is the space/time mesh of one run.
type Discretization struct {
	Nodes    int     `json:"nodes"`     // >= 2
	TimeStep float64 `json:"time_step"` // [s]
	Steps    int     `json:"steps"`     // >= 0
}

func (d Discretization) Validate() error {
	if d.Nodes < 2 {
		return fmt.Errorf("%w: node count %d, need at least 2", ErrConfiguration, d.Nodes)
	}
	if d.TimeStep <= 0 {
		return fmt.Errorf("%w: time step %g must be positive", ErrConfiguration, d.TimeStep)
	}
	if d.Steps < 0 {
		return fmt.Errorf("%w: step count %d must not be negative", ErrConfiguration, d.Steps)
	}
	if !d.Fits(MaxFieldCells) {
		return fmt.Errorf("%w: %d nodes x %d steps exceeds the field history limit of %d values",
			ErrConfiguration, d.Nodes, d.Steps, MaxFieldCells)
	}
	return nil
}

// Fits reports whether one field history, nodes x (steps+1) values, stays
// within limit. A negative step count is left to Validate.
func (d Discretization) Fits(limit int) bool {
	if d.Steps < 0 {
		return true
	}
	return d.Steps < limit && d.Nodes <= limit/(d.Steps+1)
}

// SpatialStep is the node spacing for a pipe of the given length.
func (d Discretization) SpatialStep(length float64) float64 {
	return length / float64(d.Nodes-1)
}

// WarmStart offsets the initial insulation and ground fields.
type WarmStart struct {
	InsulationOffset float64 `json:"insulation_offset"` // [K] relative to initial water temperature
	GroundOffset     float64 `json:"ground_offset"`     // [K] relative to undisturbed ground temperature
}

func DefaultWarmStart() WarmStart {
	return WarmStart{
		InsulationOffset: DefaultInsulationOffset,
		GroundOffset:     DefaultGroundOffset,
	}
}

// Msg is the websocket envelope between client and server.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Env is the run configuration a client sends with an "env" message.
// Nil fields keep the server's defaults.
type Env struct {
	Role               *string  `json:"role"`
	Capacity           *string  `json:"capacity"`
	NominalDiameter    *int     `json:"nominal_diameter"`
	InsulationClass    *int     `json:"insulation_class"`
	SupplyTemperature  *float64 `json:"supply_temperature"`
	ReturnTemperature  *float64 `json:"return_temperature"`
	GroundTemperature  *float64 `json:"ground_temperature"`
	Length             *float64 `json:"length"`
	MassFlow           *float64 `json:"mass_flow"`
	InitialTemperature *float64 `json:"initial_temperature"`
	InletTemperature   *float64 `json:"inlet_temperature"`
	Nodes              *int     `json:"nodes"`
	TimeStep           *float64 `json:"time_step"`
	Steps              *int     `json:"steps"`
}
