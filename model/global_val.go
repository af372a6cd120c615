package model

// Defaults of the reference case
// 1. ground diameter factor: disturbed soil ring = casing diameter * 1.5
// 2. warm start: insulation starts 1 K below the water, ground 3 K above undisturbed
// 3. laying: 1 m burial depth, 0.15 m between supply and return
// 4. one field history holds at most 1<<24 values (nodes x (steps+1)), 384 MiB for the three fields

const (
	DefaultGroundFactor     = 1.5
	DefaultInsulationOffset = -1.0 // [K]
	DefaultGroundOffset     = 3.0  // [K]
	DefaultDepth            = 1.0  // [m]
	DefaultSeparation       = 0.15 // [m]

	MaxFieldCells = 1 << 24
)
