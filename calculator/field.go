package calculator

import (
	"gonum.org/v1/gonum/mat"
)

// TemperatureField holds the history of the three fields, [node] x [time index].
// Column t is written once, when the solver reaches t.
type TemperatureField struct {
	Water      *mat.Dense
	Insulation *mat.Dense
	Ground     *mat.Dense

	dt float64
}

func newTemperatureField(nodes, steps int, dt float64) *TemperatureField {
	return &TemperatureField{
		Water:      mat.NewDense(nodes, steps+1, nil),
		Insulation: mat.NewDense(nodes, steps+1, nil),
		Ground:     mat.NewDense(nodes, steps+1, nil),
		dt:         dt,
	}
}

func (f *TemperatureField) Nodes() int {
	r, _ := f.Water.Dims()
	return r
}

// Steps is the last time index of the history.
func (f *TemperatureField) Steps() int {
	_, c := f.Water.Dims()
	return c - 1
}

func (f *TemperatureField) TimeStep() float64 {
	return f.dt
}

// Outlet returns the water temperature at the last node for every time index.
func (f *TemperatureField) Outlet() []float64 {
	return mat.Row(nil, f.Nodes()-1, f.Water)
}

// Times returns t*dt for every time index, [s].
func (f *TemperatureField) Times() []float64 {
	out := make([]float64, f.Steps()+1)
	for i := range out {
		out[i] = float64(i) * f.dt
	}
	return out
}

// Profile returns the three fields along the pipe at time index t.
func (f *TemperatureField) Profile(t int) (water, insulation, ground []float64) {
	return mat.Col(nil, t, f.Water), mat.Col(nil, t, f.Insulation), mat.Col(nil, t, f.Ground)
}

func (f *TemperatureField) write(t int, s *snapshot) {
	f.Water.SetCol(t, s.water)
	f.Insulation.SetCol(t, s.insulation)
	f.Ground.SetCol(t, s.ground)
}

// snapshot is the state of all nodes at one time index.
type snapshot struct {
	water      []float64
	insulation []float64
	ground     []float64
}

func newSnapshot(nodes int) *snapshot {
	return &snapshot{
		water:      make([]float64, nodes),
		insulation: make([]float64, nodes),
		ground:     make([]float64, nodes),
	}
}
