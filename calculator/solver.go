package calculator

import (
	"context"

	"dhpipe/model"
)

// Solver advances the water, insulation and ground fields of one pipe
// segment. It is owned by a single goroutine for the whole run.
type Solver struct {
	p  *NetworkParameters
	bc model.BoundaryConditions

	nodes int
	steps int
	t     int // current time index

	field *TemperatureField

	// double buffer, prev holds time index t and next receives t+1
	prev *snapshot
	next *snapshot

	hub *CalcHub
}

// NewSolver writes the initial state (t = 0) and returns a solver ready to step.
func NewSolver(p *NetworkParameters, bc model.BoundaryConditions, disc model.Discretization, warm model.WarmStart) *Solver {
	s := &Solver{
		p:     p,
		bc:    bc,
		nodes: disc.Nodes,
		steps: disc.Steps,
		field: newTemperatureField(disc.Nodes, disc.Steps, disc.TimeStep),
		prev:  newSnapshot(disc.Nodes),
		next:  newSnapshot(disc.Nodes),
	}
	for i := 0; i < s.nodes; i++ {
		s.prev.water[i] = bc.InitialTemperature
		s.prev.insulation[i] = bc.InitialTemperature + warm.InsulationOffset
		s.prev.ground[i] = bc.GroundTemperature + warm.GroundOffset
	}
	// Dirichlet inlet, never overwritten by the water update
	s.prev.water[0] = bc.InletTemperature
	s.next.water[0] = bc.InletTemperature
	s.field.write(0, s.prev)
	return s
}

// SetHub attaches a hub that receives progress while Run is stepping.
func (s *Solver) SetHub(hub *CalcHub) {
	s.hub = hub
}

func (s *Solver) Parameters() *NetworkParameters {
	return s.p
}

func (s *Solver) Field() *TemperatureField {
	return s.field
}

// Time is the current time index.
func (s *Solver) Time() int {
	return s.t
}

func (s *Solver) Done() bool {
	return s.t >= s.steps
}

// Step advances one time step. Order matters: water and ground read the new
// insulation temperature. It returns false once the last step was taken.
func (s *Solver) Step() bool {
	if s.Done() {
		return false
	}
	s.updateInsulation(s.prev, s.next)
	s.updateWater(s.prev, s.next)
	s.updateGround(s.prev, s.next)

	s.t++
	s.field.write(s.t, s.next)
	s.prev, s.next = s.next, s.prev
	return true
}

// Run steps until the last time index or until ctx is done.
func (s *Solver) Run(ctx context.Context) error {
	for !s.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Step()
		if s.hub != nil {
			s.hub.report(s)
		}
	}
	return nil
}

// updateInsulation is the pre-eliminated insulation balance. Interior nodes
// first, then the zero gradient boundary at node 0.
func (s *Solver) updateInsulation(prev, next *snapshot) {
	w, g, in := s.p.Water, s.p.Ground, s.p.Insulation
	kSelf := 1 / in.C
	kWater := in.A * (1 - w.A) / (in.C * w.C)
	kUpstream := in.A * w.A / (in.C * w.C)
	kGround := in.B / (in.C * g.C)
	kAmbient := in.B * g.B / (in.C * g.C) * s.bc.GroundTemperature
	for i := 1; i < s.nodes; i++ {
		next.insulation[i] = prev.insulation[i]*kSelf +
			prev.water[i]*kWater +
			prev.water[i-1]*kUpstream +
			prev.ground[i]*kGround +
			kAmbient
	}
	next.insulation[0] = next.insulation[1]
}

// updateWater advects from the upstream node and exchanges heat with the
// new insulation temperature. Node 0 keeps the inlet temperature.
func (s *Solver) updateWater(prev, next *snapshot) {
	w := s.p.Water
	for i := 1; i < s.nodes; i++ {
		next.water[i] = prev.water[i]*(1-w.A)/w.C +
			prev.water[i-1]*w.A/w.C +
			next.insulation[i]*w.B/w.C
	}
}

func (s *Solver) updateGround(prev, next *snapshot) {
	g := s.p.Ground
	ambient := s.bc.GroundTemperature * g.B / g.C
	for i := 0; i < s.nodes; i++ {
		next.ground[i] = prev.ground[i]/g.C +
			next.insulation[i]*g.A/g.C +
			ambient
	}
}
