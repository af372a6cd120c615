package calculator

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"dhpipe/model"
	"dhpipe/segment"
)

// Result of one complete run.
type Result struct {
	Config     Config
	Geometry   model.PipeGeometry
	Parameters *NetworkParameters
	Field      *TemperatureField
	Elapsed    time.Duration
}

// Prepare resolves the geometry, derives the network and returns a solver at
// t = 0. Nothing is stepped if the configuration is rejected.
func Prepare(cfg Config) (*Solver, model.PipeGeometry, error) {
	geom, err := segment.Resolve(cfg.Segment)
	if err != nil {
		return nil, model.PipeGeometry{}, err
	}
	p, err := ComputeNetworkParameters(geom, cfg.Materials, cfg.Boundary, cfg.Discretization)
	if err != nil {
		return nil, model.PipeGeometry{}, err
	}
	return NewSolver(p, cfg.Boundary, cfg.Discretization, cfg.WarmStart), geom, nil
}

// Simulate runs cfg to its last time step. hub may be nil.
func Simulate(ctx context.Context, cfg Config, hub *CalcHub) (*Result, error) {
	s, geom, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return Execute(ctx, cfg, geom, s, hub)
}

// Execute drives a prepared calculator to its last time step. hub may be nil.
func Execute(ctx context.Context, cfg Config, geom model.PipeGeometry, c Calculator, hub *CalcHub) (*Result, error) {
	start := time.Now()
	if hub != nil {
		c.SetHub(hub)
	}
	log.WithFields(log.Fields{
		"role":     cfg.Boundary.Role,
		"DN":       cfg.Segment.NominalDiameter,
		"series":   int(cfg.Segment.InsulationClass),
		"capacity": cfg.Segment.Capacity,
		"nodes":    cfg.Discretization.Nodes,
		"steps":    cfg.Discretization.Steps,
		"dt":       cfg.Discretization.TimeStep,
	}).Info("simulation started")

	if err := c.Run(ctx); err != nil {
		log.WithFields(log.Fields{"step": c.Time()}).Warn("simulation stopped: ", err)
		return nil, err
	}

	res := &Result{
		Config:     cfg,
		Geometry:   geom,
		Parameters: c.Parameters(),
		Field:      c.Field(),
		Elapsed:    time.Since(start),
	}
	sum := res.Summary()
	log.WithFields(log.Fields{
		"outlet":   sum.Outlet,
		"heatLoss": sum.HeatLoss,
		"elapsed":  res.Elapsed,
	}).Info("simulation finished")
	return res, nil
}
