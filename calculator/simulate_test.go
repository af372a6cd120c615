package calculator

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"dhpipe/model"
)

func TestSimulateReference(t *testing.T) {
	res, err := Simulate(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	out := res.Field.Outlet()
	if len(out) != 10001 {
		t.Fatalf("outlet has %d points, want 10001", len(out))
	}
	golden := map[int]float64{
		0:     40,
		1:     39.999907484079074,
		100:   39.987920673831816,
		178:   39.97908714154552,
		1000:  60.810741769017156,
		2000:  67.37432959161491,
		2045:  67.37504403765548,
		10000: 67.14733311429949,
	}
	for i, want := range golden {
		if math.Abs(out[i]-want) > 1e-6 {
			t.Errorf("outlet[%d] = %.12g, want %.12g", i, out[i], want)
		}
	}
	if floats.MaxIdx(out) != 2045 || floats.MinIdx(out) != 178 {
		t.Errorf("extrema at %d/%d, want max 2045 min 178", floats.MaxIdx(out), floats.MinIdx(out))
	}

	water, insulation, ground := res.Field.Profile(10000)
	wantWater := []float64{70, 69.67602648572431, 69.35383130378129, 69.03340347027532, 68.71473198411203,
		68.39780582383715, 68.08261394437322, 67.76914527365393, 67.45738870915247, 67.14733311429949}
	if !floats.EqualApprox(water, wantWater, 1e-6) {
		t.Errorf("final water profile = %v, want %v", water, wantWater)
	}
	if math.Abs(insulation[0]-31.659500929966015) > 1e-6 || math.Abs(insulation[9]-30.705863817219942) > 1e-6 {
		t.Errorf("final insulation ends = %v, %v", insulation[0], insulation[9])
	}
	if math.Abs(ground[0]-13.194449160063987) > 1e-6 || math.Abs(ground[9]-13.0481360059491) > 1e-6 {
		t.Errorf("final ground ends = %v, %v", ground[0], ground[9])
	}

	sum := res.Summary()
	if sum.Outlet >= 70 {
		t.Errorf("steady outlet %v not below inlet", sum.Outlet)
	}
	if math.Abs(sum.Drift) > 1e-5 {
		t.Errorf("outlet still drifting %v K/s at the end", sum.Drift)
	}
	if math.Abs(sum.HeatLoss-0.01*4200*(70-67.14733311429949)) > 1e-4 {
		t.Errorf("heat loss = %v", sum.HeatLoss)
	}
}

func TestSimulateInsulationCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Segment.Capacity = model.CapacityInsulation
	res, err := Simulate(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got := res.Parameters.Cws; math.Abs(got-5770.437065735517) > 1e-9 {
		t.Errorf("Cws = %.17g, want 5770.437065735517", got)
	}
	if got := res.Parameters.CourantNumber(); math.Abs(got-0.007278478132859865) > 1e-12 {
		t.Errorf("Aw = %.17g, want 0.007278478132859865", got)
	}

	out := res.Field.Outlet()
	golden := map[int]float64{
		0:     40,
		1:     39.99993756153957,
		100:   39.99180728456567,
		1000:  48.56003262932693,
		10000: 67.14543417153479,
	}
	for i, want := range golden {
		if math.Abs(out[i]-want) > 1e-6 {
			t.Errorf("outlet[%d] = %.12g, want %.12g", i, out[i], want)
		}
	}
	lo, hi := floats.Min(out), floats.Max(out)
	if math.Abs(lo-39.974870165200045) > 1e-6 || math.Abs(hi-67.28449134393871) > 1e-6 {
		t.Errorf("outlet range = [%v, %v], want [39.974870165200045, 67.28449134393871]", lo, hi)
	}
}

// countingCalculator wraps a Solver and counts Run calls.
type countingCalculator struct {
	*Solver
	runs int
}

func (c *countingCalculator) Run(ctx context.Context) error {
	c.runs++
	return c.Solver.Run(ctx)
}

func TestExecuteDrivesCalculator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Discretization.Steps = 40
	s, geom, err := Prepare(cfg)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	calc := &countingCalculator{Solver: s}
	hub := NewCalcHub(20)
	res, err := Execute(context.Background(), cfg, geom, calc, hub)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if calc.runs != 1 || res.Field.Steps() != 40 || res.Geometry != geom {
		t.Fatalf("runs %d, steps %d", calc.runs, res.Field.Steps())
	}
	if p := <-hub.Progress; p.Step != 20 {
		t.Errorf("first progress at step %d, want 20", p.Step)
	}
}

func TestSimulateRejectsBeforeStepping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Segment.NominalDiameter = 22
	res, err := Simulate(context.Background(), cfg, nil)
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if res != nil {
		t.Fatal("partial result returned on failure")
	}
}

func TestBuildPushData(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Discretization.Steps = 1000
	res, err := Simulate(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	d := res.BuildPushData(100)
	if len(d.Outlet) > 100 || len(d.Outlet) != len(d.Times) {
		t.Fatalf("sampled %d outlet / %d time points, want <= 100 and equal", len(d.Outlet), len(d.Times))
	}
	if d.Times[len(d.Times)-1] != 1000 || d.Outlet[len(d.Outlet)-1] != res.Summary().Outlet {
		t.Fatal("last point not kept")
	}
	if d.Gamma != 0.5 {
		t.Errorf("gamma = %v, want 0.5", d.Gamma)
	}

	full := res.BuildPushData(0)
	if full.Stride != 1 || len(full.Outlet) != 1001 {
		t.Fatalf("unsampled push data: stride %d, %d points", full.Stride, len(full.Outlet))
	}
}
