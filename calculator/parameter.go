package calculator

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"dhpipe/material"
	"dhpipe/model"
)

// NetworkParameters is the lumped thermal network of one pipe node together
// with the update coefficients of the three-field recurrence. It is computed
// once per run and only read afterwards.
type NetworkParameters struct {
	// resistances per unit length, [mK/W]
	Ri  float64 // insulation + casing
	Rg  float64 // soil
	Rwi float64 // water - insulation (mutual)
	Rgu float64 // ground - surroundings (mutual)
	Rig float64 // insulation - ground
	Rh  float64 // supply - return interaction

	H float64 // [m] depth corrected for soil surface resistance

	Gamma float64 // temperature asymmetry of the pipe pair
	Theta float64 // two-pipe correction applied to every h

	// heat transfer coefficients scaled by theta, [W/K] per node
	Hwi float64
	Hgu float64
	Hig float64

	// heat capacities per node, [J/K]
	Cws float64 // water + steel
	Ci  float64 // insulation + casing
	Cg  float64 // disturbed ground ring

	Dx float64 // [m]
	Dt float64 // [s]

	Water      Coefficients
	Ground     Coefficients
	Insulation Coefficients
}

// Coefficients of one field's update. For water A is the advection number
// and B the coupling to insulation; for ground A couples to insulation and
// B to the undisturbed soil; for insulation A couples to water and B to
// ground. C is the implicit normaliser.
type Coefficients struct {
	A float64
	B float64
	C float64
}

// ComputeNetworkParameters derives the thermal network of a buried pipe and
// the dimensionless coefficients of the solver. All validation of a run
// happens here.
func ComputeNetworkParameters(geom model.PipeGeometry, mats model.Materials, bc model.BoundaryConditions, disc model.Discretization) (*NetworkParameters, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if err := mats.Validate(); err != nil {
		return nil, err
	}
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	if err := disc.Validate(); err != nil {
		return nil, err
	}

	p := &NetworkParameters{
		Dx: disc.SpatialStep(bc.Length),
		Dt: disc.TimeStep,
	}
	ki, km, kg := mats.Insulation.Conductivity, mats.Casing.Conductivity, mats.Soil.Conductivity
	dw, ds, di, dm, dg := geom.Water, geom.Steel, geom.Insulation, geom.Casing, geom.Ground

	// 1. insulation: PUR annulus in series with the casing annulus
	p.Ri = math.Log(di/ds)/(2*math.Pi*ki) + math.Log(dm/di)/(2*math.Pi*km)

	// 2. soil
	p.H = geom.Depth + 0.0685*kg
	p.Rg = math.Log(4*p.H/dm) / (2 * math.Pi * kg)

	// 3. mutual resistances
	p.Rwi = math.Log((1+dm/ds)/2) / (2 * math.Pi * ki)
	x := 4 * p.H / (dm + dg)
	if x <= 1 {
		return nil, fmt.Errorf("%w: ground ring diameter %g too large for depth %g", model.ErrConfiguration, dg, geom.Depth)
	}
	p.Rgu = math.Log(x+math.Sqrt(x*x-1)) / (2 * math.Pi * kg)
	p.Rig = p.Ri + p.Rg - p.Rwi - p.Rgu

	// 4. neighbouring pipe
	p.Rh = math.Log(1+math.Pow(2*p.H/geom.Separation, 2)) / (4 * math.Pi * kg)

	for _, r := range []struct {
		name string
		v    float64
	}{
		{"insulation", p.Ri}, {"soil", p.Rg}, {"water-insulation", p.Rwi},
		{"ground-surroundings", p.Rgu}, {"insulation-ground", p.Rig}, {"pipe interaction", p.Rh},
	} {
		if !(r.v > 0) || math.IsInf(r.v, 0) {
			return nil, fmt.Errorf("%w: %s resistance %g is not positive", model.ErrConfiguration, r.name, r.v)
		}
	}

	// 5. asymmetry
	gamma, err := asymmetry(bc)
	if err != nil {
		return nil, err
	}
	p.Gamma = gamma

	// 6. correction factor
	rs := p.Ri + p.Rg
	if rs*rs-p.Rh*p.Rh <= 0 {
		return nil, fmt.Errorf("%w: pipe interaction resistance %g exceeds single pipe resistance %g", model.ErrConfiguration, p.Rh, rs)
	}
	p.Theta = rs * (rs - p.Gamma*p.Rh) / (rs*rs - p.Rh*p.Rh)

	// 7. scaled heat transfer coefficients
	p.Hwi = p.Dx * p.Theta / p.Rwi
	p.Hgu = p.Dx * p.Theta / p.Rgu
	p.Hig = p.Dx * p.Theta / p.Rig

	// 8. heat capacities, water column up to db and steel from db to ds
	db := geom.CapacityBore
	if db == 0 {
		db = dw
	}
	q := p.Dx * math.Pi / 4
	p.Cws = q * (db*db*material.VolumetricHeat(mats.Water) + (ds*ds-db*db)*material.VolumetricHeat(mats.Steel))
	p.Ci = q * ((di*di-ds*ds)*material.VolumetricHeat(mats.Insulation) + (dm*dm-di*di)*material.VolumetricHeat(mats.Casing))
	p.Cg = q * (dg*dg - dm*dm) * material.VolumetricHeat(mats.Soil)

	// 9. coefficients, insulation last since it eliminates water and ground
	dt := p.Dt
	p.Water.A = bc.MassFlow * mats.Water.SpecificHeat * dt / p.Cws
	p.Water.B = p.Hwi * dt / p.Cws
	p.Water.C = 1 + p.Water.B

	p.Ground.A = p.Hig * dt / p.Cg
	p.Ground.B = p.Hgu * dt / p.Cg
	p.Ground.C = 1 + p.Ground.A + p.Ground.B

	p.Insulation.A = p.Hwi * dt / p.Ci
	p.Insulation.B = p.Hig * dt / p.Ci
	p.Insulation.C = 1 + p.Insulation.A - p.Insulation.A*p.Water.B/p.Water.C +
		p.Insulation.B - p.Insulation.B*p.Ground.A/p.Ground.C

	if err := p.checkStability(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"Ri":    p.Ri,
		"Rg":    p.Rg,
		"Rwi":   p.Rwi,
		"Rgu":   p.Rgu,
		"Rig":   p.Rig,
		"Rh":    p.Rh,
		"gamma": p.Gamma,
		"theta": p.Theta,
		"dx":    p.Dx,
		"Aw":    p.Water.A,
	}).Debug("derived thermal network")
	return p, nil
}

func asymmetry(bc model.BoundaryConditions) (float64, error) {
	dTs := bc.SupplyTemperature - bc.GroundTemperature
	dTr := bc.ReturnTemperature - bc.GroundTemperature
	switch bc.Role {
	case model.Supply:
		return dTr / dTs, nil
	case model.Return:
		return dTs / dTr, nil
	}
	return 0, fmt.Errorf("%w: pipe role %q, want supply or return", model.ErrInvalidArgument, bc.Role)
}

// CourantNumber is the fraction of a node's water replaced by upstream water
// in one time step.
func (p *NetworkParameters) CourantNumber() float64 {
	return p.Water.A
}

// Every update is a convex combination of old values once its weights are
// non-negative. Only the water self-weight (1-Aw) can turn negative, so
// Aw <= 1 keeps all three recurrences bounded by their inputs.
func (p *NetworkParameters) checkStability() error {
	if aw := p.CourantNumber(); aw > 1 {
		return fmt.Errorf("%w: courant number %.4f exceeds 1, reduce the time step below %.4g s",
			model.ErrConfiguration, aw, p.Dt/aw)
	}
	for _, c := range []float64{p.Cws, p.Ci, p.Cg} {
		if !(c > 0) {
			return fmt.Errorf("%w: non-positive node heat capacity %g", model.ErrConfiguration, c)
		}
	}
	return nil
}
