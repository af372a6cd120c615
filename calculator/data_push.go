package calculator

import (
	"gonum.org/v1/gonum/floats"
)

// Summary condenses the outlet series of a finished run.
type Summary struct {
	Steps    int     `json:"steps"`
	Time     float64 `json:"time"`      // [s] simulated time
	Outlet   float64 `json:"outlet"`    // [°C] at the last step
	Min      float64 `json:"min"`       // [°C]
	Max      float64 `json:"max"`       // [°C]
	Drift    float64 `json:"drift"`     // [K/s] outlet change over the last step
	HeatLoss float64 `json:"heat_loss"` // [W] m cp (T_inlet - T_outlet) at the last step
}

func (r *Result) Summary() Summary {
	out := r.Field.Outlet()
	n := len(out) - 1
	s := Summary{
		Steps:  n,
		Time:   float64(n) * r.Field.TimeStep(),
		Outlet: out[n],
		Min:    floats.Min(out),
		Max:    floats.Max(out),
	}
	if n > 0 {
		s.Drift = (out[n] - out[n-1]) / r.Field.TimeStep()
	}
	b := r.Config.Boundary
	s.HeatLoss = b.MassFlow * r.Config.Materials.Water.SpecificHeat * (b.InletTemperature - s.Outlet)
	return s
}

// PushData is the payload of a "result" message.
type PushData struct {
	Summary Summary   `json:"summary"`
	Times   []float64 `json:"times"`
	Outlet  []float64 `json:"outlet"`
	Stride  int       `json:"stride"`
	Gamma   float64   `json:"gamma"`
	Theta   float64   `json:"theta"`
	Courant float64   `json:"courant"`
}

// BuildPushData samples the outlet series down to at most maxPoints so a
// long run still fits one websocket frame. The last point is always kept.
func (r *Result) BuildPushData(maxPoints int) PushData {
	times, outlet := r.Field.Times(), r.Field.Outlet()
	stride := 1
	if maxPoints > 1 && len(outlet) > maxPoints {
		stride = (len(outlet) + maxPoints - 2) / (maxPoints - 1)
	}
	d := PushData{
		Summary: r.Summary(),
		Stride:  stride,
		Gamma:   r.Parameters.Gamma,
		Theta:   r.Parameters.Theta,
		Courant: r.Parameters.CourantNumber(),
	}
	last := len(outlet) - 1
	for i := 0; i <= last; i += stride {
		d.Times = append(d.Times, times[i])
		d.Outlet = append(d.Outlet, outlet[i])
	}
	if last%stride != 0 {
		d.Times = append(d.Times, times[last])
		d.Outlet = append(d.Outlet, outlet[last])
	}
	return d
}
