package calculator

import "context"

// Calculator is what Execute drives: step a run to completion and expose
// what it produced. Prepare returns the Solver implementation.
type Calculator interface {
	Run(ctx context.Context) error
	SetHub(hub *CalcHub)
	Parameters() *NetworkParameters
	Field() *TemperatureField
	Time() int
}

var _ Calculator = (*Solver)(nil)
