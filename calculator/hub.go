package calculator

// Progress is pushed to the hub while a run is stepping.
type Progress struct {
	Step   int     `json:"step"`
	Steps  int     `json:"steps"`
	Time   float64 `json:"time"`   // [s]
	Outlet float64 `json:"outlet"` // [°C]
}

// CalcHub carries progress of a running simulation to whoever watches it,
// typically the websocket hub of one client.
type CalcHub struct {
	PushEvery int
	Progress  chan Progress
}

func NewCalcHub(pushEvery int) *CalcHub {
	if pushEvery < 1 {
		pushEvery = 1
	}
	return &CalcHub{
		PushEvery: pushEvery,
		Progress:  make(chan Progress, 16),
	}
}

// report never blocks the solver; a slow reader misses intermediate points
// but always gets the final one through Result.
func (ch *CalcHub) report(s *Solver) {
	if s.t%ch.PushEvery != 0 && !s.Done() {
		return
	}
	p := Progress{
		Step:   s.t,
		Steps:  s.steps,
		Time:   float64(s.t) * s.p.Dt,
		Outlet: s.prev.water[s.nodes-1],
	}
	select {
	case ch.Progress <- p:
	default:
	}
}

// Close signals that no more progress will be pushed.
func (ch *CalcHub) Close() {
	close(ch.Progress)
}
