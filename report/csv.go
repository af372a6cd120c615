package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"dhpipe/calculator"
)

type OutletRow struct {
	Time   float64 `csv:"time_s"`
	Outlet float64 `csv:"outlet_c"`
}

type ProfileRow struct {
	Node       int     `csv:"node"`
	Position   float64 `csv:"position_m"`
	Water      float64 `csv:"water_c"`
	Insulation float64 `csv:"insulation_c"`
	Ground     float64 `csv:"ground_c"`
}

// OutletRows pairs every time index with the outlet water temperature.
func OutletRows(f *calculator.TemperatureField) []*OutletRow {
	times, outlet := f.Times(), f.Outlet()
	rows := make([]*OutletRow, len(outlet))
	for i := range outlet {
		rows[i] = &OutletRow{Time: times[i], Outlet: outlet[i]}
	}
	return rows
}

// ProfileRows is the state along the pipe at time index t.
func ProfileRows(f *calculator.TemperatureField, length float64, t int) ([]*ProfileRow, error) {
	if t < 0 || t > f.Steps() {
		return nil, fmt.Errorf("time index %d outside 0..%d", t, f.Steps())
	}
	water, insulation, ground := f.Profile(t)
	dx := length / float64(f.Nodes()-1)
	rows := make([]*ProfileRow, len(water))
	for i := range water {
		rows[i] = &ProfileRow{
			Node:       i,
			Position:   float64(i) * dx,
			Water:      water[i],
			Insulation: insulation[i],
			Ground:     ground[i],
		}
	}
	return rows, nil
}

func WriteOutletCSV(w io.Writer, f *calculator.TemperatureField) error {
	return gocsv.Marshal(OutletRows(f), w)
}

func WriteProfileCSV(w io.Writer, f *calculator.TemperatureField, length float64, t int) error {
	rows, err := ProfileRows(f, length, t)
	if err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}
