package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dhpipe/calculator"
)

// SaveOutletPlot draws the outlet temperature over time. The format follows
// the file extension (png, svg, pdf).
func SaveOutletPlot(path string, res *calculator.Result) error {
	times, outlet := res.Field.Times(), res.Field.Outlet()
	pts := make(plotter.XYs, len(outlet))
	for i := range outlet {
		pts[i].X = times[i]
		pts[i].Y = outlet[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("DN%d series %d %s pipe, %.0f m",
		res.Config.Segment.NominalDiameter, int(res.Config.Segment.InsulationClass),
		res.Config.Boundary.Role, res.Config.Boundary.Length)
	p.X.Label.Text = "time [s]"
	p.Y.Label.Text = "pipe outlet temperature [°C]"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
