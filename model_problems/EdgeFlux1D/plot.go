package EdgeFlux1D

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot describes one profile plot.
type Plot struct {
	Name, Title, YLabel string
	X, Y                []float64
	YMin, YMax          *float64
}

// Plots lists the n, T and Z profiles followed by the requested aux variables.
func (o *Output) Plots() (plots []Plot) {
	var (
		s, r, _ = o.Last()
	)
	for _, p := range []struct {
		name, label string
		y           []float64
	}{
		{"density", "n", s.N.Values},
		{"temperature", "T", s.T.Values},
		{"Z", "Z", s.Z.Values},
	} {
		plots = append(plots, Plot{Name: p.name, Title: o.Opts.PlotTitle, YLabel: p.label,
			X: s.X, Y: p.y, YMax: o.Opts.PlotYMax})
	}
	if r == nil {
		return
	}
	for i, name := range o.Opts.AuxVars {
		y, ok := r.Lookup(name)
		if !ok {
			continue
		}
		p := Plot{Name: name, Title: name, YLabel: name, X: s.X, Y: y}
		if i < len(o.Opts.AuxTitles) && o.Opts.AuxTitles[i] != "" {
			p.Title = o.Opts.AuxTitles[i]
		}
		if i < len(o.Opts.AuxYMin) {
			p.YMin = o.Opts.AuxYMin[i]
		}
		if i < len(o.Opts.AuxYMax) {
			p.YMax = o.Opts.AuxYMax[i]
		}
		plots = append(plots, p)
	}
	return
}

// SavePlots writes every plot of the last observed step as a PNG.
func (o *Output) SavePlots() (files []string, err error) {
	if !o.Opts.SavePlots {
		return
	}
	for _, pl := range o.Plots() {
		name := filepath.Join(o.Opts.SaveDirectory, fmt.Sprintf("%s_step_%06d.png", pl.Name, o.last.Step))
		if err = pl.Save(name); err != nil {
			return
		}
		files = append(files, name)
	}
	return
}

func (pl Plot) Save(filename string) (err error) {
	var (
		line *plotter.Line
		pts  = make(plotter.XYs, len(pl.X))
	)
	p := plot.New()
	p.Title.Text = pl.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = pl.YLabel
	for i := range pts {
		pts[i].X, pts[i].Y = pl.X[i], pl.Y[i]
	}
	if line, err = plotter.NewLine(pts); err != nil {
		return
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line, plotter.NewGrid())
	if pl.YMin != nil {
		p.Y.Min = *pl.YMin
	}
	if pl.YMax != nil {
		p.Y.Max = *pl.YMax
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}
