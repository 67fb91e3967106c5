/*
Copyright © 2023 the tsunami-benchmarks authors.
This file is part of tsunami-benchmarks.

tsunami-benchmarks is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tsunami-benchmarks is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tsunami-benchmarks.  If not, see <http://www.gnu.org/licenses/>.
*/

package tsunami

import (
	"fmt"
	"image/color"

	"github.com/ctessum/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// speedGrid adapts a frame's flow speed to the plotter heat map
// interface.
type speedGrid struct {
	f *Frame
}

func (g speedGrid) Dims() (c, r int)   { return g.f.Mx, g.f.My }
func (g speedGrid) Z(c, r int) float64 { return g.f.Speed(r, c) }
func (g speedGrid) X(c int) float64    { return g.f.X(c) }
func (g speedGrid) Y(r int) float64    { return g.f.Y(r) }

// FramePlot describes one rendered animation frame: the flow speed
// field with optional debris square outlines and a stationary obstacle.
type FramePlot struct {
	Frame *Frame

	// Outlines are debris square outlines drawn over the speed field.
	Outlines geom.MultiLineString

	// Obstacle, if non-nil, is drawn as a rectangle (the stationary
	// block of the debris benchmark).
	Obstacle *geom.Bounds

	// MaxSpeed saturates the color scale [m/s]; zero means 1.5, the
	// top of the benchmark's banded speed scale.
	MaxSpeed float64
}

// Save renders the frame to an image file (format chosen from the file
// extension, e.g. .png).
func (fp *FramePlot) Save(fname string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Speed at t = %.3f seconds", fp.Frame.T)
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"

	maxSpeed := fp.MaxSpeed
	if maxSpeed == 0 {
		maxSpeed = 1.5
	}
	hm := plotter.NewHeatMap(speedGrid{fp.Frame}, palette.Heat(12, 1))
	hm.Min, hm.Max = 0, maxSpeed
	p.Add(hm)

	if fp.Obstacle != nil {
		b := fp.Obstacle
		rect, err := line(geom.LineString{
			{X: b.Min.X, Y: b.Min.Y},
			{X: b.Max.X, Y: b.Min.Y},
			{X: b.Max.X, Y: b.Max.Y},
			{X: b.Min.X, Y: b.Max.Y},
			{X: b.Min.X, Y: b.Min.Y},
		}, color.RGBA{G: 160, A: 255}, 1)
		if err != nil {
			return err
		}
		p.Add(rect)
	}
	for _, outline := range fp.Outlines {
		l, err := line(outline, color.Black, 2)
		if err != nil {
			return err
		}
		p.Add(l)
	}

	ext := fp.Frame.Extent()
	p.X.Min, p.X.Max = ext.Min.X, ext.Max.X
	p.Y.Min, p.Y.Max = ext.Min.Y, ext.Max.Y

	if err := p.Save(8*vg.Inch, 7*vg.Inch, fname); err != nil {
		return fmt.Errorf("tsunami: saving frame plot: %v", err)
	}
	return nil
}

func line(ls geom.LineString, c color.Color, width vg.Length) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(ls))
	for k, pt := range ls {
		xys[k].X = pt.X
		xys[k].Y = pt.Y
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("tsunami: building line plot: %v", err)
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	return l, nil
}

// PlotGaugeComparison plots a modeled gauge series against a benchmark
// reference series and saves the result to fname.
func PlotGaugeComparison(title string, tmod, vmod, tobs, vobs []float64, fname string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "surface elevation [m]"

	model := make(plotter.XYs, len(tmod))
	for k := range tmod {
		model[k].X, model[k].Y = tmod[k], vmod[k]
	}
	obs := make(plotter.XYs, len(tobs))
	for k := range tobs {
		obs[k].X, obs[k].Y = tobs[k], vobs[k]
	}
	lm, err := plotter.NewLine(model)
	if err != nil {
		return fmt.Errorf("tsunami: building gauge plot: %v", err)
	}
	lm.LineStyle.Color = color.RGBA{B: 255, A: 255}
	lo, err := plotter.NewLine(obs)
	if err != nil {
		return fmt.Errorf("tsunami: building gauge plot: %v", err)
	}
	lo.LineStyle.Color = color.RGBA{R: 255, A: 255}
	lo.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(lm, lo)
	p.Legend.Add("GeoClaw", lm)
	p.Legend.Add("observed", lo)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, fname); err != nil {
		return fmt.Errorf("tsunami: saving gauge plot: %v", err)
	}
	return nil
}
