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
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// GaugeSeries is the time series recorded by one GeoClaw tide gauge.
type GaugeSeries struct {
	ID int

	T   []float64 // time [s]
	H   []float64 // water depth [m]
	Hu  []float64 // x momentum [m²/s]
	Hv  []float64 // y momentum [m²/s]
	Eta []float64 // surface elevation [m]
}

// ReadGauge reads the output of gauge id from a GeoClaw output
// directory (file gaugeNNNNN.txt: comment header lines starting with
// '#', then columns level, t, h, hu, hv, eta).
func ReadGauge(outdir string, id int) (*GaugeSeries, error) {
	fname := filepath.Join(outdir, fmt.Sprintf("gauge%05d.txt", id))
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("tsunami: reading gauge output: %v", err)
	}
	defer file.Close()

	g := &GaugeSeries{ID: id}
	scan := bufio.NewScanner(file)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, fmt.Errorf("tsunami: %s: malformed gauge line %q", fname, line)
		}
		vals := make([]float64, 6)
		for k := 0; k < 6; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, fmt.Errorf("tsunami: %s: %v", fname, err)
			}
			vals[k] = v
		}
		// column 0 is the AMR level the gauge value was taken from
		g.T = append(g.T, vals[1])
		g.H = append(g.H, vals[2])
		g.Hu = append(g.Hu, vals[3])
		g.Hv = append(g.Hv, vals[4])
		g.Eta = append(g.Eta, vals[5])
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("tsunami: %s: %v", fname, err)
	}
	if len(g.T) == 0 {
		return nil, fmt.Errorf("tsunami: %s: no gauge samples", fname)
	}
	return g, nil
}

// Speed returns the flow speed series [m/s] at the gauge, zero where
// the gauge is dry.
func (g *GaugeSeries) Speed() []float64 {
	s := make([]float64, len(g.T))
	for k := range g.T {
		if g.H[k] >= DryTolerance {
			s[k] = math.Hypot(g.Hu[k], g.Hv[k]) / g.H[k]
		}
	}
	return s
}

// ReadReference reads a benchmark reference series: a text file of
// two whitespace-separated columns (time, value) with '#' comment
// lines.
func ReadReference(fname string) (t, v []float64, err error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("tsunami: reading reference data: %v", err)
	}
	defer file.Close()
	scan := bufio.NewScanner(file)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("tsunami: %s: malformed reference line %q", fname, line)
		}
		tv, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("tsunami: %s: %v", fname, err)
		}
		vv, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("tsunami: %s: %v", fname, err)
		}
		t = append(t, tv)
		v = append(v, vv)
	}
	if err := scan.Err(); err != nil {
		return nil, nil, fmt.Errorf("tsunami: %s: %v", fname, err)
	}
	return t, v, nil
}

// GaugeStats summarizes the misfit between a modeled gauge series and a
// benchmark reference series.
type GaugeStats struct {
	N int // number of compared samples

	MaxAbsErr float64 // largest |model − observation|
	MeanErr   float64 // mean model − observation (bias)
	RMSErr    float64 // root mean square error

	// Linear fit of model against observation; a perfect model gives
	// slope 1, intercept 0, R² 1.
	Slope, Intercept, RSquared float64
}

// CompareGauge resamples the modeled surface elevation onto the
// observation times (piecewise linear in time) and computes misfit
// statistics. Observation times outside the modeled time range are
// ignored; it is an error if none remain.
func CompareGauge(g *GaugeSeries, tobs, vobs []float64) (*GaugeStats, error) {
	return CompareSeries(g.T, g.Eta, tobs, vobs)
}

// CompareSeries is CompareGauge for an arbitrary modeled series.
func CompareSeries(tmod, vmod, tobs, vobs []float64) (*GaugeStats, error) {
	if len(tobs) != len(vobs) {
		return nil, fmt.Errorf("tsunami: comparing gauge series: %d observation times but %d values",
			len(tobs), len(vobs))
	}
	tmod, vmod = dedupTimes(tmod, vmod)
	var pl interp.PiecewiseLinear
	if err := pl.Fit(tmod, vmod); err != nil {
		return nil, fmt.Errorf("tsunami: comparing gauge series: %v", err)
	}

	var errStats stats.Stats
	var fit stats.Regression
	var absErrs, sqErrs []float64
	for k, t := range tobs {
		if t < tmod[0] || t > tmod[len(tmod)-1] {
			continue
		}
		model := pl.Predict(t)
		diff := model - vobs[k]
		errStats.Update(diff)
		fit.Update(vobs[k], model)
		absErrs = append(absErrs, math.Abs(diff))
		sqErrs = append(sqErrs, diff*diff)
	}
	if len(absErrs) == 0 {
		return nil, fmt.Errorf("tsunami: comparing gauge series: no observation times within modeled range [%g, %g]",
			tmod[0], tmod[len(tmod)-1])
	}
	return &GaugeStats{
		N:         len(absErrs),
		MaxAbsErr: floats.Max(absErrs),
		MeanErr:   errStats.Mean(),
		RMSErr:    math.Sqrt(floats.Sum(sqErrs) / float64(len(sqErrs))),
		Slope:     fit.Slope(),
		Intercept: fit.Intercept(),
		RSquared:  fit.RSquared(),
	}, nil
}

// dedupTimes collapses samples recorded at a repeated time, keeping the
// last one: GeoClaw gauges can log the same time twice around a
// regridding step, and the resampling fit needs strictly increasing
// times.
func dedupTimes(t, v []float64) ([]float64, []float64) {
	outT := make([]float64, 0, len(t))
	outV := make([]float64, 0, len(v))
	for k := range t {
		if n := len(outT); n > 0 && t[k] == outT[n-1] {
			outV[n-1] = v[k]
			continue
		}
		outT = append(outT, t[k])
		outV = append(outV, v[k])
	}
	return outT, outV
}
