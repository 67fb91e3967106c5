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

package rundata

import "fmt"

// MonaiValley returns the run parameters for the Monai Valley wave-tank
// benchmark (NTHMP currents workshop): a 5.488 m × 3.402 m tank sampled
// on a 423 × 243 grid, driven by an incident wave from the left
// boundary, with output every half second for 50 seconds.
func MonaiValley() *ClawRunData {
	rd := NewClawRunData()

	rd.Lower = [2]float64{0, 0}
	rd.Upper = [2]float64{5.488, 3.402}
	rd.NumCells = [2]int{423, 243}

	rd.OutputStyle = OutputTimesList
	rd.OutputTimes = linspace(0, 50, 100)

	rd.DtInitial = 0.016
	rd.BCLower = [2]int{BCUser, BCWall} // incident wave enters at the left edge
	rd.BCUpper = [2]int{BCExtrap, BCWall}

	rd.AMRLevels = 3
	rd.RefinementRatiosX = []int{2, 2}
	rd.RefinementRatiosY = []int{2, 2}
	rd.RefinementRatiosT = []int{2, 2}

	rd.Geo.ManningCoefficient = 0.01 // smooth tank bottom

	rd.TopoFiles = []TopoFile{
		{Path: "$CLAW/geoclaw/scratch/MonaiValley_Bathymetry.tt2", TopoType: 2},
	}
	// Gauge 0 near the wavemaker plus channels 5, 7 and 9 of the tank
	// experiment.
	rd.Gauges = []Gauge{
		{ID: 0, X: 0.2, Y: 2.7, T1: 0, T2: 1.e9},
		{ID: 5, X: 4.521, Y: 1.196, T1: 0, T2: 1.e9},
		{ID: 7, X: 4.521, Y: 1.696, T1: 0, T2: 1.e9},
		{ID: 9, X: 4.521, Y: 2.196, T1: 0, T2: 1.e9},
	}
	rd.Regions = []Region{
		{MinLevel: 1, MaxLevel: 3, T1: 0, T2: 1.e9, X1: 3.5, X2: 5.488, Y1: 1.0, Y2: 2.8},
	}
	return rd
}

// DebrisBM1 returns the run parameters for the debris-transport
// benchmark BM1: a long wave flume with a stationary block, with a
// fixed-resolution fgout grid over the debris staging area feeding the
// debris path integrator.
func DebrisBM1() *ClawRunData {
	rd := NewClawRunData()

	rd.Lower = [2]float64{0, -3}
	rd.Upper = [2]float64{43.75, 3}
	rd.NumCells = [2]int{700, 96}

	rd.OutputStyle = OutputFixedCount
	rd.NumOutputTimes = 40
	rd.TFinal = 40
	rd.OutputFormat = 3 // binary

	rd.BCLower = [2]int{BCUser, BCWall} // piston wavemaker at the left edge
	rd.BCUpper = [2]int{BCWall, BCWall}

	rd.AMRLevels = 2
	rd.RefinementRatiosX = []int{4}
	rd.RefinementRatiosY = []int{4}
	rd.RefinementRatiosT = []int{4}

	rd.Geo.ManningCoefficient = 0.01

	rd.TopoFiles = []TopoFile{
		{Path: "$CLAW/geoclaw/scratch/BM1_flume.tt3", TopoType: 3},
	}
	rd.FGoutGrids = []FGoutSpec{
		{
			Num:    1,
			Tstart: 0, Tend: 40, NumOut: 41,
			X1: 34, X2: 43.75,
			Y1: -3, Y2: 3,
			Nx: 390, Ny: 240,
			OutputFormat: 3, // binary32
		},
	}
	rd.Regions = []Region{
		{MinLevel: 2, MaxLevel: 2, T1: 0, T2: 1.e9, X1: 34, X2: 43.75, Y1: -3, Y2: 3},
	}
	return rd
}

// Benchmark returns the preset run data with the given name.
func Benchmark(name string) (*ClawRunData, error) {
	switch name {
	case "monai":
		return MonaiValley(), nil
	case "bm1":
		return DebrisBM1(), nil
	}
	return nil, fmt.Errorf("rundata: unknown benchmark %q (want monai or bm1)", name)
}

// linspace returns n points evenly spaced over [a, b] inclusive.
func linspace(a, b float64, n int) []float64 {
	if n == 1 {
		return []float64{a}
	}
	out := make([]float64, n)
	d := (b - a) / float64(n-1)
	for k := range out {
		out[k] = a + float64(k)*d
	}
	return out
}
