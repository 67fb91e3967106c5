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

// Package rundata assembles the run-time parameters of a GeoClaw
// simulation and writes them out as the .data files the Fortran solver
// reads at startup. It covers the parameter surface the NTHMP benchmark
// runs use; solver features beyond that are left at their .data-file
// defaults by simply not emitting them.
package rundata

import (
	"fmt"
	"os"
	"strings"
)

// Output styles for solver result frames.
const (
	// OutputFixedCount writes NumOutputTimes frames equally spaced up
	// to TFinal.
	OutputFixedCount = 1
	// OutputTimesList writes one frame at each time in OutputTimes.
	OutputTimesList = 2
	// OutputStepInterval writes every OutputStepInterval-th step for
	// TotalSteps steps.
	OutputStepInterval = 3
)

// Boundary condition choices at domain edges.
const (
	BCUser     = 0
	BCExtrap   = 1
	BCPeriodic = 2
	BCWall     = 3
)

// ClawRunData holds the parameters of one GeoClaw run: the counterpart
// of the rundata object assembled by a setrun script.
type ClawRunData struct {
	// Spatial domain.
	NumDim   int
	Lower    [2]float64
	Upper    [2]float64
	NumCells [2]int

	// System size.
	NumEqn    int
	NumAux    int
	CapaIndex int

	T0 float64

	Restart     bool
	RestartFile string

	// Output control.
	OutputStyle        int
	NumOutputTimes     int
	TFinal             float64
	OutputT0           bool
	OutputTimes        []float64
	OutputStepInterval int
	TotalSteps         int
	OutputFormat       int // 1 = ascii, 3 = binary

	// Time stepping.
	DtVariable bool
	DtInitial  float64
	DtMax      float64
	CFLDesired float64
	CFLMax     float64
	StepsMax   int

	// Method parameters.
	Order           int
	TransverseWaves int
	NumWaves        int
	LimiterMethod   []int
	SourceSplit     int
	NumGhost        int

	// Boundary conditions at the four domain edges.
	BCLower [2]int
	BCUpper [2]int

	// Adaptive refinement.
	AMRLevels         int
	RefinementRatiosX []int
	RefinementRatiosY []int
	RefinementRatiosT []int

	Geo GeoData

	TopoFiles  []TopoFile
	Gauges     []Gauge
	Regions    []Region
	FGoutGrids []FGoutSpec
}

// GeoData holds the GeoClaw-specific physics parameters written to
// geoclaw.data.
type GeoData struct {
	Gravity            float64
	CoordinateSystem   int // 1 = cartesian meters, 2 = lat-lon degrees
	CoriolisForcing    bool
	SeaLevel           float64
	DryTolerance       float64
	FrictionForcing    bool
	ManningCoefficient float64
	FrictionDepth      float64
	WaveTolerance      float64
	VariableDtRefine   bool
	SpeedLimit         float64
}

// TopoFile references one topography input file.
type TopoFile struct {
	Path     string
	TopoType int
}

// Gauge is one tide gauge: output is recorded at (X, Y) for T1 <= t <= T2.
type Gauge struct {
	ID     int
	X, Y   float64
	T1, T2 float64
}

// Region forces a range of AMR levels over a space-time box.
type Region struct {
	MinLevel, MaxLevel int
	T1, T2             float64
	X1, X2, Y1, Y2     float64
}

// FGoutSpec describes one fixed-resolution output grid: NumOut frames
// equally spaced in [Tstart, Tend] on an Nx × Ny grid.
type FGoutSpec struct {
	Num          int
	Tstart, Tend float64
	NumOut       int
	X1, X2       float64
	Y1, Y2       float64
	Nx, Ny       int
	OutputFormat int // 1 = ascii, 2 = binary64, 3 = binary32
}

// NewClawRunData returns run data with the defaults shared by the
// benchmark problems; callers override domain geometry, output control
// and input files.
func NewClawRunData() *ClawRunData {
	return &ClawRunData{
		NumDim:    2,
		NumEqn:    3,
		NumAux:    3,
		CapaIndex: 0,

		OutputStyle:    OutputFixedCount,
		NumOutputTimes: 1,
		OutputT0:       true,
		OutputFormat:   1,

		DtVariable: true,
		DtInitial:  0.016,
		DtMax:      1.e9,
		CFLDesired: 0.75,
		CFLMax:     1.0,
		StepsMax:   50000,

		Order:           2,
		TransverseWaves: 2,
		NumWaves:        3,
		LimiterMethod:   []int{4, 4, 4},
		SourceSplit:     1,
		NumGhost:        2,

		BCLower: [2]int{BCExtrap, BCExtrap},
		BCUpper: [2]int{BCExtrap, BCExtrap},

		AMRLevels:         1,
		RefinementRatiosX: []int{1},
		RefinementRatiosY: []int{1},
		RefinementRatiosT: []int{1},

		Geo: GeoData{
			Gravity:            9.81,
			CoordinateSystem:   1,
			SeaLevel:           0,
			DryTolerance:       1.e-3,
			FrictionForcing:    true,
			ManningCoefficient: 0.025,
			FrictionDepth:      1.e6,
			WaveTolerance:      1.e-2,
			VariableDtRefine:   true,
			SpeedLimit:         20,
		},
	}
}

// Validate checks internal consistency before writing.
func (rd *ClawRunData) Validate() error {
	if rd.NumDim != 2 {
		return fmt.Errorf("rundata: num_dim must be 2, have %d", rd.NumDim)
	}
	for d := 0; d < 2; d++ {
		if rd.Upper[d] <= rd.Lower[d] {
			return fmt.Errorf("rundata: empty domain in dimension %d", d)
		}
		if rd.NumCells[d] <= 0 {
			return fmt.Errorf("rundata: non-positive cell count in dimension %d", d)
		}
	}
	if rd.OutputStyle == OutputTimesList && len(rd.OutputTimes) == 0 {
		return fmt.Errorf("rundata: output style %d needs a list of output times", OutputTimesList)
	}
	if rd.AMRLevels > 1 {
		for _, r := range [][]int{rd.RefinementRatiosX, rd.RefinementRatiosY, rd.RefinementRatiosT} {
			if len(r) < rd.AMRLevels-1 {
				return fmt.Errorf("rundata: need %d refinement ratios for %d AMR levels",
					rd.AMRLevels-1, rd.AMRLevels)
			}
		}
	}
	for _, g := range rd.Gauges {
		if g.T2 <= g.T1 {
			return fmt.Errorf("rundata: gauge %d has empty time window", g.ID)
		}
	}
	return nil
}

// expandEnvStrict expands $VAR references in s, failing fast if any
// referenced variable is unset: a topo path built from an unset $CLAW
// must not be written silently into a .data file.
func expandEnvStrict(s string) (string, error) {
	var missing []string
	out := os.Expand(s, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("rundata: environment variable %s must be set (referenced by %q)",
			strings.Join(missing, ", "), s)
	}
	return out, nil
}
