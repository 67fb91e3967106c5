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

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// dataFile accumulates Clawpack "value =: name" lines. Errors stick to
// the writer so each put call doesn't need its own check.
type dataFile struct {
	w   *bufio.Writer
	err error
}

// put writes one parameter line: the formatted values, then the
// "=: name" tag the Fortran reader keys on.
func (d *dataFile) put(name string, vals ...interface{}) {
	if d.err != nil {
		return
	}
	strs := make([]string, len(vals))
	for k, v := range vals {
		strs[k] = formatValue(v)
	}
	_, d.err = fmt.Fprintf(d.w, "%-26s =: %s\n", strings.Join(strs, " "), name)
}

// comment writes a '#' comment line.
func (d *dataFile) comment(text string) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "# %s\n", text)
}

// blank writes an empty line.
func (d *dataFile) blank() {
	if d.err != nil {
		return
	}
	_, d.err = d.w.WriteString("\n")
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "T"
		}
		return "F"
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'e', 6, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// writeDataFile creates fname and calls body to fill it.
func writeDataFile(fname string, body func(*dataFile)) error {
	file, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("rundata: %v", err)
	}
	d := &dataFile{w: bufio.NewWriter(file)}
	d.comment(filepath.Base(fname))
	d.comment("written by tsunami-benchmarks; read by the GeoClaw solver at startup")
	d.blank()
	body(d)
	if d.err == nil {
		d.err = d.w.Flush()
	}
	if cerr := file.Close(); d.err == nil {
		d.err = cerr
	}
	if d.err != nil {
		return fmt.Errorf("rundata: writing %s: %v", fname, d.err)
	}
	return nil
}

// WriteAll validates rd and writes every .data file the solver reads
// into dir, creating it if needed.
func (rd *ClawRunData) WriteAll(dir string) error {
	if err := rd.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("rundata: %v", err)
	}
	writers := []struct {
		name string
		fn   func(string) error
	}{
		{"claw.data", rd.writeClaw},
		{"geoclaw.data", rd.writeGeo},
		{"topo.data", rd.writeTopo},
		{"gauges.data", rd.writeGauges},
		{"regions.data", rd.writeRegions},
		{"fgout_grids.data", rd.writeFGout},
	}
	for _, w := range writers {
		if err := w.fn(filepath.Join(dir, w.name)); err != nil {
			return err
		}
	}
	return nil
}

func (rd *ClawRunData) writeClaw(fname string) error {
	return writeDataFile(fname, func(d *dataFile) {
		d.put("num_dim", rd.NumDim)
		d.put("lower", rd.Lower[0], rd.Lower[1])
		d.put("upper", rd.Upper[0], rd.Upper[1])
		d.put("num_cells", rd.NumCells[0], rd.NumCells[1])
		d.put("num_eqn", rd.NumEqn)
		d.put("num_aux", rd.NumAux)
		d.put("capa_index", rd.CapaIndex)
		d.put("t0", rd.T0)
		d.blank()
		d.put("restart", rd.Restart)
		d.put("restart_file", rd.RestartFile)
		d.blank()
		d.put("output_style", rd.OutputStyle)
		switch rd.OutputStyle {
		case OutputFixedCount:
			d.put("num_output_times", rd.NumOutputTimes)
			d.put("tfinal", rd.TFinal)
			d.put("output_t0", rd.OutputT0)
		case OutputTimesList:
			d.put("num_output_times", len(rd.OutputTimes))
			vals := make([]interface{}, len(rd.OutputTimes))
			for k, t := range rd.OutputTimes {
				vals[k] = t
			}
			d.put("output_times", vals...)
		case OutputStepInterval:
			d.put("output_step_interval", rd.OutputStepInterval)
			d.put("total_steps", rd.TotalSteps)
			d.put("output_t0", rd.OutputT0)
		}
		d.put("output_format", rd.OutputFormat)
		d.blank()
		d.put("dt_variable", rd.DtVariable)
		d.put("dt_initial", rd.DtInitial)
		d.put("dt_max", rd.DtMax)
		d.put("cfl_desired", rd.CFLDesired)
		d.put("cfl_max", rd.CFLMax)
		d.put("steps_max", rd.StepsMax)
		d.blank()
		d.put("order", rd.Order)
		d.put("transverse_waves", rd.TransverseWaves)
		d.put("num_waves", rd.NumWaves)
		lims := make([]interface{}, len(rd.LimiterMethod))
		for k, l := range rd.LimiterMethod {
			lims[k] = l
		}
		d.put("limiter", lims...)
		d.put("source_split", rd.SourceSplit)
		d.put("num_ghost", rd.NumGhost)
		d.blank()
		d.put("bc_lower", rd.BCLower[0], rd.BCLower[1])
		d.put("bc_upper", rd.BCUpper[0], rd.BCUpper[1])
		d.blank()
		d.put("amr_levels_max", rd.AMRLevels)
		if rd.AMRLevels > 1 {
			d.put("refinement_ratios_x", intVals(rd.RefinementRatiosX[:rd.AMRLevels-1])...)
			d.put("refinement_ratios_y", intVals(rd.RefinementRatiosY[:rd.AMRLevels-1])...)
			d.put("refinement_ratios_t", intVals(rd.RefinementRatiosT[:rd.AMRLevels-1])...)
		}
	})
}

func intVals(xs []int) []interface{} {
	vals := make([]interface{}, len(xs))
	for k, x := range xs {
		vals[k] = x
	}
	return vals
}

func (rd *ClawRunData) writeGeo(fname string) error {
	g := rd.Geo
	return writeDataFile(fname, func(d *dataFile) {
		d.put("gravity", g.Gravity)
		d.put("coordinate_system", g.CoordinateSystem)
		d.put("coriolis_forcing", g.CoriolisForcing)
		d.put("sea_level", g.SeaLevel)
		d.put("dry_tolerance", g.DryTolerance)
		d.put("friction_forcing", g.FrictionForcing)
		d.put("manning_coefficient", g.ManningCoefficient)
		d.put("friction_depth", g.FrictionDepth)
		d.put("wave_tolerance", g.WaveTolerance)
		d.put("variable_dt_refinement_ratios", g.VariableDtRefine)
		d.put("speed_limit", g.SpeedLimit)
	})
}

func (rd *ClawRunData) writeTopo(fname string) error {
	// Expand paths first so a missing environment variable aborts the
	// whole write instead of leaving a half-written file behind.
	paths := make([]string, len(rd.TopoFiles))
	for k, tf := range rd.TopoFiles {
		p, err := expandEnvStrict(tf.Path)
		if err != nil {
			return err
		}
		paths[k] = p
	}
	return writeDataFile(fname, func(d *dataFile) {
		d.put("ntopofiles", len(rd.TopoFiles))
		d.blank()
		for k, tf := range rd.TopoFiles {
			d.put("topofile", fmt.Sprintf("'%s'", paths[k]), tf.TopoType)
		}
	})
}

func (rd *ClawRunData) writeGauges(fname string) error {
	return writeDataFile(fname, func(d *dataFile) {
		d.put("ngauges", len(rd.Gauges))
		d.blank()
		for _, g := range rd.Gauges {
			d.put("gauge", g.ID, g.X, g.Y, g.T1, g.T2)
		}
	})
}

func (rd *ClawRunData) writeRegions(fname string) error {
	return writeDataFile(fname, func(d *dataFile) {
		d.put("nregions", len(rd.Regions))
		d.blank()
		for _, r := range rd.Regions {
			d.put("region", r.MinLevel, r.MaxLevel, r.T1, r.T2, r.X1, r.X2, r.Y1, r.Y2)
		}
	})
}

func (rd *ClawRunData) writeFGout(fname string) error {
	return writeDataFile(fname, func(d *dataFile) {
		d.put("num_fgout_grids", len(rd.FGoutGrids))
		d.blank()
		for _, fg := range rd.FGoutGrids {
			d.put("fgno", fg.Num)
			d.put("tstart", fg.Tstart)
			d.put("tend", fg.Tend)
			d.put("nout", fg.NumOut)
			d.put("x1, x2", fg.X1, fg.X2)
			d.put("y1, y2", fg.Y1, fg.Y2)
			d.put("nx, ny", fg.Nx, fg.Ny)
			d.put("output_format", fg.OutputFormat)
			d.blank()
		}
	})
}
