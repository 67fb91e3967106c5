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
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

// WritePaths writes the computed debris paths to w as a NetCDF (classic
// format) file with dimensions time and particle. Positions and
// velocities are stored as float32, times as float64. All histories must
// cover the same output times, which is guaranteed for histories
// produced by a single DebrisModel run.
func WritePaths(w *os.File, histories map[int]*PathHistory) error {
	if len(histories) == 0 {
		return fmt.Errorf("tsunami: writing debris paths: no histories")
	}
	ids := make([]int, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	nt := histories[ids[0]].Len()
	for _, id := range ids {
		if histories[id].Len() != nt {
			return fmt.Errorf("tsunami: writing debris paths: particle %d has %d samples, want %d",
				id, histories[id].Len(), nt)
		}
	}

	h := cdf.NewHeader([]string{"time", "particle"}, []int{nt, len(ids)})
	h.AddAttribute("", "comment", "debris particle paths computed from GeoClaw fgout frames")
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "s")
	h.AddVariable("particle", []string{"particle"}, []int32{0})
	h.AddAttribute("particle", "description", "particle id")
	for _, name := range []string{"x", "y", "u", "v"} {
		h.AddVariable(name, []string{"time", "particle"}, []float32{0})
	}
	h.AddAttribute("x", "units", "m")
	h.AddAttribute("y", "units", "m")
	h.AddAttribute("u", "units", "m/s")
	h.AddAttribute("v", "units", "m/s")
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("tsunami: writing debris paths: %v", err)
	}

	times := make([]float64, nt)
	for k, s := range histories[ids[0]].Samples() {
		times[k] = s.T
	}
	if err := writeVar(f, "time", times); err != nil {
		return err
	}
	ids32 := make([]int32, len(ids))
	for k, id := range ids {
		ids32[k] = int32(id)
	}
	if err := writeVar(f, "particle", ids32); err != nil {
		return err
	}

	x := make([]float32, nt*len(ids))
	y := make([]float32, nt*len(ids))
	u := make([]float32, nt*len(ids))
	v := make([]float32, nt*len(ids))
	for pi, id := range ids {
		for k, s := range histories[id].Samples() {
			x[k*len(ids)+pi] = float32(s.X)
			y[k*len(ids)+pi] = float32(s.Y)
			u[k*len(ids)+pi] = float32(s.U)
			v[k*len(ids)+pi] = float32(s.V)
		}
	}
	for name, data := range map[string][]float32{"x": x, "y": y, "u": u, "v": v} {
		if err := writeVar(f, name, data); err != nil {
			return err
		}
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("tsunami: writing debris paths: %v", err)
	}
	return nil
}

func writeVar(f *cdf.File, name string, data interface{}) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("tsunami: writing variable %s to netcdf file: %v", name, err)
	}
	return nil
}

// LoadPaths reads debris paths from a NetCDF file written by WritePaths.
func LoadPaths(rw cdf.ReaderWriterAt) (map[int]*PathHistory, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("tsunami: loading debris paths: %v", err)
	}
	times, err := readFloat64Var(f, "time")
	if err != nil {
		return nil, err
	}
	r := f.Reader("particle", nil, nil)
	idBuf := r.Zero(-1)
	if _, err := r.Read(idBuf); err != nil {
		return nil, fmt.Errorf("tsunami: loading debris paths: reading particle ids: %v", err)
	}
	ids := idBuf.([]int32)

	fields := make(map[string][]float64)
	for _, name := range []string{"x", "y", "u", "v"} {
		v, err := readFloat32Var(f, name)
		if err != nil {
			return nil, err
		}
		if len(v) != len(times)*len(ids) {
			return nil, fmt.Errorf("tsunami: loading debris paths: variable %s has %d values, want %d",
				name, len(v), len(times)*len(ids))
		}
		fields[name] = v
	}

	histories := make(map[int]*PathHistory)
	for pi, id := range ids {
		h := new(PathHistory)
		for k, t := range times {
			err := h.append(PathSample{
				T: t,
				X: fields["x"][k*len(ids)+pi],
				Y: fields["y"][k*len(ids)+pi],
				U: fields["u"][k*len(ids)+pi],
				V: fields["v"][k*len(ids)+pi],
			})
			if err != nil {
				return nil, err
			}
		}
		histories[int(id)] = h
	}
	return histories, nil
}

func readFloat64Var(f *cdf.File, name string) ([]float64, error) {
	r := f.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("tsunami: loading debris paths: reading %s: %v", name, err)
	}
	v, ok := buf.([]float64)
	if !ok {
		return nil, fmt.Errorf("tsunami: loading debris paths: variable %s is not float64", name)
	}
	return v, nil
}

func readFloat32Var(f *cdf.File, name string) ([]float64, error) {
	r := f.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("tsunami: loading debris paths: reading %s: %v", name, err)
	}
	v, ok := buf.([]float32)
	if !ok {
		return nil, fmt.Errorf("tsunami: loading debris paths: variable %s is not float32", name)
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out, nil
}

// SquareOutlines returns the closed outline of each debris square at
// time t, built from the recorded corner paths. Squares whose corner
// histories have no sample at t are skipped (the miss is logged by the
// history lookup).
func SquareOutlines(histories map[int]*PathHistory, squares [][4]int, t float64) geom.MultiLineString {
	var out geom.MultiLineString
	for _, sq := range squares {
		line := make(geom.LineString, 0, 5)
		complete := true
		for _, id := range sq {
			h, ok := histories[id]
			if !ok {
				complete = false
				break
			}
			s, ok := h.At(t)
			if !ok {
				complete = false
				break
			}
			line = append(line, geom.Point{X: s.X, Y: s.Y})
		}
		if !complete {
			continue
		}
		line = append(line, line[0])
		out = append(out, line)
	}
	return out
}

// SquaresGeoJSON encodes the debris square outlines at time t as a
// GeoJSON MultiLineString.
func SquaresGeoJSON(histories map[int]*PathHistory, squares [][4]int, t float64) ([]byte, error) {
	b, err := geojson.Encode(SquareOutlines(histories, squares, t))
	if err != nil {
		return nil, fmt.Errorf("tsunami: encoding square outlines: %v", err)
	}
	return b, nil
}
