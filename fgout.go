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

// Package tsunami post-processes GeoClaw shallow-water solver output for
// the NTHMP benchmark problems: it reads fixed-grid output frames, advects
// tethered debris particles through the simulated flow field, compares
// gauge output against benchmark reference data, and renders frames for
// animation.
package tsunami

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Version gives the version of this library.
const Version = "0.3.0"

// DryTolerance is the water depth [m] below which a cell is considered
// dry and flow velocities are taken to be zero. It matches the GeoClaw
// default dry_tolerance.
const DryTolerance = 1.e-3

// Output formats for fgout frame data, matching the values accepted by
// GeoClaw's fgout_grids.data.
const (
	FormatASCII    = "ascii"
	FormatBinary32 = "binary32"
	FormatBinary64 = "binary64"
)

// fgout frames hold the conserved quantities (h, hu, hv, eta) in this
// order.
const fgoutMeqn = 4

// FGoutGrid locates and decodes the fixed-resolution output frames
// ("fgout" frames) written by a GeoClaw run. It is the Go counterpart of
// the FGoutGrid reader in clawpack.geoclaw.fgout_tools.
type FGoutGrid struct {
	// Num is the fgout grid number within the GeoClaw run (usually 1).
	Num int
	// Outdir is the solver output directory (usually "_output").
	Outdir string
	// Format is one of FormatASCII, FormatBinary32 or FormatBinary64.
	Format string
}

// NewFGoutGrid creates a reader for fgout grid num in directory outdir
// with the given frame data format.
func NewFGoutGrid(num int, outdir, format string) (*FGoutGrid, error) {
	switch format {
	case FormatASCII, FormatBinary32, FormatBinary64:
	default:
		return nil, fmt.Errorf("tsunami: invalid fgout format %q", format)
	}
	if _, err := os.Stat(outdir); err != nil {
		return nil, fmt.Errorf("tsunami: fgout output directory: %v", err)
	}
	return &FGoutGrid{Num: num, Outdir: outdir, Format: format}, nil
}

// Frame is one fgout snapshot: the solver state on a fixed rectangular
// grid at a single output time. All arrays are shaped [my][mx] and
// indexed (j, i) where i varies in the x direction.
type Frame struct {
	T      float64 // output time [s]
	Mx, My int     // number of cells in x and y

	Xlow, Ylow float64 // lower-left corner of the grid
	Dx, Dy     float64 // cell size

	H   *sparse.DenseArray // water depth [m]
	Hu  *sparse.DenseArray // x momentum [m²/s]
	Hv  *sparse.DenseArray // y momentum [m²/s]
	Eta *sparse.DenseArray // water surface elevation [m]

	// Derived quantities.
	U *sparse.DenseArray // x velocity [m/s], zero where dry
	V *sparse.DenseArray // y velocity [m/s], zero where dry
	B *sparse.DenseArray // bathymetry [m], eta - h
}

// X returns the x coordinate of the center of cell column i.
func (f *Frame) X(i int) float64 { return f.Xlow + (float64(i)+0.5)*f.Dx }

// Y returns the y coordinate of the center of cell row j.
func (f *Frame) Y(j int) float64 { return f.Ylow + (float64(j)+0.5)*f.Dy }

// Extent returns the outer edges of the frame grid.
func (f *Frame) Extent() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: f.Xlow, Y: f.Ylow},
		Max: geom.Point{X: f.Xlow + float64(f.Mx)*f.Dx, Y: f.Ylow + float64(f.My)*f.Dy},
	}
}

// Speed returns the flow speed [m/s] in cell (j, i).
func (f *Frame) Speed(j, i int) float64 {
	return math.Hypot(f.U.Get(j, i), f.V.Get(j, i))
}

// fileName gives the path of an fgout frame file; kind is "t", "q" or "b".
func (fg *FGoutGrid) fileName(kind string, frameno int) string {
	return filepath.Join(fg.Outdir, fmt.Sprintf("fgout%04d.%s%04d", fg.Num, kind, frameno))
}

// ReadFrame reads fgout frame number frameno. A missing or malformed
// frame file is a fatal error: no recovery policy is defined for
// truncated solver output.
func (fg *FGoutGrid) ReadFrame(frameno int) (*Frame, error) {
	t, err := readTimeFile(fg.fileName("t", frameno))
	if err != nil {
		return nil, err
	}
	f, data, err := readQFile(fg.fileName("q", frameno), fg.Format == FormatASCII)
	if err != nil {
		return nil, err
	}
	f.T = t
	if fg.Format != FormatASCII {
		data, err = readBFile(fg.fileName("b", frameno), fg.Format, fgoutMeqn*f.Mx*f.My)
		if err != nil {
			return nil, err
		}
	}
	if len(data) != fgoutMeqn*f.Mx*f.My {
		return nil, fmt.Errorf("tsunami: fgout frame %d: have %d values, want %d",
			frameno, len(data), fgoutMeqn*f.Mx*f.My)
	}
	f.unpack(data)
	return f, nil
}

// unpack fills the frame arrays from a flat value slice in solver order:
// the quantity index varies fastest, then i, then j.
func (f *Frame) unpack(data []float64) {
	f.H = sparse.ZerosDense(f.My, f.Mx)
	f.Hu = sparse.ZerosDense(f.My, f.Mx)
	f.Hv = sparse.ZerosDense(f.My, f.Mx)
	f.Eta = sparse.ZerosDense(f.My, f.Mx)
	f.U = sparse.ZerosDense(f.My, f.Mx)
	f.V = sparse.ZerosDense(f.My, f.Mx)
	f.B = sparse.ZerosDense(f.My, f.Mx)
	for j := 0; j < f.My; j++ {
		for i := 0; i < f.Mx; i++ {
			v := data[fgoutMeqn*(j*f.Mx+i):]
			h, hu, hv, eta := v[0], v[1], v[2], v[3]
			f.H.Set(h, j, i)
			f.Hu.Set(hu, j, i)
			f.Hv.Set(hv, j, i)
			f.Eta.Set(eta, j, i)
			if h >= DryTolerance {
				f.U.Set(hu/h, j, i)
				f.V.Set(hv/h, j, i)
			}
			f.B.Set(eta-h, j, i)
		}
	}
}

// readTimeFile parses an fgout .t file, which holds labeled header values
// one per line ("value  name"), and returns the frame time.
func readTimeFile(fname string) (float64, error) {
	vals, err := readLabeledValues(fname)
	if err != nil {
		return 0, err
	}
	t, ok := vals["time"]
	if !ok {
		return 0, fmt.Errorf("tsunami: %s: no time in frame header", fname)
	}
	return t, nil
}

// readQFile parses the header of an fgout .q file and, if withData is
// true, the ASCII data that follows it.
func readQFile(fname string, withData bool) (*Frame, []float64, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("tsunami: reading fgout frame: %v", err)
	}
	defer file.Close()

	const nHeader = 8 // grid_number, AMR_level, mx, my, xlow, ylow, dx, dy
	hdr := make(map[string]float64)
	scan := bufio.NewScanner(file)
	scan.Buffer(make([]byte, 1024*1024), 1024*1024)
	for n := 0; n < nHeader && scan.Scan(); n++ {
		if err := labeledValue(scan.Text(), hdr); err != nil {
			return nil, nil, fmt.Errorf("tsunami: %s: %v", fname, err)
		}
	}
	for _, name := range []string{"mx", "my", "xlow", "ylow", "dx", "dy"} {
		if _, ok := hdr[name]; !ok {
			return nil, nil, fmt.Errorf("tsunami: %s: missing %s in frame header", fname, name)
		}
	}
	f := &Frame{
		Mx:   int(hdr["mx"]),
		My:   int(hdr["my"]),
		Xlow: hdr["xlow"],
		Ylow: hdr["ylow"],
		Dx:   hdr["dx"],
		Dy:   hdr["dy"],
	}
	if f.Mx <= 0 || f.My <= 0 {
		return nil, nil, fmt.Errorf("tsunami: %s: invalid grid size %d x %d", fname, f.Mx, f.My)
	}
	if !withData {
		return f, nil, nil
	}
	data := make([]float64, 0, fgoutMeqn*f.Mx*f.My)
	for scan.Scan() {
		for _, field := range strings.Fields(scan.Text()) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("tsunami: %s: %v", fname, err)
			}
			data = append(data, v)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, nil, fmt.Errorf("tsunami: %s: %v", fname, err)
	}
	return f, data, nil
}

// readBFile reads n raw little-endian values from an fgout .b file.
func readBFile(fname, format string, n int) ([]float64, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("tsunami: reading fgout frame: %v", err)
	}
	defer file.Close()
	r := bufio.NewReader(file)
	data := make([]float64, n)
	if format == FormatBinary32 {
		buf := make([]float32, n)
		if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
			return nil, fmt.Errorf("tsunami: %s: %v", fname, err)
		}
		for i, v := range buf {
			data[i] = float64(v)
		}
		return data, nil
	}
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("tsunami: %s: %v", fname, err)
	}
	return data, nil
}

// readLabeledValues reads a whole file of "value  name" lines.
func readLabeledValues(fname string) (map[string]float64, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("tsunami: reading fgout frame: %v", err)
	}
	defer file.Close()
	vals := make(map[string]float64)
	scan := bufio.NewScanner(file)
	for scan.Scan() {
		if strings.TrimSpace(scan.Text()) == "" {
			continue
		}
		if err := labeledValue(scan.Text(), vals); err != nil {
			return nil, fmt.Errorf("tsunami: %s: %v", fname, err)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("tsunami: %s: %v", fname, err)
	}
	return vals, nil
}

// labeledValue parses one "value  name" header line into vals.
func labeledValue(line string, vals map[string]float64) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("malformed header line %q", line)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("malformed header line %q: %v", line, err)
	}
	vals[fields[1]] = v
	return nil
}

// NextFrame is a function that returns the next fgout frame in a
// sequence. It returns the io.EOF error after the last frame.
type NextFrame func() (*Frame, error)

// Frames returns an iterator over the given fgout frame numbers.
// Frame times must be strictly increasing; a non-increasing time is
// reported as an error.
func (fg *FGoutGrid) Frames(framenos []int) NextFrame {
	k := 0
	var tprev float64
	return func() (*Frame, error) {
		if k >= len(framenos) {
			return nil, io.EOF
		}
		f, err := fg.ReadFrame(framenos[k])
		if err != nil {
			return nil, err
		}
		if k > 0 && f.T <= tprev {
			return nil, fmt.Errorf("tsunami: fgout frame %d: time %g not after previous time %g",
				framenos[k], f.T, tprev)
		}
		tprev = f.T
		k++
		return f, nil
	}
}

// FrameRange returns the frame numbers from first to last inclusive.
func FrameRange(first, last int) []int {
	if last < first {
		return nil
	}
	nums := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		nums = append(nums, n)
	}
	return nums
}
