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
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testFrame describes an fgout snapshot to write as solver output for
// the reader tests. Data values are generated by q(m, j, i).
type testFrame struct {
	t          float64
	mx, my     int
	xlow, ylow float64
	dx, dy     float64
	q          func(m, j, i int) float64
}

// write writes the frame in the .t/.q(/.b) file layout GeoClaw produces.
func (tf *testFrame) write(t *testing.T, dir string, num, frameno int, format string) {
	t.Helper()

	tfile := filepath.Join(dir, fmt.Sprintf("fgout%04d.t%04d", num, frameno))
	tBody := fmt.Sprintf("%.16e    time\n%d    num_eqn\n1    nstates\n", tf.t, fgoutMeqn)
	if err := os.WriteFile(tfile, []byte(tBody), 0644); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d    grid_number\n", num)
	fmt.Fprintf(&b, "1    AMR_level\n")
	fmt.Fprintf(&b, "%d    mx\n", tf.mx)
	fmt.Fprintf(&b, "%d    my\n", tf.my)
	fmt.Fprintf(&b, "%.16e    xlow\n", tf.xlow)
	fmt.Fprintf(&b, "%.16e    ylow\n", tf.ylow)
	fmt.Fprintf(&b, "%.16e    dx\n", tf.dx)
	fmt.Fprintf(&b, "%.16e    dy\n", tf.dy)
	if format == FormatASCII {
		for j := 0; j < tf.my; j++ {
			for i := 0; i < tf.mx; i++ {
				for m := 0; m < fgoutMeqn; m++ {
					fmt.Fprintf(&b, " %.16e", tf.q(m, j, i))
				}
				b.WriteByte('\n')
			}
		}
	}
	qfile := filepath.Join(dir, fmt.Sprintf("fgout%04d.q%04d", num, frameno))
	if err := os.WriteFile(qfile, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	if format == FormatASCII {
		return
	}

	bfile, err := os.Create(filepath.Join(dir, fmt.Sprintf("fgout%04d.b%04d", num, frameno)))
	if err != nil {
		t.Fatal(err)
	}
	defer bfile.Close()
	for j := 0; j < tf.my; j++ {
		for i := 0; i < tf.mx; i++ {
			for m := 0; m < fgoutMeqn; m++ {
				v := tf.q(m, j, i)
				if format == FormatBinary32 {
					err = binary.Write(bfile, binary.LittleEndian, float32(v))
				} else {
					err = binary.Write(bfile, binary.LittleEndian, v)
				}
				if err != nil {
					t.Fatal(err)
				}
			}
		}
	}
}

// wetFrame gives a frame with depth 2, unit x velocity, still in y, and
// surface elevation 0.5 everywhere.
func wetFrame(time float64, mx, my int) *testFrame {
	return &testFrame{
		t: time, mx: mx, my: my,
		xlow: 0, ylow: 0, dx: 0.5, dy: 0.25,
		q: func(m, j, i int) float64 {
			switch m {
			case 0:
				return 2 // h
			case 1:
				return 2 // hu
			case 2:
				return 0 // hv
			default:
				return 0.5 // eta
			}
		},
	}
}

func TestReadFrame(t *testing.T) {
	const testTolerance = 1.e-6
	for _, format := range []string{FormatASCII, FormatBinary32, FormatBinary64} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			tf := wetFrame(2.5, 4, 3)
			tf.write(t, dir, 1, 10, format)

			fg, err := NewFGoutGrid(1, dir, format)
			if err != nil {
				t.Fatal(err)
			}
			f, err := fg.ReadFrame(10)
			if err != nil {
				t.Fatal(err)
			}
			if f.T != 2.5 || f.Mx != 4 || f.My != 3 {
				t.Fatalf("header: t=%g mx=%d my=%d", f.T, f.Mx, f.My)
			}
			if f.Dx != 0.5 || f.Dy != 0.25 {
				t.Errorf("cell size: dx=%g dy=%g", f.Dx, f.Dy)
			}
			for j := 0; j < f.My; j++ {
				for i := 0; i < f.Mx; i++ {
					if absDifferent(f.H.Get(j, i), 2, testTolerance) {
						t.Errorf("h(%d,%d) = %g", j, i, f.H.Get(j, i))
					}
					if absDifferent(f.U.Get(j, i), 1, testTolerance) {
						t.Errorf("u(%d,%d) = %g", j, i, f.U.Get(j, i))
					}
					if absDifferent(f.V.Get(j, i), 0, testTolerance) {
						t.Errorf("v(%d,%d) = %g", j, i, f.V.Get(j, i))
					}
					if absDifferent(f.B.Get(j, i), -1.5, testTolerance) {
						t.Errorf("b(%d,%d) = %g", j, i, f.B.Get(j, i))
					}
					if absDifferent(f.Speed(j, i), 1, testTolerance) {
						t.Errorf("speed(%d,%d) = %g", j, i, f.Speed(j, i))
					}
				}
			}
			if got := f.X(0); got != 0.25 {
				t.Errorf("X(0) = %g", got)
			}
			if got := f.Y(2); got != 0.625 {
				t.Errorf("Y(2) = %g", got)
			}
			ext := f.Extent()
			if ext.Max.X != 2 || ext.Max.Y != 0.75 {
				t.Errorf("extent max = %+v", ext.Max)
			}
		})
	}
}

// Cells shallower than the dry tolerance must carry zero velocity even
// when their momentum is nonzero.
func TestReadFrameDryCell(t *testing.T) {
	dir := t.TempDir()
	tf := wetFrame(0, 2, 2)
	q := tf.q
	tf.q = func(m, j, i int) float64 {
		if j == 0 && i == 0 {
			switch m {
			case 0:
				return 1e-4
			case 1:
				return 0.1
			}
		}
		return q(m, j, i)
	}
	tf.write(t, dir, 1, 1, FormatASCII)

	fg, err := NewFGoutGrid(1, dir, FormatASCII)
	if err != nil {
		t.Fatal(err)
	}
	f, err := fg.ReadFrame(1)
	if err != nil {
		t.Fatal(err)
	}
	if u := f.U.Get(0, 0); u != 0 {
		t.Errorf("dry cell u = %g, want 0", u)
	}
	if u := f.U.Get(0, 1); u != 1 {
		t.Errorf("wet cell u = %g, want 1", u)
	}
}

func TestNewFGoutGridErrors(t *testing.T) {
	if _, err := NewFGoutGrid(1, t.TempDir(), "binary"); err == nil {
		t.Error("want error for invalid format")
	}
	if _, err := NewFGoutGrid(1, filepath.Join(t.TempDir(), "missing"), FormatASCII); err == nil {
		t.Error("want error for missing output directory")
	}
}

func TestFrames(t *testing.T) {
	dir := t.TempDir()
	for k, time := range []float64{1, 2, 3} {
		wetFrame(time, 2, 2).write(t, dir, 1, 10+k, FormatBinary32)
	}
	fg, err := NewFGoutGrid(1, dir, FormatBinary32)
	if err != nil {
		t.Fatal(err)
	}

	next := fg.Frames(FrameRange(10, 12))
	var times []float64
	for {
		f, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		times = append(times, f.T)
	}
	if len(times) != 3 || times[0] != 1 || times[2] != 3 {
		t.Errorf("frame times = %v", times)
	}
	// The iterator must keep returning io.EOF once exhausted.
	if _, err := next(); err != io.EOF {
		t.Errorf("after EOF: %v", err)
	}
}

func TestFramesNonmonotonic(t *testing.T) {
	dir := t.TempDir()
	wetFrame(2, 2, 2).write(t, dir, 1, 1, FormatASCII)
	wetFrame(2, 2, 2).write(t, dir, 1, 2, FormatASCII) // repeated time
	fg, err := NewFGoutGrid(1, dir, FormatASCII)
	if err != nil {
		t.Fatal(err)
	}
	next := fg.Frames([]int{1, 2})
	if _, err := next(); err != nil {
		t.Fatal(err)
	}
	if _, err := next(); err == nil {
		t.Error("want error for non-increasing frame time")
	}
}

func TestFrameRange(t *testing.T) {
	if got := FrameRange(3, 5); len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("FrameRange(3, 5) = %v", got)
	}
	if got := FrameRange(5, 3); got != nil {
		t.Errorf("FrameRange(5, 3) = %v", got)
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func absDifferent(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b)
}
