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
	"testing"

	"github.com/ctessum/sparse"
)

// gridFrame builds a frame directly in memory with the given fields
// evaluated at the cell centers.
func gridFrame(time float64, mx, my int, h, u, v func(x, y float64) float64) *Frame {
	f := &Frame{
		T: time, Mx: mx, My: my,
		Xlow: 0, Ylow: 0, Dx: 1, Dy: 1,
	}
	f.H = sparse.ZerosDense(my, mx)
	f.Hu = sparse.ZerosDense(my, mx)
	f.Hv = sparse.ZerosDense(my, mx)
	f.Eta = sparse.ZerosDense(my, mx)
	f.U = sparse.ZerosDense(my, mx)
	f.V = sparse.ZerosDense(my, mx)
	f.B = sparse.ZerosDense(my, mx)
	for j := 0; j < my; j++ {
		for i := 0; i < mx; i++ {
			x, y := f.X(i), f.Y(j)
			hv := h(x, y)
			f.H.Set(hv, j, i)
			f.Eta.Set(hv, j, i)
			f.U.Set(u(x, y), j, i)
			f.V.Set(v(x, y), j, i)
			f.Hu.Set(hv*u(x, y), j, i)
			f.Hv.Set(hv*v(x, y), j, i)
		}
	}
	return f
}

func constant(c float64) func(x, y float64) float64 {
	return func(x, y float64) float64 { return c }
}

// Bilinear interpolation must reproduce a field that is linear in x and
// y exactly, anywhere inside the hull of cell centers.
func TestBilinearLinearField(t *testing.T) {
	const testTolerance = 1.e-12
	linear := func(x, y float64) float64 { return 1 + 2*x + 3*y }
	f := gridFrame(0, 5, 4, linear, constant(0), constant(0))

	for _, pt := range [][2]float64{{1.5, 1.5}, {0.5, 0.5}, {3.7, 2.9}, {4.4, 3.4}} {
		got, ok := f.bilinear(f.H, pt[0], pt[1])
		if !ok {
			t.Fatalf("point (%g, %g) unexpectedly off grid", pt[0], pt[1])
		}
		if want := linear(pt[0], pt[1]); absDifferent(got, want, testTolerance) {
			t.Errorf("bilinear(%g, %g) = %g, want %g", pt[0], pt[1], got, want)
		}
	}
}

func TestBilinearOffGrid(t *testing.T) {
	f := gridFrame(0, 5, 4, constant(1), constant(0), constant(0))
	// Outside the hull of cell centers, including the outer half cell.
	for _, pt := range [][2]float64{{-1, 1}, {0.4, 1}, {1, 3.6}, {4.6, 1}, {1, -0.5}} {
		if _, ok := f.bilinear(f.H, pt[0], pt[1]); ok {
			t.Errorf("point (%g, %g) unexpectedly on grid", pt[0], pt[1])
		}
	}
}

func TestFlowSampleTimeBlend(t *testing.T) {
	const testTolerance = 1.e-12
	f1 := gridFrame(10, 5, 4, constant(1), constant(0), constant(2))
	f2 := gridFrame(20, 5, 4, constant(3), constant(4), constant(0))

	s := flowSample(f1, f2, 2.5, 1.5, 12.5)
	if !s.OnGrid {
		t.Fatal("sample unexpectedly off grid")
	}
	if absDifferent(s.H, 1.5, testTolerance) {
		t.Errorf("h = %g, want 1.5", s.H)
	}
	if absDifferent(s.U, 1, testTolerance) {
		t.Errorf("u = %g, want 1", s.U)
	}
	if absDifferent(s.V, 1.5, testTolerance) {
		t.Errorf("v = %g, want 1.5", s.V)
	}

	// At the bracketing frame times the blend reduces to each frame.
	if s := flowSample(f1, f2, 2.5, 1.5, 10); s.H != 1 || s.V != 2 {
		t.Errorf("at t=10: %+v", s)
	}
	if s := flowSample(f1, f2, 2.5, 1.5, 20); s.H != 3 || s.U != 4 {
		t.Errorf("at t=20: %+v", s)
	}
}

func TestFlowSampleOffGrid(t *testing.T) {
	f1 := gridFrame(0, 5, 4, constant(1), constant(1), constant(1))
	f2 := gridFrame(1, 5, 4, constant(1), constant(1), constant(1))
	s := flowSample(f1, f2, -3, -3, 0.5)
	if s.OnGrid {
		t.Error("off-grid sample reported on grid")
	}
	if s.H != 0 || s.U != 0 || s.V != 0 {
		t.Errorf("off-grid sample not zero: %+v", s)
	}
}

func TestGroundedFor(t *testing.T) {
	p := &Particle{GroundingDepth: 0.5}
	if (FlowSample{H: 1, OnGrid: true}).groundedFor(p) {
		t.Error("deep water reported grounded")
	}
	if !(FlowSample{H: 0.1, OnGrid: true}).groundedFor(p) {
		t.Error("shallow water not reported grounded")
	}
	if !(FlowSample{H: 1, OnGrid: false}).groundedFor(p) {
		t.Error("off-grid sample not reported grounded")
	}
	// With a zero threshold only leaving the grid grounds the particle.
	p0 := &Particle{GroundingDepth: 0}
	if (FlowSample{H: 0, OnGrid: true}).groundedFor(p0) {
		t.Error("zero threshold grounded a particle on the grid")
	}
}
