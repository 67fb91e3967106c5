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
	"math"

	"github.com/ctessum/sparse"
)

// FlowSample is the local flow state at a point, interpolated from a
// pair of bracketing fgout frames.
type FlowSample struct {
	H    float64 // water depth [m]
	U, V float64 // flow velocity [m/s]

	// OnGrid reports whether the sample point lies within the hull of
	// grid cell centers. Points off the grid carry zero depth and
	// velocity and are treated as grounded by the debris model.
	OnGrid bool
}

// bilinear interpolates array a (shaped [my][mx] on f's grid) at point
// (x, y) using the four surrounding cell centers. The second return
// value is false if (x, y) is outside the hull of cell centers.
func (f *Frame) bilinear(a *sparse.DenseArray, x, y float64) (float64, bool) {
	fx := (x-f.Xlow)/f.Dx - 0.5
	fy := (y-f.Ylow)/f.Dy - 0.5
	i0 := int(math.Floor(fx))
	j0 := int(math.Floor(fy))
	if i0 < 0 || i0+1 >= f.Mx || j0 < 0 || j0+1 >= f.My {
		return 0, false
	}
	wx := fx - float64(i0)
	wy := fy - float64(j0)
	v := (1-wy)*((1-wx)*a.Get(j0, i0)+wx*a.Get(j0, i0+1)) +
		wy*((1-wx)*a.Get(j0+1, i0)+wx*a.Get(j0+1, i0+1))
	return v, true
}

// flowSample returns the flow state at point (x, y) and time t, where
// f1.T <= t <= f2.T. Depth and velocity are interpolated bilinearly in
// space within each bracketing frame and then blended linearly in time.
// The debris model evaluates this once per sub-step, at the sub-step
// start time, and holds the result for the duration of the sub-step;
// this is the fixed interpolation-in-time policy for this package.
func flowSample(f1, f2 *Frame, x, y, t float64) FlowSample {
	h1, ok1 := f1.bilinear(f1.H, x, y)
	h2, ok2 := f2.bilinear(f2.H, x, y)
	if !ok1 || !ok2 {
		return FlowSample{}
	}
	u1, _ := f1.bilinear(f1.U, x, y)
	u2, _ := f2.bilinear(f2.U, x, y)
	v1, _ := f1.bilinear(f1.V, x, y)
	v2, _ := f2.bilinear(f2.V, x, y)

	α := 0.
	if f2.T > f1.T {
		α = (t - f1.T) / (f2.T - f1.T)
	}
	if α < 0 {
		α = 0
	} else if α > 1 {
		α = 1
	}
	return FlowSample{
		H:      (1-α)*h1 + α*h2,
		U:      (1-α)*u1 + α*u2,
		V:      (1-α)*v1 + α*v2,
		OnGrid: true,
	}
}

// groundedFor reports whether a particle with the given grounding-depth
// threshold is grounded at this sample: either the local depth is below
// the threshold or the particle has left the grid.
func (s FlowSample) groundedFor(p *Particle) bool {
	return !s.OnGrid || s.H < p.GroundingDepth
}
