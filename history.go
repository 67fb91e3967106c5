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
	"log"
	"math"
)

// timeMatchTolerance is the maximum difference [s] between a query time
// and a stored sample time for the two to be considered the same output
// time.
const timeMatchTolerance = 1.e-6

// PathSample is the state of one debris particle at one output time.
type PathSample struct {
	T    float64 // output time [s]
	X, Y float64 // position
	U, V float64 // velocity [m/s]
}

// PathHistory is the append-only time series of a single particle's
// motion, one sample per fgout frame (not per integration sub-step).
// Sample times are strictly increasing.
type PathHistory struct {
	samples []PathSample
}

// append adds a sample, enforcing strictly increasing time.
func (h *PathHistory) append(s PathSample) error {
	if n := len(h.samples); n > 0 && s.T <= h.samples[n-1].T {
		return fmt.Errorf("tsunami: path sample at t=%g not after previous sample at t=%g",
			s.T, h.samples[n-1].T)
	}
	h.samples = append(h.samples, s)
	return nil
}

// Len returns the number of recorded samples.
func (h *PathHistory) Len() int { return len(h.samples) }

// Samples returns the recorded samples in time order.
func (h *PathHistory) Samples() []PathSample { return h.samples }

// At returns the sample whose time matches t to within the frame-time
// tolerance. A missed lookup is a reporting-only condition: it is logged
// and the second return value is false, but the run is not aborted.
func (h *PathHistory) At(t float64) (PathSample, bool) {
	for k := len(h.samples) - 1; k >= 0; k-- {
		if math.Abs(h.samples[k].T-t) < timeMatchTolerance {
			return h.samples[k], true
		}
	}
	log.Printf("tsunami: no path sample found at t = %.3f", t)
	return PathSample{}, false
}
