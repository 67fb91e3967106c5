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

import "testing"

func TestPathHistoryAppend(t *testing.T) {
	h := new(PathHistory)
	for _, tv := range []float64{0, 1, 2.5} {
		if err := h.append(PathSample{T: tv}); err != nil {
			t.Fatal(err)
		}
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d", h.Len())
	}
	if err := h.append(PathSample{T: 2.5}); err == nil {
		t.Error("want error for repeated sample time")
	}
	if err := h.append(PathSample{T: 1}); err == nil {
		t.Error("want error for decreasing sample time")
	}
	// Failed appends must not grow the history.
	if h.Len() != 3 {
		t.Errorf("len after failed appends = %d", h.Len())
	}
}

func TestPathHistoryAt(t *testing.T) {
	h := new(PathHistory)
	for k, tv := range []float64{0, 1, 2} {
		if err := h.append(PathSample{T: tv, X: float64(k)}); err != nil {
			t.Fatal(err)
		}
	}

	s, ok := h.At(1)
	if !ok || s.X != 1 {
		t.Errorf("At(1) = %+v (ok %v)", s, ok)
	}
	// Times within the frame-time tolerance still match.
	if s, ok := h.At(1 + 1e-9); !ok || s.X != 1 {
		t.Errorf("At(1+1e-9) = %+v (ok %v)", s, ok)
	}
	// Misses report false without aborting.
	if _, ok := h.At(1.5); ok {
		t.Error("At(1.5) unexpectedly matched")
	}
	if _, ok := h.At(17); ok {
		t.Error("At(17) unexpectedly matched")
	}
}
