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

import "math"

// Drag returns a function that calculates the drag force exerted on a
// particle by the surrounding flow. The force is quadratic in the
// relative velocity, drag_factor × |v_rel| × v_rel. A grounded particle
// (local depth below its grounding threshold, or off the grid)
// experiences no drag regardless of the flow velocity.
func Drag() ForceFunc {
	return func(m *DebrisModel, p *Particle, s FlowSample) (float64, float64) {
		if s.groundedFor(p) {
			return 0, 0
		}
		du := s.U - p.U
		dv := s.V - p.V
		rel := math.Hypot(du, dv)
		return p.DragFactor * rel * du, p.DragFactor * rel * dv
	}
}

// Spring returns a function that calculates the net tether force on a
// particle: for every tethered neighbor, stiffness × (distance − rest
// length) directed along the connecting line. A tether at exactly its
// rest length exerts no force. Tether forces act whether or not the
// particle is grounded, so a floating particle can drag a grounded
// partner.
func Spring() ForceFunc {
	return func(m *DebrisModel, p *Particle, s FlowSample) (fx, fy float64) {
		for _, id := range m.Tethers.Neighbors(p.ID) {
			q := m.index[id]
			tether, ok := m.Tethers.Lookup(p.ID, id)
			if !ok {
				continue
			}
			dx := q.X - p.X
			dy := q.Y - p.Y
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				// Coincident particles give no direction to pull in.
				continue
			}
			f := tether.Stiffness * (dist - tether.RestLength)
			fx += f * dx / dist
			fy += f * dy / dist
		}
		return fx, fy
	}
}

// Contact returns a function that calculates the bottom-contact force on
// a grounded particle: −ContactK × velocity, resisting residual motion
// while the particle rests on the bottom. Floating particles are
// unaffected.
func Contact() ForceFunc {
	return func(m *DebrisModel, p *Particle, s FlowSample) (float64, float64) {
		if !s.groundedFor(p) {
			return 0, 0
		}
		return -m.ContactK * p.U, -m.ContactK * p.V
	}
}
