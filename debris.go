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
	"io"
	"sort"
)

// Particle is one debris point mass advected through the flow field.
type Particle struct {
	ID int

	X, Y float64 // position
	U, V float64 // velocity [m/s]

	Mass       float64 // [kg]
	Radius     float64 // effective radius [m], used for contact geometry
	DragFactor float64 // drag force per unit relative speed squared

	// GroundingDepth is the water depth [m] below which the particle
	// rests on the bottom: drag no longer acts on it and the contact
	// force resists its motion.
	GroundingDepth float64
}

// ForceFunc computes one force contribution [N] on particle p given the
// local flow sample s. Implementations must not modify particle state:
// all forces within a sub-step are evaluated from the pre-update state
// of every particle.
type ForceFunc func(m *DebrisModel, p *Particle, s FlowSample) (fx, fy float64)

// DebrisModel advects a set of tethered debris particles through a
// sequence of fgout flow frames using sub-stepped forward-Euler
// integration. The model is single-threaded and fully deterministic:
// identical inputs produce bit-for-bit identical histories.
type DebrisModel struct {
	Particles []*Particle
	Tethers   *TetherGraph

	// Substeps is the number of equal integration steps per frame
	// interval.
	Substeps int

	// ContactK is the spring constant for grounding contact: a grounded
	// particle's residual motion is resisted by the force −ContactK·v.
	ContactK float64

	// Forces are the force terms summed on each particle every
	// sub-step.
	Forces []ForceFunc

	index     map[int]*Particle
	histories map[int]*PathHistory
}

// NewDebrisModel creates a model from the given particles and tether
// topology with the default force terms (drag, tether springs, grounding
// contact). Every particle id referenced by a tether must exist in the
// particle set.
func NewDebrisModel(particles []*Particle, tethers *TetherGraph, substeps int, contactK float64) (*DebrisModel, error) {
	if substeps < 1 {
		return nil, fmt.Errorf("tsunami: debris model needs at least 1 sub-step, have %d", substeps)
	}
	if tethers == nil {
		tethers = NewTetherGraph()
	}
	m := &DebrisModel{
		Particles: particles,
		Tethers:   tethers,
		Substeps:  substeps,
		ContactK:  contactK,
		Forces:    []ForceFunc{Drag(), Spring(), Contact()},
		index:     make(map[int]*Particle),
		histories: make(map[int]*PathHistory),
	}
	for _, p := range particles {
		if p.Mass <= 0 {
			return nil, fmt.Errorf("tsunami: particle %d has non-positive mass %g", p.ID, p.Mass)
		}
		if _, ok := m.index[p.ID]; ok {
			return nil, fmt.Errorf("tsunami: duplicate particle id %d", p.ID)
		}
		m.index[p.ID] = p
		m.histories[p.ID] = new(PathHistory)
	}
	for _, id := range tethers.IDs() {
		if _, ok := m.index[id]; !ok {
			return nil, fmt.Errorf("tsunami: tether references unknown particle id %d", id)
		}
	}
	return m, nil
}

// Particle returns the particle with the given id, or nil.
func (m *DebrisModel) Particle(id int) *Particle { return m.index[id] }

// History returns the recorded path of the particle with the given id,
// or nil.
func (m *DebrisModel) History(id int) *PathHistory { return m.histories[id] }

// Histories returns the recorded path of every particle, keyed by id.
func (m *DebrisModel) Histories() map[int]*PathHistory { return m.histories }

// IDs returns the particle ids in ascending order.
func (m *DebrisModel) IDs() []int {
	ids := make([]int, 0, len(m.Particles))
	for _, p := range m.Particles {
		ids = append(ids, p.ID)
	}
	sort.Ints(ids)
	return ids
}

// Run advects all particles through the frame sequence produced by
// next. The state at the first frame's time is recorded before any
// stepping; thereafter one sample per frame is appended to each
// particle's history at exactly the frame time. Only the bracketing
// frame pair is held in memory at any point.
func (m *DebrisModel) Run(next NextFrame) error {
	f1, err := next()
	if err == io.EOF {
		return fmt.Errorf("tsunami: debris model: no fgout frames to process")
	}
	if err != nil {
		return err
	}
	if err := m.record(f1.T); err != nil {
		return err
	}
	for {
		f2, err := next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		m.advance(f1, f2)
		if err := m.record(f2.T); err != nil {
			return err
		}
		f1 = f2
	}
}

// advance integrates all particles across one frame interval using
// m.Substeps equal forward-Euler steps. Forces for a sub-step are
// evaluated from every particle's pre-update state so that tether force
// pairs stay symmetric.
func (m *DebrisModel) advance(f1, f2 *Frame) {
	Δt := (f2.T - f1.T) / float64(m.Substeps)
	ax := make([]float64, len(m.Particles))
	ay := make([]float64, len(m.Particles))
	for n := 0; n < m.Substeps; n++ {
		t := f1.T + float64(n)*Δt
		for k, p := range m.Particles {
			s := flowSample(f1, f2, p.X, p.Y, t)
			var fx, fy float64
			for _, force := range m.Forces {
				dfx, dfy := force(m, p, s)
				fx += dfx
				fy += dfy
			}
			ax[k] = fx / p.Mass
			ay[k] = fy / p.Mass
		}
		for k, p := range m.Particles {
			p.U += ax[k] * Δt
			p.V += ay[k] * Δt
			p.X += p.U * Δt
			p.Y += p.V * Δt
		}
	}
}

// record appends the current state of every particle to its history at
// time t.
func (m *DebrisModel) record(t float64) error {
	for _, p := range m.Particles {
		err := m.histories[p.ID].append(PathSample{T: t, X: p.X, Y: p.Y, U: p.U, V: p.V})
		if err != nil {
			return err
		}
	}
	return nil
}
