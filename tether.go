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
	"math"
	"sort"
)

// Tether is an elastic link between two debris particles. The spring
// force is stiffness × (distance − rest length), directed along the line
// connecting the particles, so a stretched tether pulls them together
// and a compressed one pushes them apart.
type Tether struct {
	RestLength float64 // unstretched length [m]
	Stiffness  float64 // spring constant [N/m]
}

// TetherGraph holds the tether topology of a debris field. Links are
// symmetric: connecting a to b also connects b to a. The graph is built
// once at initialization; particle ids carry no implicit pairing
// meaning.
type TetherGraph struct {
	links     map[[2]int]Tether
	neighbors map[int][]int
}

// NewTetherGraph returns an empty tether graph.
func NewTetherGraph() *TetherGraph {
	return &TetherGraph{
		links:     make(map[[2]int]Tether),
		neighbors: make(map[int][]int),
	}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Connect adds a tether between particles a and b, replacing any
// existing link between them.
func (g *TetherGraph) Connect(a, b int, restLength, stiffness float64) error {
	if a == b {
		return fmt.Errorf("tsunami: tether connects particle %d to itself", a)
	}
	if restLength < 0 || stiffness < 0 {
		return fmt.Errorf("tsunami: tether %d-%d: negative rest length or stiffness", a, b)
	}
	key := pairKey(a, b)
	if _, ok := g.links[key]; !ok {
		g.addNeighbor(a, b)
		g.addNeighbor(b, a)
	}
	g.links[key] = Tether{RestLength: restLength, Stiffness: stiffness}
	return nil
}

// addNeighbor inserts b into a's neighbor list, keeping the list sorted
// so that force summation order is deterministic.
func (g *TetherGraph) addNeighbor(a, b int) {
	n := g.neighbors[a]
	k := sort.SearchInts(n, b)
	n = append(n, 0)
	copy(n[k+1:], n[k:])
	n[k] = b
	g.neighbors[a] = n
}

// Lookup returns the tether between particles a and b, if one exists.
func (g *TetherGraph) Lookup(a, b int) (Tether, bool) {
	t, ok := g.links[pairKey(a, b)]
	return t, ok
}

// Neighbors returns the ids of all particles tethered to id, in
// ascending order. The returned slice must not be modified.
func (g *TetherGraph) Neighbors(id int) []int {
	return g.neighbors[id]
}

// IDs returns every particle id referenced by the graph, in ascending
// order.
func (g *TetherGraph) IDs() []int {
	ids := make([]int, 0, len(g.neighbors))
	for id := range g.neighbors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Square creates the four corner particles of a square debris object of
// the given side length, with the lower-left corner at (x, y), and adds
// the side and diagonal tethers to g. The corners get consecutive ids
// starting at baseID, counterclockwise from the lower-left corner. All
// four particles copy their physical properties from tmpl; anchorMass,
// if positive, overrides the mass of the first corner so the square
// pivots around a nearly immovable anchor.
func Square(g *TetherGraph, baseID int, x, y, length, stiffness float64, tmpl Particle, anchorMass float64) ([]*Particle, error) {
	corners := [4][2]float64{
		{x, y},
		{x + length, y},
		{x + length, y + length},
		{x, y + length},
	}
	particles := make([]*Particle, 4)
	for k, c := range corners {
		p := tmpl
		p.ID = baseID + k
		p.X, p.Y = c[0], c[1]
		particles[k] = &p
	}
	if anchorMass > 0 {
		particles[0].Mass = anchorMass
	}
	diagonal := length * math.Sqrt2
	links := []struct {
		a, b int
		rest float64
	}{
		{0, 1, length}, {1, 2, length}, {2, 3, length}, {3, 0, length},
		{0, 2, diagonal}, {1, 3, diagonal},
	}
	for _, l := range links {
		if err := g.Connect(baseID+l.a, baseID+l.b, l.rest, stiffness); err != nil {
			return nil, err
		}
	}
	return particles, nil
}
