// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"cmp"
	"maps"
	"slices"
)

// Inspection is a detached snapshot of a graph's topology and parameter
// values. Two graphs built from the same commands inspect equal.
type Inspection struct {
	Inputs  int
	Outputs int
	Nodes   []NodeInfo
	Edges   []Edge
}

// NodeInfo describes one node in an Inspection.
type NodeInfo struct {
	ID      NodeID
	Name    string
	Inputs  int
	Outputs int
	Params  map[string]float32
}

// Inspect snapshots the graph. Nodes are sorted by ID and edges by endpoint.
func (g *Graph) Inspect() Inspection {
	in := Inspection{
		Inputs:  len(g.inputs),
		Outputs: len(g.outputs),
		Nodes:   make([]NodeInfo, 0, len(g.nodes)),
		Edges:   slices.Clone(g.edges),
	}

	for _, id := range slices.Sorted(maps.Keys(g.nodes)) {
		n := g.nodes[id]
		info := NodeInfo{
			ID:      id,
			Name:    n.unit.Name(),
			Inputs:  n.unit.NumInputs(),
			Outputs: n.unit.NumOutputs(),
			Params:  make(map[string]float32, len(n.params)),
		}
		for name, p := range n.params {
			info.Params[name] = p.Get()
		}
		in.Nodes = append(in.Nodes, info)
	}

	slices.SortFunc(in.Edges, compareEdges)
	return in
}

func compareEndpoints(a, b Endpoint) int {
	if c := cmp.Compare(a.Node, b.Node); c != 0 {
		return c
	}
	return cmp.Compare(a.Port, b.Port)
}

func compareEdges(a, b Edge) int {
	if c := compareEndpoints(a.From, b.From); c != 0 {
		return c
	}
	return compareEndpoints(a.To, b.To)
}

// Node returns the info for id, if present.
func (in Inspection) Node(id NodeID) (NodeInfo, bool) {
	i, ok := slices.BinarySearchFunc(in.Nodes, id, func(n NodeInfo, id NodeID) int {
		return cmp.Compare(n.ID, id)
	})
	if !ok {
		return NodeInfo{}, false
	}
	return in.Nodes[i], true
}
