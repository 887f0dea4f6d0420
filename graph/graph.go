// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"slices"
)

// Edge is a connection from a source endpoint to a destination endpoint.
type Edge struct {
	From Endpoint
	To   Endpoint
}

type node struct {
	id      NodeID
	unit    Unit
	outputs [][]float32
	params  map[string]*Param
}

// Graph is the control-side model of the synthesis topology. It is edited
// with Apply and turned into an immutable Schedule with Compile. A Graph is
// not safe for concurrent use; the owner serialises access.
type Graph struct {
	sampleRate float64
	blockSize  int

	inputs  [][]float32
	outputs [][]float32

	nodes map[NodeID]*node
	edges []Edge
	dirty bool
}

// New creates an empty graph bound to the given channel storage. inputs are
// read as graph input channels, outputs are written as graph output channels;
// every slice must be blockSize long.
func New(sampleRate float64, blockSize int, inputs, outputs [][]float32) *Graph {
	return &Graph{
		sampleRate: sampleRate,
		blockSize:  blockSize,
		inputs:     inputs,
		outputs:    outputs,
		nodes:      make(map[NodeID]*node),
		dirty:      true,
	}
}

// Dirty reports whether the topology changed since the last Compile.
func (g *Graph) Dirty() bool { return g.dirty }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Apply performs one command. A failed command leaves the graph unchanged.
func (g *Graph) Apply(c Command) error {
	switch c.Op {
	case OpAdd:
		return g.add(c.Node, c.Unit)
	case OpRemove:
		return g.remove(c.Node)
	case OpConnect:
		return g.connect(c.From, c.To)
	case OpDisconnect:
		return g.disconnect(c.From, c.To)
	case OpSetParam:
		return g.setParam(c.Node, c.Param, c.Value)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownOp, c.Op)
	}
}

func (g *Graph) add(id NodeID, u Unit) error {
	if id == GraphIO || u == nil {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}

	u.Prepare(g.sampleRate, g.blockSize)

	n := &node{
		id:      id,
		unit:    u,
		outputs: make([][]float32, u.NumOutputs()),
		params:  make(map[string]*Param),
	}
	for i := range n.outputs {
		n.outputs[i] = make([]float32, g.blockSize)
	}
	if p, ok := u.(Parameterized); ok {
		for _, param := range p.Params() {
			n.params[param.Name()] = param
		}
	}

	g.nodes[id] = n
	g.dirty = true
	return nil
}

func (g *Graph) remove(id NodeID) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}

	delete(g.nodes, id)
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.From.Node == id || e.To.Node == id
	})
	g.dirty = true
	return nil
}

func (g *Graph) connect(from, to Endpoint) error {
	if err := g.checkSource(from); err != nil {
		return err
	}
	if err := g.checkDestination(to); err != nil {
		return err
	}

	e := Edge{From: from, To: to}
	if slices.Contains(g.edges, e) {
		return nil
	}
	if from.Node != GraphIO && to.Node != GraphIO && g.reaches(to.Node, from.Node) {
		return fmt.Errorf("%w: %s -> %s", ErrCycle, from, to)
	}

	g.edges = append(g.edges, e)
	g.dirty = true
	return nil
}

func (g *Graph) disconnect(from, to Endpoint) error {
	i := slices.Index(g.edges, Edge{From: from, To: to})
	if i < 0 {
		return fmt.Errorf("%w: %s -> %s", ErrNotConnected, from, to)
	}

	g.edges = slices.Delete(g.edges, i, i+1)
	g.dirty = true
	return nil
}

func (g *Graph) setParam(id NodeID, name string, v float32) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	p, ok := n.params[name]
	if !ok {
		return fmt.Errorf("%w: %d.%s", ErrUnknownParameter, id, name)
	}

	p.Set(v)
	return nil
}

func (g *Graph) checkSource(e Endpoint) error {
	if e.Node == GraphIO {
		if e.Port < 0 || e.Port >= len(g.inputs) {
			return fmt.Errorf("%w: graph input %d of %d", ErrPortOutOfRange, e.Port, len(g.inputs))
		}
		return nil
	}

	n, ok := g.nodes[e.Node]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, e.Node)
	}
	if e.Port < 0 || e.Port >= n.unit.NumOutputs() {
		return fmt.Errorf("%w: output %d of node %d", ErrPortOutOfRange, e.Port, e.Node)
	}
	return nil
}

func (g *Graph) checkDestination(e Endpoint) error {
	if e.Node == GraphIO {
		if e.Port < 0 || e.Port >= len(g.outputs) {
			return fmt.Errorf("%w: graph output %d of %d", ErrPortOutOfRange, e.Port, len(g.outputs))
		}
		return nil
	}

	n, ok := g.nodes[e.Node]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, e.Node)
	}
	if e.Port < 0 || e.Port >= n.unit.NumInputs() {
		return fmt.Errorf("%w: input %d of node %d", ErrPortOutOfRange, e.Port, e.Node)
	}
	return nil
}

// reaches reports whether target is downstream of start (or is start).
func (g *Graph) reaches(start, target NodeID) bool {
	seen := map[NodeID]bool{start: true}
	stack := []NodeID{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		for _, e := range g.edges {
			next := e.To.Node
			if e.From.Node == cur && next != GraphIO && !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// order returns the node IDs in a topological order. Ties are broken by
// ascending ID so equal graphs always compile to the same schedule.
func (g *Graph) order() []NodeID {
	indegree := make(map[NodeID]int, len(g.nodes))
	for id := range g.nodes {
		indegree[id] = 0
	}
	for _, e := range g.edges {
		if e.From.Node != GraphIO && e.To.Node != GraphIO {
			indegree[e.To.Node]++
		}
	}

	var ready []NodeID
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}

	out := make([]NodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		slices.Sort(ready)
		cur := ready[0]
		ready = ready[1:]
		out = append(out, cur)

		for _, e := range g.edges {
			if e.From.Node != cur || e.To.Node == GraphIO {
				continue
			}
			indegree[e.To.Node]--
			if indegree[e.To.Node] == 0 {
				ready = append(ready, e.To.Node)
			}
		}
	}
	return out
}

// Compile builds a Schedule for the current topology and clears the dirty
// flag. The schedule shares units and node output buffers with the graph, so
// unit state carries over from the previous schedule.
func (g *Graph) Compile() *Schedule {
	s := &Schedule{
		blockSize: g.blockSize,
		silence:   make([]float32, g.blockSize),
	}

	for _, id := range g.order() {
		n := g.nodes[id]
		st := step{
			id:   id,
			unit: n.unit,
			in:   make([][]float32, n.unit.NumInputs()),
			out:  n.outputs,
		}
		for port := range st.in {
			srcs := g.sources(Port(id, port))
			switch len(srcs) {
			case 0:
				st.in[port] = s.silence
			case 1:
				st.in[port] = srcs[0]
			default:
				scratch := make([]float32, g.blockSize)
				st.in[port] = scratch
				st.sums = append(st.sums, sum{dst: scratch, srcs: srcs})
			}
		}
		s.steps = append(s.steps, st)
	}

	for ch, dst := range g.outputs {
		s.outs = append(s.outs, sum{dst: dst, srcs: g.sources(Output(ch))})
	}

	g.dirty = false
	return s
}

func (g *Graph) sources(to Endpoint) [][]float32 {
	var srcs [][]float32
	for _, e := range g.edges {
		if e.To != to {
			continue
		}
		if e.From.Node == GraphIO {
			srcs = append(srcs, g.inputs[e.From.Port])
			continue
		}
		srcs = append(srcs, g.nodes[e.From.Node].outputs[e.From.Port])
	}
	return srcs
}
