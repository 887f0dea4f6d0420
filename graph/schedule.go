// SPDX-License-Identifier: EPL-2.0

package graph

// Schedule is a compiled, immutable processing plan. It is built on the
// control side and run on the real-time side; running it does not allocate.
type Schedule struct {
	blockSize int
	steps     []step
	outs      []sum
	silence   []float32
}

type step struct {
	id   NodeID
	unit Unit
	in   [][]float32
	out  [][]float32
	sums []sum
}

// sum mixes srcs into dst, or clears dst when there are no sources.
type sum struct {
	dst  []float32
	srcs [][]float32
}

func (m *sum) run() {
	if len(m.srcs) == 0 {
		clear(m.dst)
		return
	}
	copy(m.dst, m.srcs[0])
	for _, src := range m.srcs[1:] {
		for i := range m.dst {
			m.dst[i] += src[i]
		}
	}
}

// Process advances every unit by one block in dependency order and then
// writes every graph output channel. Outputs with no connection are cleared.
func (s *Schedule) Process() {
	for i := range s.steps {
		st := &s.steps[i]
		for j := range st.sums {
			st.sums[j].run()
		}
		st.unit.Process(st.in, st.out)
	}
	for i := range s.outs {
		s.outs[i].run()
	}
}

// Len returns the number of scheduled units.
func (s *Schedule) Len() int { return len(s.steps) }

// Order returns the node IDs in processing order.
func (s *Schedule) Order() []NodeID {
	ids := make([]NodeID, len(s.steps))
	for i := range s.steps {
		ids[i] = s.steps[i].id
	}
	return ids
}
