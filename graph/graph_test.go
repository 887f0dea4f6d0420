// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scaleUnit multiplies its single input by a parameter.
type scaleUnit struct {
	factor   *Param
	prepared bool
}

func newScale(f float32) *scaleUnit {
	return &scaleUnit{factor: NewParam("factor", f, -100, 100)}
}

func (u *scaleUnit) Name() string                       { return "scale" }
func (u *scaleUnit) NumInputs() int                     { return 1 }
func (u *scaleUnit) NumOutputs() int                    { return 1 }
func (u *scaleUnit) Prepare(sampleRate float64, bs int) { u.prepared = true }
func (u *scaleUnit) Params() []*Param                   { return []*Param{u.factor} }
func (u *scaleUnit) Process(in, out [][]float32) {
	f := u.factor.Get()
	for i, v := range in[0] {
		out[0][i] = v * f
	}
}

// counterUnit emits the number of blocks it has processed.
type counterUnit struct {
	blocks float32
}

func (u *counterUnit) Name() string         { return "counter" }
func (u *counterUnit) NumInputs() int       { return 0 }
func (u *counterUnit) NumOutputs() int      { return 1 }
func (u *counterUnit) Prepare(float64, int) {}
func (u *counterUnit) Process(_, out [][]float32) {
	u.blocks++
	for i := range out[0] {
		out[0][i] = u.blocks
	}
}

func newTestGraph(blockSize, ins, outs int) (*Graph, [][]float32, [][]float32) {
	inputs := make([][]float32, ins)
	for i := range inputs {
		inputs[i] = make([]float32, blockSize)
	}
	outputs := make([][]float32, outs)
	for i := range outputs {
		outputs[i] = make([]float32, blockSize)
	}
	return New(48000, blockSize, inputs, outputs), inputs, outputs
}

func TestGraph_AddPreparesUnit(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	u := newScale(2)

	require.NoError(t, g.Apply(Add(1, u)))
	assert.True(t, u.prepared)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Dirty())
}

func TestGraph_ApplyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"add graph io id", Add(GraphIO, newScale(1)), ErrInvalidNode},
		{"add nil unit", Add(5, nil), ErrInvalidNode},
		{"add duplicate", Add(1, newScale(1)), ErrDuplicateNode},
		{"remove unknown", Remove(42), ErrUnknownNode},
		{"connect unknown source", Connect(Port(42, 0), Output(0)), ErrUnknownNode},
		{"connect unknown destination", Connect(Input(0), Port(42, 0)), ErrUnknownNode},
		{"connect bad graph input", Connect(Input(3), Port(1, 0)), ErrPortOutOfRange},
		{"connect bad graph output", Connect(Port(1, 0), Output(3)), ErrPortOutOfRange},
		{"connect bad node output", Connect(Port(1, 1), Output(0)), ErrPortOutOfRange},
		{"connect bad node input", Connect(Input(0), Port(1, -1)), ErrPortOutOfRange},
		{"self loop", Connect(Port(1, 0), Port(1, 0)), ErrCycle},
		{"disconnect missing", Disconnect(Input(0), Output(0)), ErrNotConnected},
		{"set unknown node", SetParam(42, "factor", 1), ErrUnknownNode},
		{"set unknown param", SetParam(1, "nope", 1), ErrUnknownParameter},
		{"unknown op", Command{Op: 99}, ErrUnknownOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, _, _ := newTestGraph(4, 1, 1)
			require.NoError(t, g.Apply(Add(1, newScale(1))))
			before := g.Inspect()

			err := g.Apply(tt.cmd)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, g.Inspect(), "failed command must not change the graph")
		})
	}
}

func TestGraph_RejectsCycles(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	for id := NodeID(1); id <= 3; id++ {
		require.NoError(t, g.Apply(Add(id, newScale(1))))
	}
	require.NoError(t, g.Apply(Connect(Port(1, 0), Port(2, 0))))
	require.NoError(t, g.Apply(Connect(Port(2, 0), Port(3, 0))))

	assert.ErrorIs(t, g.Apply(Connect(Port(3, 0), Port(1, 0))), ErrCycle)
}

func TestGraph_ConnectIsIdempotent(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	require.NoError(t, g.Apply(Connect(Input(0), Output(0))))
	require.NoError(t, g.Apply(Connect(Input(0), Output(0))))
	assert.Len(t, g.Inspect().Edges, 1)
}

func TestGraph_RemoveDropsEdges(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	require.NoError(t, g.Apply(Add(1, newScale(1))))
	require.NoError(t, g.Apply(Connect(Input(0), Port(1, 0))))
	require.NoError(t, g.Apply(Connect(Port(1, 0), Output(0))))

	require.NoError(t, g.Apply(Remove(1)))
	in := g.Inspect()
	assert.Empty(t, in.Nodes)
	assert.Empty(t, in.Edges)
}

func TestGraph_SetParamDoesNotDirty(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	u := newScale(1)
	require.NoError(t, g.Apply(Add(1, u)))
	g.Compile()

	require.NoError(t, g.Apply(SetParam(1, "factor", 3)))
	assert.False(t, g.Dirty())
	assert.Equal(t, float32(3), u.factor.Get())
}

func TestGraph_CompileOrder(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	// Added in reverse of their processing order
	require.NoError(t, g.Apply(Add(3, newScale(1))))
	require.NoError(t, g.Apply(Add(2, newScale(1))))
	require.NoError(t, g.Apply(Add(1, newScale(1))))
	require.NoError(t, g.Apply(Connect(Port(3, 0), Port(2, 0))))
	require.NoError(t, g.Apply(Connect(Port(2, 0), Port(1, 0))))

	s := g.Compile()
	assert.Equal(t, []NodeID{3, 2, 1}, s.Order())
	assert.Equal(t, 3, s.Len())
	assert.False(t, g.Dirty())
}

func TestInspection_Node(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGraph(4, 1, 1)
	require.NoError(t, g.Apply(Add(7, newScale(0.5))))

	in := g.Inspect()
	info, ok := in.Node(7)
	require.True(t, ok)
	assert.Equal(t, "scale", info.Name)
	assert.Equal(t, float32(0.5), info.Params["factor"])

	_, ok = in.Node(8)
	assert.False(t, ok)
}
