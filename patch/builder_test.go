// SPDX-License-Identifier: EPL-2.0

package patch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/rtsynth"
	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/formats/wav"
	"github.com/ik5/rtsynth/graph"
	"github.com/ik5/rtsynth/internal/audiotest"
	"github.com/ik5/rtsynth/patch"
	"github.com/ik5/rtsynth/units"
)

// recorder is a patch.Target that keeps the edits it receives.
type recorder struct {
	units []graph.Unit
	edges []graph.Edge
}

func (r *recorder) AddUnit(u graph.Unit) (graph.NodeID, error) {
	r.units = append(r.units, u)
	return graph.NodeID(len(r.units) * 10), nil
}

func (r *recorder) Connect(from, to graph.Endpoint) error {
	r.edges = append(r.edges, graph.Edge{From: from, To: to})
	return nil
}

func TestBuilder_QueuesUnitsThenConnections(t *testing.T) {
	t.Parallel()

	p := &patch.Patch{
		Units: []patch.UnitSpec{
			{Name: "dc", Kind: "constant", Params: map[string]float32{"value": 0.25}},
			{Name: "amp", Kind: "Gain", Channels: 1, Params: map[string]float32{"gain": 2}},
		},
		Connections: []patch.Connection{
			{From: "dc", To: "amp"},
			{From: "amp", To: "out:1"},
			{From: "in:0", To: "out:0"},
		},
	}

	var r recorder
	ids, err := patch.NewBuilder().Apply(p, &r)
	require.NoError(t, err)

	assert.Equal(t, map[string]graph.NodeID{"dc": 10, "amp": 20}, ids)
	require.Len(t, r.units, 2)
	assert.Equal(t, "constant", r.units[0].Name())
	assert.Equal(t, "gain", r.units[1].Name())
	assert.Equal(t, []graph.Edge{
		{From: graph.Port(10, 0), To: graph.Port(20, 0)},
		{From: graph.Port(20, 0), To: graph.Output(1)},
		{From: graph.Input(0), To: graph.Output(0)},
	}, r.edges)
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec patch.UnitSpec
		want error
	}{
		{"unknown kind", patch.UnitSpec{Name: "x", Kind: "theremin"}, units.ErrUnknownKind},
		{"unknown param", patch.UnitSpec{Name: "x", Kind: "sine", Params: map[string]float32{"colour": 1}}, graph.ErrUnknownParameter},
		{"player without file", patch.UnitSpec{Name: "x", Kind: "player"}, units.ErrMissingClip},
		{"unsupported file", patch.UnitSpec{Name: "x", Kind: "player", File: "x.mid"}, audio.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r recorder
			_, err := patch.NewBuilder().Apply(&patch.Patch{Units: []patch.UnitSpec{tt.spec}}, &r)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, r.units)
		})
	}
}

func TestBuilder_DrivesBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// A one-second clip holding 0.5 everywhere, next to the patch file.
	clip := audio.NewClip(8000, 1, 8000)
	copy(clip.Channels[0], audiotest.Constant(8000, 0.5))
	f, err := os.Create(filepath.Join(dir, "dc.wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, clip, 16))
	require.NoError(t, f.Close())

	doc := `
units:
  - name: sample
    kind: player
    file: dc.wav
    loop: true
  - name: half
    kind: gain
    channels: 1
    params:
      gain: 0.5
connections:
  - from: sample
    to: half
  - from: half
    to: "out:0"
  - from: "in:0"
    to: "out:1"
`
	path := filepath.Join(dir, "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	p, err := patch.Load(path)
	require.NoError(t, err)

	b, err := rtsynth.New(8000, 64, 1, 2)
	require.NoError(t, err)
	defer b.Close()

	ids, err := patch.NewBuilder().Apply(p, b)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	b.Update()
	require.NoError(t, b.NextError())
	assert.Len(t, b.Inspect().Edges, 3)

	b.SetInputChannel(0, audiotest.Block(0, 64, 0))
	b.ProcessBlock()

	out := make([]float32, 64)
	b.OutputChannel(0).CopyTo(out)
	for i, v := range out {
		require.InDelta(t, 0.25, v, 1e-3, "sample %d", i)
	}
	b.OutputChannel(1).CopyTo(out)
	assert.Equal(t, audiotest.Block(0, 64, 0), out)
}
