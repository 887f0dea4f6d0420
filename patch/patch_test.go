// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echoPatch = `
units:
  - name: osc
    kind: sine
    params:
      freq: 220
      amp: 0.3
  - name: echo
    kind: delay
    max_delay: 1.5
    params:
      time: 0.375
      feedback: 0.4
connections:
  - from: osc
    to: echo
  - from: "echo:0"
    to: "out:0"
  - from: "in:1"
    to: echo
`

func TestParse(t *testing.T) {
	t.Parallel()

	p, err := Parse([]byte(echoPatch))
	require.NoError(t, err)

	require.Len(t, p.Units, 2)
	assert.Equal(t, UnitSpec{
		Name:     "echo",
		Kind:     "delay",
		MaxDelay: 1.5,
		Params:   map[string]float32{"time": 0.375, "feedback": 0.4},
	}, p.Units[1])
	assert.Equal(t, []Connection{
		{From: "osc", To: "echo"},
		{From: "echo:0", To: "out:0"},
		{From: "in:1", To: "echo"},
	}, p.Connections)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	p, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Units)
	assert.Empty(t, p.Connections)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not yaml", "units: [", ErrInvalidPatch},
		{"unknown field", "units:\n  - name: a\n    kind: sine\n    colour: red\n", ErrInvalidPatch},
		{"no name", "units:\n  - kind: sine\n", ErrInvalidPatch},
		{"no kind", "units:\n  - name: a\n", ErrInvalidPatch},
		{"colon in name", "units:\n  - name: 'a:b'\n    kind: sine\n", ErrInvalidPatch},
		{"reserved", "units:\n  - name: out\n    kind: sine\n", ErrReservedName},
		{"duplicate", "units:\n  - {name: a, kind: sine}\n  - {name: a, kind: gain}\n", ErrDuplicateName},
		{"unknown source", "connections:\n  - {from: ghost, to: 'out:0'}\n", ErrUnknownUnit},
		{"unknown destination", "units:\n  - {name: a, kind: sine}\nconnections:\n  - {from: a, to: ghost}\n", ErrUnknownUnit},
		{"output as source", "connections:\n  - {from: 'out:0', to: 'out:1'}\n", ErrBadEndpoint},
		{"input as destination", "connections:\n  - {from: 'in:0', to: 'in:1'}\n", ErrBadEndpoint},
		{"bad port", "connections:\n  - {from: 'in:x', to: 'out:0'}\n", ErrBadEndpoint},
		{"negative port", "connections:\n  - {from: 'in:-1', to: 'out:0'}\n", ErrBadEndpoint},
		{"empty endpoint", "connections:\n  - {from: '', to: 'out:0'}\n", ErrBadEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_SetsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "echo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(echoPatch), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, p.Dir)
	assert.Len(t, p.Units, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_ParsesBack(t *testing.T) {
	t.Parallel()

	p, err := Parse([]byte(echoPatch))
	require.NoError(t, err)

	data, err := p.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, p.Units, again.Units)
	assert.Equal(t, p.Connections, again.Connections)
}
