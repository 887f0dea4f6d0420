// SPDX-License-Identifier: EPL-2.0

package units

import (
	"fmt"

	"github.com/ik5/rtsynth/graph"
)

// Passthrough copies each input to the output with the same index.
type Passthrough struct {
	channels int
}

func NewPassthrough(channels int) *Passthrough {
	return &Passthrough{channels: max(channels, 1)}
}

func (p *Passthrough) Name() string         { return fmt.Sprintf("passthrough(%d)", p.channels) }
func (p *Passthrough) NumInputs() int       { return p.channels }
func (p *Passthrough) NumOutputs() int      { return p.channels }
func (p *Passthrough) Prepare(float64, int) {}

func (p *Passthrough) Process(in, out [][]float32) {
	for ch := range out {
		copy(out[ch], in[ch])
	}
}

// Gain scales every channel by the "gain" parameter.
type Gain struct {
	channels int
	gain     *graph.Param
}

func NewGain(channels int, gain float32) *Gain {
	return &Gain{
		channels: max(channels, 1),
		gain:     graph.NewParam("gain", gain, -16, 16),
	}
}

func (g *Gain) Name() string           { return "gain" }
func (g *Gain) NumInputs() int         { return g.channels }
func (g *Gain) NumOutputs() int        { return g.channels }
func (g *Gain) Prepare(float64, int)   {}
func (g *Gain) Params() []*graph.Param { return []*graph.Param{g.gain} }

func (g *Gain) Process(in, out [][]float32) {
	k := g.gain.Get()
	for ch := range out {
		src, dst := in[ch], out[ch]
		for i := range dst {
			dst[i] = src[i] * k
		}
	}
}

// Constant outputs the "value" parameter on every sample. Useful as a DC
// offset or as a control signal feeding another unit's input.
type Constant struct {
	value *graph.Param
}

func NewConstant(v float32) *Constant {
	return &Constant{value: graph.NewParam("value", v, -1e6, 1e6)}
}

func (c *Constant) Name() string           { return "constant" }
func (c *Constant) NumInputs() int         { return 0 }
func (c *Constant) NumOutputs() int        { return 1 }
func (c *Constant) Prepare(float64, int)   {}
func (c *Constant) Params() []*graph.Param { return []*graph.Param{c.value} }

func (c *Constant) Process(_, out [][]float32) {
	v := c.value.Get()
	for i := range out[0] {
		out[0][i] = v
	}
}

// Mix averages its inputs into one output.
type Mix struct {
	inputs int
}

func NewMix(inputs int) *Mix {
	return &Mix{inputs: max(inputs, 1)}
}

func (m *Mix) Name() string         { return fmt.Sprintf("mix(%d)", m.inputs) }
func (m *Mix) NumInputs() int       { return m.inputs }
func (m *Mix) NumOutputs() int      { return 1 }
func (m *Mix) Prepare(float64, int) {}

func (m *Mix) Process(in, out [][]float32) {
	dst := out[0]

	switch m.inputs {
	case 1:
		copy(dst, in[0])
	case 2: // Stereo (most common)
		l, r := in[0], in[1]
		for i := range dst {
			dst[i] = (l[i] + r[i]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(m.inputs)
		copy(dst, in[0])
		for _, src := range in[1:] {
			for i := range dst {
				dst[i] += src[i]
			}
		}
		for i := range dst {
			dst[i] *= inv
		}
	}
}
