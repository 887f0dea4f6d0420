// SPDX-License-Identifier: EPL-2.0

package units

import (
	"math"

	"github.com/ik5/rtsynth/graph"
)

// Sine is a sine oscillator with "freq" (Hz) and "amp" parameters.
// Phase is kept in float64 so long runs do not drift audibly.
type Sine struct {
	freq *graph.Param
	amp  *graph.Param

	phase      float64
	sampleRate float64
}

func NewSine(freq, amp float32) *Sine {
	return &Sine{
		freq: graph.NewParam("freq", freq, 0, 96000),
		amp:  graph.NewParam("amp", amp, 0, 16),
	}
}

func (s *Sine) Name() string           { return "sine" }
func (s *Sine) NumInputs() int         { return 0 }
func (s *Sine) NumOutputs() int        { return 1 }
func (s *Sine) Params() []*graph.Param { return []*graph.Param{s.freq, s.amp} }

func (s *Sine) Prepare(sampleRate float64, _ int) {
	s.sampleRate = sampleRate
}

func (s *Sine) Process(_, out [][]float32) {
	step := float64(s.freq.Get()) / s.sampleRate
	amp := s.amp.Get()

	for i := range out[0] {
		out[0][i] = amp * float32(math.Sin(2*math.Pi*s.phase))
		s.phase += step
		if s.phase >= 1 {
			s.phase -= math.Floor(s.phase)
		}
	}
}
