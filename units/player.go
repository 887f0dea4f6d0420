// SPDX-License-Identifier: EPL-2.0

package units

import (
	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/graph"
	"github.com/ik5/rtsynth/utils"
)

// Player plays an audio.Clip, one output per clip channel.
//
// "speed" scales the playback rate (1 is the clip's natural pitch, after
// accounting for any difference between the clip and engine rates), "gain"
// scales the output and "loop" (0 or 1) wraps around at the end instead of
// falling silent.
type Player struct {
	clip  *audio.Clip
	speed *graph.Param
	gain  *graph.Param
	loop  *graph.Param

	pos      float64
	rateStep float64
}

func NewPlayer(clip *audio.Clip, loop bool) *Player {
	l := float32(0)
	if loop {
		l = 1
	}
	return &Player{
		clip:  clip,
		speed: graph.NewParam("speed", 1, 0, 8),
		gain:  graph.NewParam("gain", 1, 0, 16),
		loop:  graph.NewParam("loop", l, 0, 1),
	}
}

func (p *Player) Name() string           { return "player" }
func (p *Player) NumInputs() int         { return 0 }
func (p *Player) NumOutputs() int        { return max(len(p.clip.Channels), 1) }
func (p *Player) Params() []*graph.Param { return []*graph.Param{p.speed, p.gain, p.loop} }

func (p *Player) Prepare(sampleRate float64, _ int) {
	p.rateStep = 1
	if p.clip.SampleRate > 0 {
		p.rateStep = float64(p.clip.SampleRate) / sampleRate
	}
}

func (p *Player) Process(_, out [][]float32) {
	frames := float64(p.clip.Frames())
	if frames == 0 || len(p.clip.Channels) == 0 {
		for ch := range out {
			clear(out[ch])
		}
		return
	}

	step := p.rateStep * float64(p.speed.Get())
	gain := p.gain.Get()
	loop := p.loop.Get() >= 0.5

	for i := range out[0] {
		if p.pos >= frames {
			if !loop {
				for ch := range out {
					clear(out[ch][i:])
				}
				return
			}
			p.pos -= frames
		}
		for ch := range out {
			out[ch][i] = gain * utils.CubicAt(p.clip.Channels[ch], p.pos)
		}
		p.pos += step
	}
}

// Rewind restarts playback from the beginning on the next block.
// It is not synchronised with Process; call it only while the player is not
// scheduled.
func (p *Player) Rewind() { p.pos = 0 }
