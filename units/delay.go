// SPDX-License-Identifier: EPL-2.0

package units

import (
	"math"

	"github.com/ik5/rtsynth/graph"
	"github.com/ik5/rtsynth/utils"
)

// Delay is a single-channel fractional delay line with feedback.
//
// "time" is the delay in seconds (up to the maximum given at construction),
// "feedback" is the amount of the delayed signal fed back into the line and
// "mix" blends dry (0) and wet (1). Delay time changes are ramped across one
// block, and the read position is interpolated with Catmull-Rom, so sweeping
// the time does not click.
type Delay struct {
	maxTime  float64
	time     *graph.Param
	feedback *graph.Param
	mix      *graph.Param

	line       []float32
	write      int
	current    float64 // delay in samples used at the end of the last block
	sampleRate float64
}

func NewDelay(maxTime float64, time float32) *Delay {
	maxTime = math.Max(maxTime, 0.001)
	return &Delay{
		maxTime:  maxTime,
		time:     graph.NewParam("time", time, 0, float32(maxTime)),
		feedback: graph.NewParam("feedback", 0, 0, 0.99),
		mix:      graph.NewParam("mix", 1, 0, 1),
	}
}

func (d *Delay) Name() string           { return "delay" }
func (d *Delay) NumInputs() int         { return 1 }
func (d *Delay) NumOutputs() int        { return 1 }
func (d *Delay) Params() []*graph.Param { return []*graph.Param{d.time, d.feedback, d.mix} }

func (d *Delay) Prepare(sampleRate float64, blockSize int) {
	d.sampleRate = sampleRate
	// Room for the longest delay plus the interpolation neighbours
	d.line = make([]float32, int(math.Ceil(d.maxTime*sampleRate))+blockSize+4)
	d.write = 0
	d.current = float64(d.time.Get()) * sampleRate
}

func (d *Delay) Process(in, out [][]float32) {
	src, dst := in[0], out[0]
	n := len(dst)

	target := float64(d.time.Get()) * d.sampleRate
	step := (target - d.current) / float64(n)
	fb := d.feedback.Get()
	wet := d.mix.Get()
	dry := 1 - wet

	delay := d.current
	for i := range dst {
		delay += step

		// Interpolating delays under two samples reads this slot, so it
		// must already hold the current input.
		d.line[d.write] = src[i]

		var delayed float32
		if delay < 1 {
			// Shorter than one sample: blend towards the dry input
			prev := d.line[(d.write-1+len(d.line))%len(d.line)]
			delayed = prev + float32(1-delay)*(src[i]-prev)
		} else {
			delayed = utils.CubicAtRing(d.line, float64(d.write)-delay)
		}

		d.line[d.write] += delayed * fb
		d.write++
		if d.write == len(d.line) {
			d.write = 0
		}

		dst[i] = src[i]*dry + delayed*wet
	}
	d.current = target
}
