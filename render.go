// SPDX-License-Identifier: EPL-2.0

package rtsynth

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/ik5/rtsynth/audio"
)

// Render drives b offline, the way an audio driver would, and collects the
// output channels into a Clip. Queued edits are applied once before the first
// block.
//
// When src is not nil its channels feed the backend inputs block by block
// (see audio.BlockReader) and its rate must equal the backend rate. frames
// bounds the length of the result; with frames <= 0 rendering stops when src
// is exhausted. Once src runs out before frames is reached, the inputs are
// silent.
func Render(b *Backend, src audio.Source, frames int) (*audio.Clip, error) {
	if b.NumOutputs() == 0 {
		return nil, fmt.Errorf("%w: nothing to render without outputs", ErrInvalidChannelCount)
	}
	if src == nil && frames <= 0 {
		return nil, fmt.Errorf("%w: need a source or a frame count", ErrNothingToRender)
	}

	var reader *audio.BlockReader
	if src != nil {
		if float64(src.SampleRate()) != b.SampleRate() {
			return nil, fmt.Errorf("%w: source %d Hz, backend %v Hz", ErrSampleRateMismatch, src.SampleRate(), b.SampleRate())
		}
		reader = audio.NewBlockReader(src, b.BlockSize())
	}

	b.Update()

	bs := b.BlockSize()
	in := make([][]float32, b.NumInputs())
	for i := range in {
		in[i] = make([]float32, bs)
	}

	out := make([][]float32, b.NumOutputs())
	for i := range out {
		out[i] = make([]float32, 0, max(frames, 0))
	}

	total := 0
	for frames <= 0 || total < frames {
		valid := bs
		if reader != nil {
			n, err := reader.ReadBlock(in)
			switch {
			case errors.Is(err, io.EOF):
				reader = nil
				if frames <= 0 {
					return collect(b, out), nil
				}
				for i := range in {
					clear(in[i])
				}
			case err != nil:
				return nil, fmt.Errorf("rendering block %d: %w", b.Generation(), err)
			case frames <= 0:
				valid = n
			}
		}
		if frames > 0 {
			valid = min(valid, frames-total)
		}

		for i := range in {
			b.SetInputChannel(i, in[i])
		}
		b.ProcessBlock()

		for i := range out {
			v := b.OutputChannel(i)
			start := len(out[i])
			out[i] = slices.Grow(out[i], valid)[:start+valid]
			v.CopyTo(out[i][start:])
		}
		total += valid
	}

	return collect(b, out), nil
}

func collect(b *Backend, channels [][]float32) *audio.Clip {
	return &audio.Clip{
		SampleRate: int(math.Round(b.SampleRate())),
		Channels:   channels,
	}
}
