// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/rtsynth/utils"
)

// Clip is a fully decoded piece of audio held as one slice per channel.
// Clips are built on the control side (they allocate) and handed to units
// such as a sample player.
type Clip struct {
	SampleRate int
	Channels   [][]float32
}

// NewClip allocates a silent clip.
func NewClip(sampleRate, channels, frames int) *Clip {
	c := &Clip{SampleRate: sampleRate, Channels: make([][]float32, channels)}
	for i := range c.Channels {
		c.Channels[i] = make([]float32, frames)
	}
	return c
}

// Frames is the length of the clip in samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Duration in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.SampleRate)
}

// ReadClip drains src into a Clip. src is not closed.
func ReadClip(src Source) (*Clip, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	clip := &Clip{SampleRate: src.SampleRate(), Channels: make([][]float32, channels)}
	buf := make([]float32, bufSize)
	carry := 0

	for {
		n, err := src.ReadSamples(buf[carry:])
		n += carry
		frames := n / channels
		for f := range frames {
			base := f * channels
			for c := range channels {
				clip.Channels[c] = append(clip.Channels[c], buf[base+c])
			}
		}

		// Keep a trailing partial frame for the next read
		carry = copy(buf, buf[frames*channels:n])

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading clip: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return clip, nil
}

// Mono averages all channels into a single-channel clip.
func (c *Clip) Mono() *Clip {
	if len(c.Channels) == 1 {
		return c
	}

	frames := c.Frames()
	out := NewClip(c.SampleRate, 1, frames)
	dst := out.Channels[0]

	switch len(c.Channels) {
	case 0:
	case 2:
		l, r := c.Channels[0], c.Channels[1]
		for f := range frames {
			dst[f] = (l[f] + r[f]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(len(c.Channels))
		for _, ch := range c.Channels {
			for f := range frames {
				dst[f] += ch[f]
			}
		}
		for f := range frames {
			dst[f] *= inv
		}
	}

	return out
}

// Resample converts the clip to rate using Catmull-Rom interpolation.
// When downsampling a one-pole low-pass is applied first to tame aliasing.
func (c *Clip) Resample(rate int) (*Clip, error) {
	if rate <= 0 || c.SampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	if rate == c.SampleRate {
		return c, nil
	}

	ratio := float64(c.SampleRate) / float64(rate)
	frames := int(math.Round(float64(c.Frames()) / ratio))
	out := NewClip(rate, len(c.Channels), frames)

	for ch, src := range c.Channels {
		if ratio > 1.0 {
			src = lowPass(src, 0.5)
		}
		dst := out.Channels[ch]
		for f := range dst {
			dst[f] = utils.CubicAt(src, float64(f)*ratio)
		}
	}

	return out, nil
}

// Interleave returns the clip as interleaved frames.
func (c *Clip) Interleave() []float32 {
	channels := len(c.Channels)
	frames := c.Frames()
	out := make([]float32, frames*channels)
	for f := range frames {
		for ch := range channels {
			out[f*channels+ch] = c.Channels[ch][f]
		}
	}
	return out
}

func lowPass(src []float32, alpha float32) []float32 {
	out := make([]float32, len(src))
	var state float32
	for i, x := range src {
		state = alpha*x + (1-alpha)*state
		out[i] = state
	}
	return out
}

// Source streams the clip back as interleaved samples. Each call returns an
// independent reader positioned at the first frame.
func (c *Clip) Source() Source {
	return &clipSource{clip: c}
}

type clipSource struct {
	clip *Clip
	pos  int
}

func (s *clipSource) SampleRate() int { return s.clip.SampleRate }
func (s *clipSource) Channels() int   { return len(s.clip.Channels) }
func (s *clipSource) BufSize() int    { return 4096 }
func (s *clipSource) Close() error    { return nil }

func (s *clipSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.clip.Channels)
	if channels == 0 {
		return 0, ErrNoChannels
	}

	remaining := s.clip.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for ch := range channels {
			dst[f*channels+ch] = s.clip.Channels[ch][s.pos+f]
		}
	}
	s.pos += frames
	return frames * channels, nil
}
