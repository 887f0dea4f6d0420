// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/rtsynth/audio"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns how many values
	// (not frames) it wrote.
	Read(p []float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples only ever asks the decoder for whole frames, so dst shorter
// than one frame reads nothing.
func (s *source) ReadSamples(dst []float32) (int, error) {
	whole := len(dst) - len(dst)%s.dec.Channels()
	if whole == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:whole])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() < 1 {
		return nil, audio.ErrNoChannels
	}

	return &source{dec: dec}, nil
}
