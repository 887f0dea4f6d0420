// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels = 2
	bitDepth = 16
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec     mp3Reader
	buf     []byte
	pending []byte // odd trailing byte of the previous read
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = utils.IntToFloat(int(v), bitDepth)
	}
	if n%2 == 1 {
		s.pending = append(s.pending, s.buf[n-1])
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
	return samples, err
}

// Decoder decodes MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMp3File, err)
	}

	return &source{
		dec:     dec,
		buf:     make([]byte, 8192),
		pending: make([]byte, 0, 1),
	}, nil
}
