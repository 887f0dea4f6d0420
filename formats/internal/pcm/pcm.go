// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/rtsynth/utils"
)

const defaultBufSize = 4096

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads integer PCM through a Reader and normalises it to float32.
type Source struct {
	r        Reader
	format   *goaudio.Format
	bitDepth int
	buf      *goaudio.IntBuffer
	eof      bool
}

// NewSource wraps r. bitDepth is the depth of the stored samples and selects
// the normalisation scale.
func NewSource(r Reader, format *goaudio.Format, bitDepth int) *Source {
	return &Source{
		r:        r,
		format:   format,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, defaultBufSize),
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

// ReadSamples fills dst with interleaved samples in [-1, 1). A short read
// with a nil error is not the end of the stream; io.EOF is returned once the
// decoder has nothing left.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = utils.IntToFloat(s.buf.Data[i], s.bitDepth)
	}

	switch {
	case err == io.EOF || (err == nil && n == 0):
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	case err != nil:
		return n, fmt.Errorf("reading pcm: %w", err)
	}
	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it is
// not one already. The go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
