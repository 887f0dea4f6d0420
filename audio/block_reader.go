// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads in a row a source may return
// before ReadBlock gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// BlockReader cuts a Source into fixed-size, deinterleaved blocks that can be
// handed to a backend's input channels one block at a time.
type BlockReader struct {
	src       Source
	blockSize int
	channels  int
	tmp       []float32
	eof       bool
}

func NewBlockReader(src Source, blockSize int) *BlockReader {
	channels := src.Channels()
	return &BlockReader{
		src:       src,
		blockSize: blockSize,
		channels:  channels,
		tmp:       make([]float32, blockSize*max(channels, 1)),
	}
}

func (r *BlockReader) BlockSize() int { return r.blockSize }
func (r *BlockReader) Channels() int  { return r.channels }

// ReadBlock fills every dst[i][:blockSize]. Source channel i goes to dst[i];
// a mono source is copied to every destination and destinations beyond the
// source's channels are zeroed. A short final block is zero padded.
//
// It returns the number of frames taken from the source, and io.EOF once the
// source is exhausted and no frames were read. A source that keeps returning
// no samples and no error yields io.ErrNoProgress.
func (r *BlockReader) ReadBlock(dst [][]float32) (int, error) {
	for i := range dst {
		if len(dst[i]) < r.blockSize {
			return 0, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrLengthMismatch, i, len(dst[i]), r.blockSize)
		}
	}
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if r.eof {
		return 0, io.EOF
	}

	want := r.blockSize * r.channels
	filled := 0
	empty := 0
	for filled < want {
		n, err := r.src.ReadSamples(r.tmp[filled:want])
		filled += n
		if err == io.EOF {
			r.eof = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading block: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			if filled == 0 {
				return 0, io.ErrNoProgress
			}
			break
		}
	}

	frames := filled / r.channels
	for i := range dst {
		out := dst[i][:r.blockSize]
		src := i
		if src >= r.channels {
			if r.channels != 1 {
				clear(out)
				continue
			}
			src = 0
		}
		for f := range frames {
			out[f] = r.tmp[f*r.channels+src]
		}
		clear(out[frames:])
	}

	if frames == 0 && r.eof {
		return 0, io.EOF
	}
	return frames, nil
}
