// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/formats/internal/pcm"
)

// Decoder reads uncompressed AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return pcm.NewSource(dec, format, int(dec.BitDepth)), nil
}
