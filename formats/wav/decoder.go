// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/formats/internal/pcm"
)

// formatPCM is the WAVE_FORMAT_PCM tag of the fmt chunk.
const formatPCM = 1

func supportedDepth(bitDepth int) bool {
	switch bitDepth {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}

// Decoder reads integer PCM WAV files of 16, 24 or 32 bits.
type Decoder struct{}

// Decode parses the WAV headers and returns a Source positioned at the first
// sample. Readers that cannot seek are buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	if !supportedDepth(int(dec.BitDepth)) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	return pcm.NewSource(dec, format, int(dec.BitDepth)), nil
}
