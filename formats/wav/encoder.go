// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/utils"
)

// encodeChunk is the number of frames converted per write.
const encodeChunk = 4096

// Encode writes clip as an integer PCM WAV file of the given bit depth
// (16, 24 or 32). Samples outside [-1, 1] are clipped. The headers are
// patched on completion, so w must be seekable.
func Encode(w io.WriteSeeker, clip *audio.Clip, bitDepth int) error {
	if !supportedDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	channels := len(clip.Channels)
	if channels == 0 {
		return audio.ErrNoChannels
	}
	if clip.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", audio.ErrInvalidRate, clip.SampleRate)
	}

	enc := gowav.NewEncoder(w, clip.SampleRate, bitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: clip.SampleRate},
		Data:           make([]int, 0, encodeChunk*channels),
		SourceBitDepth: bitDepth,
	}

	frames := clip.Frames()
	for start := 0; start < frames; start += encodeChunk {
		end := min(start+encodeChunk, frames)

		buf.Data = buf.Data[:0]
		for f := start; f < end; f++ {
			for ch := range channels {
				buf.Data = append(buf.Data, utils.FloatToInt(clip.Channels[ch][f], bitDepth))
			}
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing frames %d-%d: %w", start, end, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}
