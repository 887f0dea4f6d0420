// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files using
// github.com/go-audio/wav.
//
// # Supported Formats
//
//   - PCM 16, 24 and 32-bit
//   - Any channel count and sample rate
//
// # Decoding
//
//	file, _ := os.Open("input.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a WAV file
//	}
//
// The decoder needs to seek between chunks. Readers that cannot seek are
// read into memory first.
//
// # Encoding
//
// Encode writes an audio.Clip, typically the result of rtsynth.Render:
//
//	out, _ := os.Create("output.wav")
//	defer out.Close()
//	err := wav.Encode(out, clip, 16)
//
// Samples are clipped to [-1, 1] and scaled to the chosen bit depth.
package wav
