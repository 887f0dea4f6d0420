// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams using github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo, whatever the channel mode
// of the stream, at the stream's sample rate:
//
//	file, _ := os.Open("pad.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	clip, err := audio.ReadClip(src)
//	clip = clip.Mono()
//
// Samples are float32 in [-1.0, 1.0). Reads of any length are accepted; an
// odd trailing byte returned by the underlying decoder is kept for the next
// read.
package mp3
