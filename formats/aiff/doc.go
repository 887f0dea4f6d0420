// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files using
// github.com/go-audio/aiff.
//
// Uncompressed AIFF with 8, 16, 24 or 32-bit samples is supported, at any
// channel count and sample rate. Samples are normalised to float32 in
// [-1.0, 1.0):
//
//	file, _ := os.Open("loop.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	clip, err := audio.ReadClip(src)
//
// Readers that cannot seek are read into memory before decoding.
package aiff
