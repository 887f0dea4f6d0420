// SPDX-License-Identifier: EPL-2.0

// Package utils holds small sample-level helpers shared by the audio, units
// and formats packages: Catmull-Rom interpolation over plain and circular
// buffers, and PCM integer/float conversion for the bit depths the decoders
// and the WAV encoder deal with.
package utils
