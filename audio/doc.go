// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers used by the engine and the
// stream primitives used to get audio in and out of it.
//
// # Block Buffers
//
// A SampleBuffer holds one channel of one processing block. A ChannelSet owns
// the input and output buffers of a backend; every buffer in it has exactly
// the block size and the channel counts never change:
//
//	cs := audio.NewChannelSet(128, 2, 2)
//	cs.Input(0).CopyFrom(left)
//	view := cs.Output(1).View()
//
// All buffers of a ChannelSet are carved from a single allocation made at
// construction time; nothing in this package allocates after that when used
// through SampleBuffer and View.
//
// # Sources
//
// The Source interface is implemented by the format decoders:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// A BlockReader splits a Source into block-sized deinterleaved chunks, ready
// for a backend's input channels. ReadClip loads a whole Source into a Clip,
// which can then be resampled to the engine rate or folded to mono:
//
//	clip, _ := audio.ReadClip(src)
//	clip, _ = clip.Resample(48000)
//	mono := clip.Mono()
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("drums.wav")
//
// # Sample Format
//
// Audio samples are float32, nominally in the range [-1.0, 1.0].
package audio
