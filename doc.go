// SPDX-License-Identifier: EPL-2.0

// Package rtsynth is a real-time block synthesis backend.
//
// A Backend owns a fixed set of input and output channels, each exactly one
// block long, and a graph of units connected between them. A host audio
// driver feeds it one block at a time:
//
//	b, err := rtsynth.New(48000, 128, 2, 2, rtsynth.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	// audio callback
//	b.SetInputChannel(0, left)
//	b.SetInputChannel(1, right)
//	b.ProcessBlock()
//	b.OutputChannel(0).CopyTo(outLeft)
//	b.OutputChannel(1).CopyTo(outRight)
//
// # Threads
//
// Two contexts use a Backend. The real-time context (the audio callback)
// calls SetInputChannel, ProcessBlock and OutputChannel; these never
// allocate, lock or log, and every output channel is fully rewritten on
// each ProcessBlock.
//
// The control context changes the graph. Edits are queued without blocking
// and take effect on the next Update:
//
//	gain, _ := b.AddUnit(units.NewGain(1, 0.5))
//	b.Connect(graph.Input(0), graph.Port(gain, 0))
//	b.Connect(graph.Port(gain, 0), graph.Output(0))
//	b.Update()
//
//	for err := b.NextError(); err != nil; err = b.NextError() {
//	    log.Println(err)
//	}
//
// Update applies queued edits in order and publishes the new graph with a
// single atomic store; ProcessBlock picks it up on its next call. Parameter
// changes reach the running units without rebuilding the graph.
//
// # Errors
//
// New reports invalid arguments as errors. Calling any method after Close,
// using a channel index out of range, or passing a block of the wrong length
// are programming errors and panic with an error wrapping ErrDestroyed,
// ErrChannelOutOfRange or ErrBlockSizeMismatch.
//
// # Offline Rendering
//
// Render runs a backend against a decoded audio.Source, or for a fixed number
// of frames, and returns the outputs as an audio.Clip that formats/wav can
// encode.
package rtsynth
