// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelSet owns the input and output SampleBuffers of a backend.
// All buffers share one allocation and are exactly blockSize long.
type ChannelSet struct {
	blockSize int
	inputs    []SampleBuffer
	outputs   []SampleBuffer
}

// NewChannelSet allocates numInputs+numOutputs zeroed buffers of blockSize
// samples each.
func NewChannelSet(blockSize, numInputs, numOutputs int) *ChannelSet {
	slab := make([]float32, blockSize*(numInputs+numOutputs))

	cs := &ChannelSet{
		blockSize: blockSize,
		inputs:    make([]SampleBuffer, numInputs),
		outputs:   make([]SampleBuffer, numOutputs),
	}

	off := 0
	carve := func() []float32 {
		s := slab[off : off+blockSize : off+blockSize]
		off += blockSize
		return s
	}
	for i := range cs.inputs {
		cs.inputs[i].samples = carve()
	}
	for i := range cs.outputs {
		cs.outputs[i].samples = carve()
	}

	return cs
}

func (cs *ChannelSet) BlockSize() int  { return cs.blockSize }
func (cs *ChannelSet) NumInputs() int  { return len(cs.inputs) }
func (cs *ChannelSet) NumOutputs() int { return len(cs.outputs) }

// Input returns input buffer i, panicking with ErrChannelOutOfRange when i is
// not a valid input index.
func (cs *ChannelSet) Input(i int) *SampleBuffer {
	if i < 0 || i >= len(cs.inputs) {
		panic(fmt.Errorf("%w: input %d of %d", ErrChannelOutOfRange, i, len(cs.inputs)))
	}
	return &cs.inputs[i]
}

// Output returns output buffer i, panicking with ErrChannelOutOfRange when i
// is not a valid output index.
func (cs *ChannelSet) Output(i int) *SampleBuffer {
	if i < 0 || i >= len(cs.outputs) {
		panic(fmt.Errorf("%w: output %d of %d", ErrChannelOutOfRange, i, len(cs.outputs)))
	}
	return &cs.outputs[i]
}

// InputSlices returns the input storage, one slice per channel. The graph
// binds to these once; they stay valid for the life of the set.
func (cs *ChannelSet) InputSlices() [][]float32 {
	out := make([][]float32, len(cs.inputs))
	for i := range cs.inputs {
		out[i] = cs.inputs[i].samples
	}
	return out
}

// OutputSlices is InputSlices for the output group.
func (cs *ChannelSet) OutputSlices() [][]float32 {
	out := make([][]float32, len(cs.outputs))
	for i := range cs.outputs {
		out[i] = cs.outputs[i].samples
	}
	return out
}

// ClearOutputs zeroes every output buffer.
func (cs *ChannelSet) ClearOutputs() {
	for i := range cs.outputs {
		cs.outputs[i].Clear()
	}
}
