// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"math"
	"sync/atomic"
)

// Unit is one processing node of a graph.
//
// Prepare runs on the control side before the unit is first scheduled and may
// allocate. Process runs on the real-time side once per block: in and out
// hold NumInputs and NumOutputs slices of exactly one block each. Process must
// not allocate, block or write to its inputs.
type Unit interface {
	Name() string
	NumInputs() int
	NumOutputs() int
	Prepare(sampleRate float64, blockSize int)
	Process(in, out [][]float32)
}

// Parameterized is implemented by units with named parameters that can be
// changed while the unit is running.
type Parameterized interface {
	Params() []*Param
}

// Param is a float parameter shared between the control side, which sets it,
// and the real-time side, which reads it. Reads and writes are single atomic
// operations.
type Param struct {
	name     string
	min, max float32
	bits     atomic.Uint32
}

// NewParam creates a parameter clamped to [min, max] with value def.
func NewParam(name string, def, min, max float32) *Param {
	p := &Param{name: name, min: min, max: max}
	p.Set(def)
	return p
}

func (p *Param) Name() string { return p.name }

// Get is safe to call from Process.
func (p *Param) Get() float32 { return math.Float32frombits(p.bits.Load()) }

// Set stores v clamped to the parameter range. NaN is ignored.
func (p *Param) Set(v float32) {
	if v != v {
		return
	}
	if v < p.min {
		v = p.min
	} else if v > p.max {
		v = p.max
	}
	p.bits.Store(math.Float32bits(v))
}

// Range returns the bounds Set clamps to.
func (p *Param) Range() (float32, float32) { return p.min, p.max }
