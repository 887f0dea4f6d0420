// SPDX-License-Identifier: EPL-2.0

// Package units is a small library of graph.Unit implementations: enough to
// route, shape and generate sound while exercising the engine.
//
//   - Passthrough copies inputs to outputs
//   - Gain scales by the "gain" parameter
//   - Constant emits the "value" parameter
//   - Mix averages N inputs into one output
//   - Sine is an oscillator ("freq", "amp")
//   - Delay is a fractional feedback delay ("time", "feedback", "mix")
//   - Player plays a decoded audio.Clip ("speed", "gain", "loop")
//
// Units build their buffers in Prepare, on the control side, so Process never
// allocates. A Registry builds units by kind name for patch files:
//
//	reg := units.DefaultRegistry()
//	osc, err := reg.New("sine", units.Config{Params: map[string]float32{"freq": 220}})
package units
