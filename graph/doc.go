// SPDX-License-Identifier: EPL-2.0

// Package graph holds the synthesis topology and the plan that runs it.
//
// The package is split along the thread boundary. Graph is the control-side
// model: it accepts Commands (add or remove a unit, connect or disconnect
// ports, set a parameter), validates them, and rejects edits that would
// introduce a cycle. Compile turns the model into a Schedule, an immutable
// processing plan in dependency order with every buffer it needs already
// allocated. The real-time side only ever calls Schedule.Process.
//
// A host publishes each new Schedule with an atomic pointer swap:
//
//	var current atomic.Pointer[graph.Schedule]
//
//	// control side
//	if err := g.Apply(graph.Connect(graph.Port(osc, 0), graph.Output(0))); err != nil {
//	    log.Print(err)
//	}
//	if g.Dirty() {
//	    current.Store(g.Compile())
//	}
//
//	// real-time side
//	current.Load().Process()
//
// Units are shared between successive schedules, so oscillator phase, delay
// lines and other internal state survive recompiles. Parameters are atomic
// cells (Param) and change without a recompile.
//
// Several sources connected to the same input or graph output are summed.
// Inputs with no source read silence, and unconnected graph outputs are
// cleared every block.
package graph
