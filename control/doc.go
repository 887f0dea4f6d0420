// SPDX-License-Identifier: EPL-2.0

// Package control carries work between execution contexts without locks on
// the hand-off itself.
//
// Ring is a bounded single-producer/single-consumer queue built on a
// power-of-two slot array with atomic head and tail indices. Push never
// blocks and Drain only consumes what was present when it started, so the
// work per drain is bounded.
//
// Queue adds the overflow policy used across the module: when the ring is
// full the newest item is rejected, counted and reported with ErrQueueFull.
// Losing one edit is preferred over stalling either side.
//
//	q := control.NewQueue[graph.Command]("commands", 1024, logger)
//	if err := q.Push(cmd); errors.Is(err, control.ErrQueueFull) {
//	    // retry later or give up on this edit
//	}
//	q.Drain(func(c graph.Command) { apply(c) })
package control
