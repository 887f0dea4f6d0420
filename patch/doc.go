// SPDX-License-Identifier: EPL-2.0

// Package patch loads synthesis graphs described in YAML and queues them on
// a backend.
//
// A patch lists units by name and kind, then the connections between them.
// "in" and "out" name the backend's own channels:
//
//	units:
//	  - name: osc
//	    kind: sine
//	    params: {freq: 220, amp: 0.3}
//	  - name: echo
//	    kind: delay
//	    max_delay: 1.5
//	    params: {time: 0.375, feedback: 0.4, mix: 0.5}
//	  - name: loop
//	    kind: player
//	    file: drums.wav
//	    loop: true
//	connections:
//	  - {from: osc, to: echo}
//	  - {from: echo, to: "out:0"}
//	  - {from: "loop:0", to: "out:1"}
//
// Apply it with a Builder, then let the backend pick it up:
//
//	p, err := patch.Load("pad.yaml")
//	ids, err := patch.NewBuilder().Apply(p, backend)
//	backend.Update()
package patch
