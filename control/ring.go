// SPDX-License-Identifier: EPL-2.0

package control

import "sync/atomic"

const (
	cacheLine = 64
	maxRing   = 1 << 30
)

// Ring is a fixed-capacity single-producer/single-consumer queue.
//
// The producer owns tail and the consumer owns head; each side only ever
// loads the other's index, so Push and Pop are wait-free. Exactly one
// goroutine may push and exactly one may pop at any time.
type Ring[T any] struct {
	buf  []T
	mask uint64

	_    [cacheLine]byte
	head atomic.Uint64 // next slot to read
	_    [cacheLine - 8]byte
	tail atomic.Uint64 // next slot to write
	_    [cacheLine - 8]byte
}

// NewRing allocates a ring holding at least capacity items. The capacity is
// rounded up to a power of two, with a minimum of 2 and a maximum of 1<<30.
func NewRing[T any](capacity int) *Ring[T] {
	capacity = min(max(capacity, 2), maxRing)

	size := uint64(2)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &Ring[T]{
		buf:  make([]T, size),
		mask: size - 1,
	}
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Len returns the number of queued items. It is exact only when called from
// the producer or the consumer while the other side is idle.
func (r *Ring[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Push appends v. It reports false, leaving the ring untouched, when full.
// Producer only.
func (r *Ring[T]) Push(v T) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() == uint64(len(r.buf)) {
		return false
	}
	r.buf[tail&r.mask] = v
	r.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest item. Consumer only.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T

	head := r.head.Load()
	if head == r.tail.Load() {
		return zero, false
	}
	slot := &r.buf[head&r.mask]
	v := *slot
	*slot = zero
	r.head.Store(head + 1)
	return v, true
}

// Drain pops every item that was queued when Drain started and hands each to
// fn in FIFO order. Items pushed while draining are left for the next call,
// which bounds the work done per call. Consumer only.
func (r *Ring[T]) Drain(fn func(T)) int {
	var zero T

	head := r.head.Load()
	end := r.tail.Load()
	for i := head; i != end; i++ {
		slot := &r.buf[i&r.mask]
		v := *slot
		*slot = zero
		r.head.Store(i + 1)
		fn(v)
	}
	return int(end - head)
}
