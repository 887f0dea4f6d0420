// SPDX-License-Identifier: EPL-2.0

package control

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Queue wraps a Ring with the drop-newest overflow policy and makes both of
// its ends safe for several control goroutines.
//
// Producers are serialised among themselves and consumers among themselves,
// but a producer never waits for a consumer: the two ends meet only through
// the ring's atomic indices.
type Queue[T any] struct {
	name string
	ring *Ring[T]

	pushMu sync.Mutex
	popMu  sync.Mutex

	dropped atomic.Uint64
	logger  *slog.Logger
}

// NewQueue creates a queue of at least capacity items. name identifies the
// queue in log records and errors.
func NewQueue[T any](name string, capacity int, logger *slog.Logger) *Queue[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Queue[T]{
		name:   name,
		ring:   NewRing[T](capacity),
		logger: logger,
	}
}

// Push enqueues v. When the queue is full v is dropped, the drop counter is
// incremented and an error wrapping ErrQueueFull is returned; the queued items
// are left as they were.
func (q *Queue[T]) Push(v T) error {
	q.pushMu.Lock()
	ok := q.ring.Push(v)
	q.pushMu.Unlock()

	if ok {
		return nil
	}

	dropped := q.dropped.Add(1)
	q.logger.Warn("queue full, dropping newest item",
		slog.String("queue", q.name),
		slog.Int("capacity", q.ring.Cap()),
		slog.Uint64("dropped_total", dropped),
	)
	return fmt.Errorf("%s: %w", q.name, ErrQueueFull)
}

// Pop removes the oldest item, if any.
func (q *Queue[T]) Pop() (T, bool) {
	q.popMu.Lock()
	defer q.popMu.Unlock()

	return q.ring.Pop()
}

// Drain hands every item queued at the start of the call to fn, oldest
// first, and returns how many were handled.
func (q *Queue[T]) Drain(fn func(T)) int {
	q.popMu.Lock()
	defer q.popMu.Unlock()

	return q.ring.Drain(fn)
}

func (q *Queue[T]) Len() int        { return q.ring.Len() }
func (q *Queue[T]) Cap() int        { return q.ring.Cap() }
func (q *Queue[T]) Dropped() uint64 { return q.dropped.Load() }
