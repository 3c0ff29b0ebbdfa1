// Package queue provides thread-safe hand-off queues used to move
// validated RFQs between producer and consumer goroutines. Producers
// push from NATS subscription callbacks; workers pop and run the
// pricing pipeline. Shutdown is cooperative: a blocked Pop on an empty,
// shut-down queue returns ok=false instead of waiting forever.
package queue

import (
	"errors"
	"sync"
	"time"
)

// ErrShutdown is returned by Push when the queue has been shut down.
var ErrShutdown = errors.New("queue is shut down")

// Queue is an unbounded FIFO safe for concurrent use.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// New creates an empty unbounded queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends an item. Returns ErrShutdown after Shutdown.
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrShutdown
	}
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
	return nil
}

// TryPop removes the head without blocking. ok is false when empty.
func (q *Queue[T]) TryPop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Pop blocks until an item is available or the queue is shut down.
// ok is false only when the queue is shut down and drained.
func (q *Queue[T]) Pop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	return q.popLocked()
}

// PopTimeout behaves like Pop but gives up after d.
func (q *Queue[T]) PopTimeout(d time.Duration) (item T, ok bool) {
	deadline := time.Now().Add(d)
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			var zero T
			return zero, false
		}
		t := time.AfterFunc(remaining, q.cond.Broadcast)
		q.cond.Wait()
		t.Stop()
	}
	return q.popLocked()
}

func (q *Queue[T]) popLocked() (item T, ok bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item = q.items[0]
	var zero T
	q.items[0] = zero // release reference
	q.items = q.items[1:]
	return item, true
}

// Len returns the current number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether the queue holds no items.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

// Clear discards all queued items.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}

// Shutdown rejects further pushes and wakes all blocked consumers.
// Items already queued can still be popped.
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// IsShutdown reports whether Shutdown has been called.
func (q *Queue[T]) IsShutdown() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Bounded is a FIFO with a fixed capacity. A full queue blocks Push,
// giving producers backpressure.
type Bounded[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    []T
	cap      int
	closed   bool
}

// NewBounded creates a bounded queue with the given capacity.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity <= 0 {
		capacity = 1
	}
	b := &Bounded[T]{cap: capacity}
	b.notEmpty = sync.NewCond(&b.mu)
	b.notFull = sync.NewCond(&b.mu)
	return b
}

// Push blocks while the queue is full. Returns ErrShutdown after Shutdown.
func (b *Bounded[T]) Push(item T) error {
	b.mu.Lock()
	for len(b.items) >= b.cap && !b.closed {
		b.notFull.Wait()
	}
	if b.closed {
		b.mu.Unlock()
		return ErrShutdown
	}
	b.items = append(b.items, item)
	b.mu.Unlock()
	b.notEmpty.Signal()
	return nil
}

// TryPush appends without blocking. ok is false when the queue is full;
// pushing to a shut-down queue returns ErrShutdown.
func (b *Bounded[T]) TryPush(item T) (ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false, ErrShutdown
	}
	if len(b.items) >= b.cap {
		return false, nil
	}
	b.items = append(b.items, item)
	b.notEmpty.Signal()
	return true, nil
}

// Pop blocks until an item is available or the queue is shut down and drained.
func (b *Bounded[T]) Pop() (item T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.items) == 0 && !b.closed {
		b.notEmpty.Wait()
	}
	if len(b.items) == 0 {
		var zero T
		return zero, false
	}
	item = b.items[0]
	var zero T
	b.items[0] = zero
	b.items = b.items[1:]
	b.notFull.Signal()
	return item, true
}

// TryPop removes the head without blocking.
func (b *Bounded[T]) TryPop() (item T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		var zero T
		return zero, false
	}
	item = b.items[0]
	var zero T
	b.items[0] = zero
	b.items = b.items[1:]
	b.notFull.Signal()
	return item, true
}

// Len returns the current number of queued items.
func (b *Bounded[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Cap returns the configured capacity.
func (b *Bounded[T]) Cap() int {
	return b.cap
}

// Empty reports whether the queue holds no items.
func (b *Bounded[T]) Empty() bool {
	return b.Len() == 0
}

// Full reports whether the queue is at capacity.
func (b *Bounded[T]) Full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items) >= b.cap
}

// Shutdown rejects further pushes and wakes all blocked goroutines.
func (b *Bounded[T]) Shutdown() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}
