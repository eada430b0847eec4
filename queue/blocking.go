// Package queue provides a fixed-capacity blocking FIFO queue used to decouple
// many message producers from the single host-polling consumer.
package queue

import (
	"sync"
)

// Blocking is a bounded FIFO queue safe for concurrent use.
// Producers never block: TryPush fails fast when the queue is full.
// Consumers block in Pop until an item arrives.
//
// Capacity is fixed at construction; the queue never holds more than
// Cap() items.
type Blocking[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond

	items []T
	head  int
	count int
}

// NewBlocking creates a queue holding at most capacity items.
// Panics if capacity is less than 1.
func NewBlocking[T any](capacity int) *Blocking[T] {
	if capacity < 1 {
		panic("queue: capacity must be at least 1")
	}
	q := &Blocking[T]{
		items: make([]T, capacity),
	}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// TryPush appends item at the tail and reports whether it was accepted.
// It returns false immediately when the queue is full; it never blocks.
func (q *Blocking[T]) TryPush(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.items) {
		return false
	}
	tail := (q.head + q.count) % len(q.items)
	q.items[tail] = item
	q.count++
	q.nonEmpty.Signal()
	return true
}

// Pop removes and returns the head item, blocking until one is available.
// There is no timeout and no spurious return: Pop only returns an item
// that was pushed.
func (q *Blocking[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		q.nonEmpty.Wait()
	}

	var zero T
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return item
}

// Empty reports whether the queue currently holds no items.
func (q *Blocking[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == 0
}

// Len returns the current number of queued items.
func (q *Blocking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity set at construction.
func (q *Blocking[T]) Cap() int {
	return len(q.items)
}
