// Package queueing provides fixed-capacity FIFO queues for the kernel and
// for application modules that feed it.
package queueing

import "log"

// A Ring is a bounded FIFO queue backed by a pre-allocated buffer. Once
// created, a Ring never allocates again.
type Ring[T any] struct {
	elements []T
	head     int
	count    int
}

// NewRing creates a Ring that can hold up to capacity elements.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		log.Panic("ring capacity must be positive")
	}

	return &Ring[T]{
		elements: make([]T, capacity),
	}
}

// Push appends e to the back of the queue. It returns false if the queue is
// full, leaving the queue unchanged.
func (r *Ring[T]) Push(e T) bool {
	if r.Full() {
		return false
	}

	r.elements[(r.head+r.count)%len(r.elements)] = e
	r.count++

	return true
}

// PushOver appends e to the back of the queue. If the queue is full, the
// oldest element is evicted to make room.
func (r *Ring[T]) PushOver(e T) {
	if r.Full() {
		r.Pop()
	}

	r.Push(e)
}

// Pop removes and returns the element at the front of the queue. The second
// return value is false if the queue is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T

	if r.count == 0 {
		return zero, false
	}

	e := r.elements[r.head]
	r.elements[r.head] = zero
	r.head = (r.head + 1) % len(r.elements)
	r.count--

	return e, true
}

// Front returns the element at the front of the queue without removing it.
// The second return value is false if the queue is empty.
func (r *Ring[T]) Front() (T, bool) {
	var zero T

	if r.count == 0 {
		return zero, false
	}

	return r.elements[r.head], true
}

// Empty returns true if the queue holds no elements.
func (r *Ring[T]) Empty() bool {
	return r.count == 0
}

// Full returns true if the queue cannot accept another Push.
func (r *Ring[T]) Full() bool {
	return r.count == len(r.elements)
}

// Size returns the number of elements currently in the queue.
func (r *Ring[T]) Size() int {
	return r.count
}

// Capacity returns the maximum number of elements the queue can hold.
func (r *Ring[T]) Capacity() int {
	return len(r.elements)
}

// Clear removes all elements from the queue.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.elements {
		r.elements[i] = zero
	}

	r.head = 0
	r.count = 0
}
