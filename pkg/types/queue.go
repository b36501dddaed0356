package types

import (
	"sync"
)

// FIFO with unlimited capacity
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// M send 1 ctrl recv
// the controlling side receives, any number of goroutines send
type ControlledQueue[T any] struct {
	data     queue[T]
	mu       sync.Mutex
	closed   bool
	notifyCh chan struct{} // never closed, holds at most one wakeup
	stopCh   chan struct{}
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		notifyCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

// safe to call more than once and from any goroutine
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return
	}
	cq.closed = true
	close(cq.stopCh)
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return false
	}
	cq.data.push(v)
	select {
	case cq.notifyCh <- struct{}{}:
	default:
	}
	return true
}

// blocks on empty to wait to receive
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		cq.mu.Lock()
		if cq.closed {
			cq.mu.Unlock()
			return true, v, false
		}
		if cq.data.len() > 0 {
			v = cq.data.pop()
			cq.mu.Unlock()
			return true, v, true
		}
		cq.mu.Unlock()
		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.notifyCh:
		case <-cq.stopCh:
		}
	}
}

// Drain removes and returns everything queued without blocking.
// ok is false once the queue is closed.
func (cq *ControlledQueue[T]) Drain() (vs []T, ok bool) {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return nil, false
	}
	vs = cq.data.data
	cq.data.data = nil
	return vs, true
}

func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}
