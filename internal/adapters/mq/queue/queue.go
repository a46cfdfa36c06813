// Package queue defines the contract for feeding outfit candidates to the
// scoring workers.
//
// A generation pass builds one queue, pushes every enumerated candidate
// through it, and closes it; the queue never outlives the pass.
package queue

import (
	"context"
	"sync"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/pkg/metrics"
)

// defaultCapacity bounds the in-flight candidate buffer.
const defaultCapacity = 4096

// Candidate is the payload type flowing through the queue.
type Candidate = model.Candidate

// Queue provides enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a candidate to the queue, blocking while the buffer is
	// full. Returns false if the queue is closed or ctx is cancelled.
	Enqueue(ctx context.Context, c Candidate) bool

	// Dequeue returns a channel that receives candidates as they become
	// available. The channel is closed when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Candidate

	// Len returns the current number of buffered candidates.
	Len(ctx context.Context) int

	// Close stops the queue. After closing, no new candidates can be
	// enqueued and the dequeue channel drains then closes.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	candidates chan Candidate
	capacity   int
	mu         sync.RWMutex
	closed     bool
}

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity sets the buffer capacity of the queue.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// NewInMemoryQueue creates a new in-memory candidate queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.candidates = make(chan Candidate, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

var _ Queue = (*InMemoryQueue)(nil)

// Enqueue adds a candidate to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, c Candidate) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.candidates <- c:
		metrics.UpdateQueueSize(len(q.candidates))
		return true
	case <-ctx.Done():
		return false
	}
}

// Dequeue returns a channel that receives candidates until the queue closes.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Candidate {
	out := make(chan Candidate)
	go func() {
		defer close(out)
		for c := range q.candidates {
			select {
			case out <- c:
				metrics.UpdateQueueSize(len(q.candidates))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of buffered candidates.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.candidates)
}

// Close stops the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.candidates)
	q.closed = true

	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
