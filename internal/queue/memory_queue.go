// Package queue buffers outgoing notification emails and delivers them from a worker pool.
package queue

import (
	"context"
	"sync"

	"hackreg/internal/models"
)

// EmailJob is one notification waiting for delivery.
type EmailJob struct {
	ID         string
	Kind       string
	Email      models.Email
	RetryCount int
}

// MemoryQueue is an in-memory job queue for notification emails.
type MemoryQueue struct {
	jobs     chan EmailJob
	capacity int
	mu       sync.RWMutex
	closed   bool

	pendingMu sync.Mutex
	pending   map[string]int // queued jobs per kind
}

// NewMemoryQueue creates a new in-memory queue with the given capacity.
func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{
		jobs:     make(chan EmailJob, capacity),
		capacity: capacity,
		pending:  make(map[string]int),
	}
}

// Enqueue adds a job to the queue. Returns error if queue is full or closed,
// or if the job has nobody to deliver to.
// Lock is held during the entire operation to prevent race condition with Close().
func (q *MemoryQueue) Enqueue(job EmailJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	if job.Email.To == "" {
		return ErrNoRecipient
	}

	// Counted before the send so a racing Dequeue never sees a negative count.
	q.track(job.Kind, 1)
	select {
	case q.jobs <- job:
		return nil
	default:
		q.track(job.Kind, -1)
		return ErrQueueFull
	}
}

// Dequeue returns the next job from the queue, blocking until one is available.
// Returns error if context is cancelled or queue is closed.
func (q *MemoryQueue) Dequeue(ctx context.Context) (EmailJob, error) {
	select {
	case <-ctx.Done():
		return EmailJob{}, ctx.Err()
	case job, ok := <-q.jobs:
		if !ok {
			return EmailJob{}, ErrQueueClosed
		}
		q.track(job.Kind, -1)
		return job, nil
	}
}

// Close closes the queue. No more jobs can be enqueued after closing.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
}

// Reset resets the queue to a fresh state. This is primarily for testing.
func (q *MemoryQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = false
	q.jobs = make(chan EmailJob, q.capacity)

	q.pendingMu.Lock()
	q.pending = make(map[string]int)
	q.pendingMu.Unlock()
}

// Len returns the current number of jobs in the queue.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// Backlog returns a snapshot of the queued jobs per kind. Kinds with nothing
// queued are left out.
func (q *MemoryQueue) Backlog() map[string]int {
	q.pendingMu.Lock()
	defer q.pendingMu.Unlock()

	backlog := make(map[string]int, len(q.pending))
	for kind, n := range q.pending {
		backlog[kind] = n
	}
	return backlog
}

func (q *MemoryQueue) track(kind string, delta int) {
	q.pendingMu.Lock()
	defer q.pendingMu.Unlock()

	q.pending[kind] += delta
	if q.pending[kind] <= 0 {
		delete(q.pending, kind)
	}
}
