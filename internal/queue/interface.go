package queue

import (
	"context"

	"hackreg/internal/models"
)

//go:generate mockgen -destination=mocks/mock_queue.go -package=mocks hackreg/internal/queue Queue,Mailer

// Queue defines the interface for job queue operations.
type Queue interface {
	// Enqueue adds a job to the queue.
	Enqueue(job EmailJob) error
	// Dequeue removes and returns the next job from the queue.
	Dequeue(ctx context.Context) (EmailJob, error)
	// Close closes the queue.
	Close()
	// Len returns the current number of jobs in the queue.
	Len() int
	// Backlog returns the number of queued jobs per kind.
	Backlog() map[string]int
}

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, email models.Email) error
}

// Ensure MemoryQueue implements Queue interface
var _ Queue = (*MemoryQueue)(nil)
