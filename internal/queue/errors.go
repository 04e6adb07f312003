package queue

import "errors"

var (
	// ErrQueueFull is returned when no more notifications fit in the buffer.
	ErrQueueFull = errors.New("notification queue is full")
	// ErrQueueClosed is returned once the processor has shut the queue down.
	ErrQueueClosed = errors.New("notification queue is closed")
	// ErrNoRecipient is returned for an email job without a To address.
	ErrNoRecipient = errors.New("email job has no recipient")
)
