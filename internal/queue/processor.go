package queue

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

const (
	// MaxRetries is the maximum number of delivery attempts for one email.
	MaxRetries = 3
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay = 5 * time.Second
	// SendTimeout bounds a single delivery attempt.
	SendTimeout = 30 * time.Second
)

// Processor delivers queued emails through a Mailer.
type Processor struct {
	queue        *MemoryQueue
	mailer       Mailer
	workerCount  int
	retryDelay   time.Duration
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewProcessor creates a new email delivery processor.
func NewProcessor(queue *MemoryQueue, mailer Mailer, workerCount int) *Processor {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Processor{
		queue:       queue,
		mailer:      mailer,
		workerCount: workerCount,
		retryDelay:  RetryDelay,
		shutdownCh:  make(chan struct{}),
	}
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	log.Printf("Notification processor started with %d workers", p.workerCount)
}

// Stop closes the queue and waits for workers to drain it.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		if backlog := p.queue.Backlog(); len(backlog) > 0 {
			log.Printf("Notification processor stopping, draining %v", backlog)
		}
		close(p.shutdownCh)
		p.queue.Close()
	})
	p.wg.Wait()
	log.Println("Notification processor stopped")
}

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || errors.Is(err, context.Canceled) {
				log.Printf("Notification worker %d shutting down", id)
				return
			}
			continue
		}
		p.processJob(ctx, job)
	}
}

func (p *Processor) processJob(ctx context.Context, job EmailJob) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SendTimeout)
	defer cancel()

	if err := p.mailer.Send(sendCtx, job.Email); err != nil {
		log.Printf("Failed to send %s email %s to %s (attempt %d): %v", job.Kind, job.ID, job.Email.To, job.RetryCount+1, err)
		p.handleFailure(job)
		return
	}

	log.Printf("Sent %s email %s to %s", job.Kind, job.ID, job.Email.To)
}

func (p *Processor) handleFailure(job EmailJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		log.Printf("Giving up on %s email %s to %s after %d attempts", job.Kind, job.ID, job.Email.To, job.RetryCount)
		return
	}

	delay := p.retryDelay * time.Duration(1<<uint(job.RetryCount-1))
	log.Printf("Retrying %s email %s in %v (attempt %d/%d)", job.Kind, job.ID, delay, job.RetryCount+1, MaxRetries)

	// Waits on shutdownCh rather than ctx so a pending retry is dropped, not leaked, on shutdown.
	go func() {
		select {
		case <-p.shutdownCh:
			log.Printf("Shutdown during retry delay, dropping %s email %s", job.Kind, job.ID)
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				log.Printf("Failed to re-enqueue %s email %s: %v", job.Kind, job.ID, err)
			}
		}
	}()
}
