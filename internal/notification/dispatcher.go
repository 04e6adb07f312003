// Package notification renders participant emails and hands them to the delivery queue.
package notification

import (
	"context"
	"fmt"
	"strings"

	"hackreg/internal/models"
	"hackreg/internal/queue"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_notifier.go -package=mocks hackreg/internal/notification Notifier

// Notification is a request to email one recipient.
type Notification struct {
	To      string
	Subject string // overrides the template subject when set
	Kind    Kind
	Data    TemplateData
}

// Notifier sends notifications. Errors only mean the email was not queued.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Dispatcher renders notifications and enqueues them for the queue.Processor.
type Dispatcher struct {
	queue     queue.Queue
	eventName string
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(q queue.Queue, eventName string) *Dispatcher {
	return &Dispatcher{queue: q, eventName: eventName}
}

var _ Notifier = (*Dispatcher)(nil)

// Send renders n and enqueues it. It never blocks on delivery.
func (d *Dispatcher) Send(ctx context.Context, n Notification) error {
	to := models.NormalizeEmail(n.To)
	if to == "" {
		return fmt.Errorf("notification %s: %w", n.Kind, queue.ErrNoRecipient)
	}

	data := n.Data
	if data.EventName == "" {
		data.EventName = d.eventName
	}
	if strings.TrimSpace(data.LeaderName) == "" {
		data.LeaderName = "there"
	}

	out, err := render(n.Kind, data)
	if err != nil {
		return err
	}
	if n.Subject != "" {
		out.Subject = n.Subject
	}

	return d.queue.Enqueue(queue.EmailJob{
		ID:   uuid.NewString(),
		Kind: string(n.Kind),
		Email: models.Email{
			To:      to,
			ToName:  n.Data.LeaderName,
			Subject: out.Subject,
			HTML:    out.HTML,
			Text:    out.Text,
		},
	})
}
