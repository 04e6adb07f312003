package notification

import (
	"context"
	"fmt"
	"log"

	"hackreg/internal/models"
	"hackreg/internal/queue"
)

// Mail drivers.
const (
	DriverLog  = "log"
	DriverSMTP = "smtp"
	DriverSES  = "ses"
)

// MailConfig selects and configures a mailer.
type MailConfig struct {
	Driver       string
	From         string
	FromName     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SESRegion    string
}

// NewMailer builds the mailer named by cfg.Driver.
func NewMailer(ctx context.Context, cfg MailConfig) (queue.Mailer, error) {
	switch cfg.Driver {
	case "", DriverLog:
		return LogMailer{}, nil
	case DriverSMTP:
		return NewSMTPMailer(cfg)
	case DriverSES:
		return NewSESMailer(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct{}

// Send logs the email.
func (LogMailer) Send(_ context.Context, email models.Email) error {
	log.Printf("[mail] to=%s subject=%q\n%s", email.To, email.Subject, email.Text)
	return nil
}
