package notification

import (
	"context"
	"fmt"

	"hackreg/internal/models"

	"github.com/wneessen/go-mail"
)

// SMTPMailer sends email through an SMTP relay.
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewSMTPMailer creates an SMTPMailer with PLAIN auth when credentials are set.
func NewSMTPMailer(cfg MailConfig) (*SMTPMailer, error) {
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	opts := []mail.Option{mail.WithPort(port)}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	if port == 1025 {
		// local catchers such as MailHog speak plain SMTP
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not initialize smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From, fromName: cfg.FromName}, nil
}

// Send delivers email with both HTML and plain text parts.
func (m *SMTPMailer) Send(ctx context.Context, email models.Email) error {
	msg, err := m.message(email)
	if err != nil {
		return err
	}
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) message(email models.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if email.ToName != "" {
		if err := msg.AddToFormat(email.ToName, email.To); err != nil {
			return nil, fmt.Errorf("invalid to address: %w", err)
		}
	} else if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}
	return msg, nil
}
