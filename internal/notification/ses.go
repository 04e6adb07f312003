package notification

import (
	"context"
	"fmt"
	"log"
	"net/mail"

	"hackreg/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used by SESMailer.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends email through Amazon SES.
type SESMailer struct {
	client SESAPI
	source string
}

// NewSESMailer creates an SESMailer using the default AWS credential chain.
func NewSESMailer(ctx context.Context, cfg MailConfig) (*SESMailer, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.SESRegion != "" {
		opts = append(opts, config.WithRegion(cfg.SESRegion))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	return newSESMailer(ses.NewFromConfig(awsCfg), cfg), nil
}

func newSESMailer(client SESAPI, cfg MailConfig) *SESMailer {
	source := cfg.From
	if cfg.FromName != "" {
		source = (&mail.Address{Name: cfg.FromName, Address: cfg.From}).String()
	}
	return &SESMailer{client: client, source: source}
}

// Send delivers email via SendEmail.
func (m *SESMailer) Send(ctx context.Context, email models.Email) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(email.Text), Charset: aws.String("UTF-8")},
	}
	if email.HTML != "" {
		body.Html = &types.Content{Data: aws.String(email.HTML), Charset: aws.String("UTF-8")}
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.source),
		Destination: &types.Destination{ToAddresses: []string{email.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	})
	if err != nil {
		return err
	}

	log.Printf("SES accepted message %s", aws.ToString(out.MessageId))
	return nil
}
