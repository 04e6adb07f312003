package notification

import (
	"context"
	"errors"
	"testing"

	"hackreg/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func testEmail() models.Email {
	return models.Email{
		To:      "a@x.com",
		ToName:  "Asha",
		Subject: "Payment Verified: Quantum",
		HTML:    "<p>verified</p>",
		Text:    "verified",
	}
}

func TestNewMailer(t *testing.T) {
	ctx := context.Background()

	t.Run("log driver by default", func(t *testing.T) {
		m, err := NewMailer(ctx, MailConfig{})
		require.NoError(t, err)
		assert.IsType(t, LogMailer{}, m)
	})

	t.Run("smtp driver", func(t *testing.T) {
		m, err := NewMailer(ctx, MailConfig{Driver: DriverSMTP, SMTPHost: "localhost", SMTPPort: 1025, From: "noreply@example.com"})
		require.NoError(t, err)
		assert.IsType(t, &SMTPMailer{}, m)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewMailer(ctx, MailConfig{Driver: "pigeon"})
		assert.Error(t, err)
	})
}

func TestLogMailer_Send(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), testEmail()))
}

func TestSMTPMailer_Message(t *testing.T) {
	m, err := NewSMTPMailer(MailConfig{SMTPHost: "localhost", SMTPPort: 1025, From: "noreply@example.com", FromName: "HackNight"})
	require.NoError(t, err)

	msg, err := m.message(testEmail())
	require.NoError(t, err)

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, recipients)
	assert.Equal(t, []string{"Payment Verified: Quantum"}, msg.GetGenHeader(mail.HeaderSubject))

	_, err = m.message(models.Email{To: "not an address"})
	assert.Error(t, err)
}

func TestSESMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the SES request", func(t *testing.T) {
		client := &fakeSES{}
		m := newSESMailer(client, MailConfig{From: "noreply@example.com", FromName: "HackNight"})

		require.NoError(t, m.Send(ctx, testEmail()))

		require.NotNil(t, client.input)
		assert.Equal(t, `"HackNight" <noreply@example.com>`, aws.ToString(client.input.Source))
		assert.Equal(t, []string{"a@x.com"}, client.input.Destination.ToAddresses)
		assert.Equal(t, "Payment Verified: Quantum", aws.ToString(client.input.Message.Subject.Data))
		assert.Equal(t, "<p>verified</p>", aws.ToString(client.input.Message.Body.Html.Data))
		assert.Equal(t, "verified", aws.ToString(client.input.Message.Body.Text.Data))
	})

	t.Run("plain source without name", func(t *testing.T) {
		client := &fakeSES{}
		m := newSESMailer(client, MailConfig{From: "noreply@example.com"})

		require.NoError(t, m.Send(ctx, models.Email{To: "a@x.com", Subject: "s", Text: "t"}))

		assert.Equal(t, "noreply@example.com", aws.ToString(client.input.Source))
		assert.Nil(t, client.input.Message.Body.Html)
	})

	t.Run("propagates errors", func(t *testing.T) {
		m := newSESMailer(&fakeSES{err: errors.New("throttled")}, MailConfig{From: "noreply@example.com"})

		assert.EqualError(t, m.Send(ctx, testEmail()), "throttled")
	})
}
