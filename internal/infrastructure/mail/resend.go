// Package mail delivers outbound email through Resend, or only logs it when
// no API key is configured.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/ports"
)

// ResendMailer sends mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

func NewResendMailer(apiKey, from string, logger zerolog.Logger) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from, log: logger}
}

func (m *ResendMailer) Send(ctx context.Context, msg ports.Mail) error {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	m.log.Debug().Str("email_id", sent.Id).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{log: logger}
}

func (m *LogMailer) Send(_ context.Context, msg ports.Mail) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email not sent: no mail provider configured")
	return nil
}

// New picks the Resend mailer when apiKey is set and the log mailer otherwise.
func New(apiKey, from string, logger zerolog.Logger) ports.Mailer {
	if apiKey == "" {
		return NewLogMailer(logger)
	}
	return NewResendMailer(apiKey, from, logger)
}
