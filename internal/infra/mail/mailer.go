package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends plain-text transactional email.
type Mailer interface {
	Send(ctx context.Context, toName, toEmail, subject, body string) error
}

// SendGrid delivers through the SendGrid v3 API.
type SendGrid struct {
	client   *sendgrid.Client
	fromName string
	from     string
	log      *slog.Logger
}

func NewSendGrid(apiKey, from string, log *slog.Logger) *SendGrid {
	return &SendGrid{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: "StaffMS",
		from:     from,
		log:      log,
	}
}

func (s *SendGrid) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.from),
		subject,
		sgmail.NewEmail(toName, toEmail),
		body,
		body,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send to %s: status %d", toEmail, resp.StatusCode)
	}
	s.log.Info("email sent", "to", toEmail, "subject", subject, "status", resp.StatusCode)
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used when no
// SendGrid key is configured (local development).
type LogMailer struct {
	Log *slog.Logger
}

func (l LogMailer) Send(_ context.Context, _ string, toEmail, subject, body string) error {
	l.Log.Info("email (not sent)", "to", toEmail, "subject", subject, "body", body)
	return nil
}

// New picks SendGrid when apiKey is set, else LogMailer.
func New(apiKey, from string, log *slog.Logger) Mailer {
	if apiKey == "" {
		return LogMailer{Log: log}
	}
	return NewSendGrid(apiKey, from, log)
}
