package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/config"
)

// Mailer delivers operational notifications (overdue-fee digests, follow-up
// reminders) to the admin inbox.
type Mailer interface {
	Send(to, subject, body string) error
}

// SendGridMailer sends through the SendGrid v3 API.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// ConsoleMailer logs instead of sending; used when no SendGrid key is
// configured, so development setups never need an API key.
type ConsoleMailer struct {
	log *zap.Logger
}

// NewMailer returns a SendGrid mailer when a key is configured, otherwise a
// console fallback.
func NewMailer(cfg config.MailConfig, log *zap.Logger) Mailer {
	if cfg.SendGridKey == "" {
		log.Info("no sendgrid key configured, mail goes to the log")
		return &ConsoleMailer{log: log}
	}
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGridKey),
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

func (m *SendGridMailer) Send(to, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, body)

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (m *ConsoleMailer) Send(to, subject, body string) error {
	m.log.Info("mail (console fallback)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
