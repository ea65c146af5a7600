package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer sends compiled templates out of the editor, the "send me a
// test" affordance.
type Mailer interface {
	// SendTest delivers a compiled template to a single recipient.
	SendTest(to, subject, html, text string) error
}

// Config holds the SMTP settings for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// NewTestSMTPMailer creates a mailer in test mode, it builds messages
// but never connects to an SMTP server.
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config, testMode: true}
}

func (m *SMTPMailer) SendTest(to, subject, html, text string) error {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set email recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	if m.testMode {
		return nil
	}

	client, err := mail.NewClient(m.config.SMTPHost,
		mail.WithPort(m.config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.SMTPUsername),
		mail.WithPassword(m.config.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}
	return nil
}
