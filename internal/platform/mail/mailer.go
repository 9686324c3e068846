// Package mail provides outbound email delivery over SMTP.
package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/taskmaster/taskmaster-api/internal/config"
)

// Mailer sends plain-text email messages.
type Mailer interface {
	// Send delivers a message to a single recipient.
	Send(to, subject, body string) error
}

// SMTPMailer implements Mailer using an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer from SMTP settings.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send implements Mailer.Send
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
