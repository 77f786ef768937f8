// Package notify provides the two concrete notification channels consumed by
// the election console: an SMTP message relay and an HTTP text relay.
package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// EmailConfig holds the SMTP relay settings.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailSender delivers plain-text messages over SMTP with STARTTLS.
type EmailSender struct {
	cfg EmailConfig
}

// NewEmailSender constructs an SMTP channel for the given relay settings.
func NewEmailSender(cfg EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// SendEmail composes and delivers one message. Dialing happens per send; a
// failure is terminal for this (recipient, occasion) tuple.
func (s *EmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	msg.SetCharset(mail.CharsetUTF8)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
