package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSConfig holds the text relay gateway settings. The gateway speaks the
// common REST shape: a form-encoded POST authenticated with account
// credentials, returning 2xx on acceptance.
type SMSConfig struct {
	GatewayURL string
	AccountSID string
	AuthToken  string
	From       string
}

// TextSender delivers short messages through the configured HTTP gateway.
type TextSender struct {
	cfg    SMSConfig
	client *http.Client
}

// NewTextSender constructs an SMS channel for the given gateway settings.
// When client is nil a default with a 10 second timeout is used.
func NewTextSender(cfg SMSConfig, client *http.Client) *TextSender {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &TextSender{cfg: cfg, client: client}
}

// SendText posts one message to the gateway. A non-2xx response is a terminal
// failure for this (recipient, occasion) tuple.
func (s *TextSender) SendText(ctx context.Context, phone, body string) error {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.cfg.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach SMS gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("SMS gateway rejected message to %s: status %d: %s", phone, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// Notifier combines the two channels behind the application contract.
type Notifier struct {
	*EmailSender
	*TextSender
}

// NewNotifier builds the combined email and text relay client.
func NewNotifier(email EmailConfig, sms SMSConfig) *Notifier {
	return &Notifier{
		EmailSender: NewEmailSender(email),
		TextSender:  NewTextSender(sms, nil),
	}
}
