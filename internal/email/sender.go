// Package email delivers submission notifications through Brevo or SMTP,
// rendering shared embedded HTML templates.
package email

import (
	"context"
	"fmt"

	"castmatch_backend/platform/config"
)

// SubmissionEmailData fills the notification sent to the casting contact.
type SubmissionEmailData struct {
	ContactName string
	CallTitle   string
	RoleType    string
	Location    string

	ActorName   string
	ActorEmail  string
	ActorPhone  string
	ActorCity   string
	ActorRegion string
	ActorAge    string
	ActorUnion  string
	HeadshotURL string
	ResumeURL   string

	Score       int
	CoverLetter string
}

// ConfirmationEmailData fills the confirmation sent to the actor.
type ConfirmationEmailData struct {
	ActorName string
	CallTitle string
	RoleType  string
	Method    string
	Score     int
}

// Sender delivers submission emails. The two submission sends are
// independent: callers decide what a failure of either means.
type Sender interface {
	SendSubmissionEmail(ctx context.Context, toEmail string, data SubmissionEmailData) error
	SendSubmissionConfirmationEmail(ctx context.Context, toEmail string, data ConfirmationEmailData) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender swallows every send. Used when email is disabled.
type NoopSender struct{}

func (NoopSender) SendSubmissionEmail(ctx context.Context, toEmail string, data SubmissionEmailData) error {
	return nil
}

func (NoopSender) SendSubmissionConfirmationEmail(ctx context.Context, toEmail string, data ConfirmationEmailData) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender builds the configured sender implementation.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	switch cfg.GetEmailProvider() {
	case "brevo":
		return NewBrevoSender(cfg), nil
	case "smtp":
		return NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}
