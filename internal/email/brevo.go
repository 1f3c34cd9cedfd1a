package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"castmatch_backend/platform/config"
)

// BrevoSender implements Sender via the Brevo transactional email HTTP API.
type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

// NewBrevoSender creates a Brevo-backed sender.
func NewBrevoSender(cfg config.EmailConfig) *BrevoSender {
	return &BrevoSender{
		apiKey:    cfg.GetBrevoAPIKey(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BrevoSender) SendSubmissionEmail(ctx context.Context, toEmail string, data SubmissionEmailData) error {
	content, err := renderSubmissionEmail(data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectSubmissionFmt, data.CallTitle, data.ActorName)
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendSubmissionConfirmationEmail(ctx context.Context, toEmail string, data ConfirmationEmailData) error {
	content, err := renderConfirmationEmail(data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectSubmissionConfirmationFmt, data.CallTitle)
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	var reqBody brevoEmailRequest
	reqBody.Sender.Name = b.fromName
	reqBody.Sender.Email = b.fromEmail
	reqBody.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}
	reqBody.Subject = subject
	reqBody.HTMLContent = htmlContent

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("brevo marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.brevo.com/v3/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("brevo send failed: status=%d body=%s", resp.StatusCode, body)
	}

	return nil
}
