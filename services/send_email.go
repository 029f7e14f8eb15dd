package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer sends email through the Resend API.
type Mailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

// NewMailerFromConfig reads RESEND_API_KEY and RESEND_FROM_EMAIL.
// It returns nil when either is unset, which disables email.
func NewMailerFromConfig(cfg map[string]string) *Mailer {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if apiKey == "" || from == "" {
		log.Warn().Msg("RESEND_API_KEY or RESEND_FROM_EMAIL not set, email disabled")
		return nil
	}
	return NewMailer(apiKey, from, resendEndpoint)
}

func NewMailer(apiKey, from, endpoint string) *Mailer {
	return &Mailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendEmail sends an HTML email to recipients. replyTo may be empty.
func (m *Mailer) SendEmail(ctx context.Context, subject, body string, recipients []string, replyTo string) error {
	if m == nil {
		return errs.NewServiceDisabledError("Email")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	// Build the Resend API payload
	payload := ResendEmailRequest{
		From:    m.from,
		To:      recipients,
		Subject: subject,
		Html:    body,
		ReplyTo: replyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errs.NewServiceUnavailableError("Resend", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
