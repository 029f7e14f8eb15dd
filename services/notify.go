package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/models"
)

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<h2>New contact form message</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Received:</strong> {{.CreatedAt.Format "2006-01-02 15:04 MST"}}</p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap">{{.Message}}</p>
<p style="color:#888">Query {{.ID}}</p>
`))

type emailSender interface {
	SendEmail(ctx context.Context, subject, body string, recipients []string, replyTo string) error
}

type smsSender interface {
	SendSMS(body string) error
}

// ContactNotifier tells the site owner about a new contact query on every configured channel.
type ContactNotifier struct {
	email      emailSender
	sms        smsSender
	recipients []string
}

// NewContactNotifier builds a notifier. A nil sender or an empty recipient list skips that channel.
func NewContactNotifier(mailer *Mailer, sms *SMSSender, recipients []string) *ContactNotifier {
	n := &ContactNotifier{recipients: recipients}
	if mailer != nil {
		n.email = mailer
	}
	if sms != nil {
		n.sms = sms
	}
	return n
}

// NotifyContact sends the query to every configured channel. A failing channel does not stop
// the others; failures are logged and combined into the returned error.
func (n *ContactNotifier) NotifyContact(ctx context.Context, query models.Query) error {
	var errors []string
	var successes []string

	if n.email != nil && len(n.recipients) > 0 {
		if err := n.sendEmail(ctx, query); err != nil {
			log.Error().Err(err).Str("queryId", query.ID).Msg("Failed to email contact notification")
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			successes = append(successes, "Email")
		}
	}

	if n.sms != nil {
		body := fmt.Sprintf("New message from %s <%s>: %s", query.Name, query.Email, query.Message)
		if err := n.sms.SendSMS(body); err != nil {
			log.Error().Err(err).Str("queryId", query.ID).Msg("Failed to text contact notification")
			errors = append(errors, fmt.Sprintf("SMS: %v", err))
		} else {
			successes = append(successes, "SMS")
		}
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Str("queryId", query.ID).Msg("Contact notification sent")
	}

	if len(errors) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(errors, "; "))
	}
	if len(successes) == 0 {
		log.Info().Msg("No notification channels configured")
	}
	return nil
}

func (n *ContactNotifier) sendEmail(ctx context.Context, query models.Query) error {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, query); err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}
	subject := fmt.Sprintf("Portfolio contact: %s", query.Name)
	return n.email.SendEmail(ctx, subject, body.String(), n.recipients, query.Email)
}
