package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxContactMessageLength = 5000

// ContactMessage is what a visitor submits through the contact section.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (m *ContactMessage) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
}

func (m ContactMessage) Validate() error {
	if m.Name == "" {
		return errs.NewMissingRequiredFieldError("name", "Name is required")
	}
	if m.Email == "" {
		return errs.NewMissingRequiredFieldError("email", "Email is required")
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return errs.NewInvalidFieldError("email", "must be a valid email address")
	}
	if m.Message == "" {
		return errs.NewMissingRequiredFieldError("message", "Message is required")
	}
	if len(m.Message) > maxContactMessageLength {
		return errs.NewInvalidFieldError("message", fmt.Sprintf("must be at most %d characters", maxContactMessageLength))
	}
	return nil
}

type EmailSender interface {
	SendEmail(ctx context.Context, email Email) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// ContactNotifier forwards contact messages to the site owner. Email is required; the SMS
// alert is sent only when an SMS sender and number are configured, and its failure is logged
// without failing the request.
type ContactNotifier struct {
	email   EmailSender
	sms     SMSSender
	emailTo string
	smsTo   string
	logger  zerolog.Logger
}

type ContactNotifierOption func(*ContactNotifier)

func WithSMS(sender SMSSender, to string) ContactNotifierOption {
	return func(n *ContactNotifier) {
		n.sms = sender
		n.smsTo = to
	}
}

// WithRecipient fixes the email recipient instead of using the profile email.
func WithRecipient(to string) ContactNotifierOption {
	return func(n *ContactNotifier) {
		n.emailTo = to
	}
}

func NewContactNotifier(email EmailSender, opts ...ContactNotifierOption) *ContactNotifier {
	n := &ContactNotifier{
		email:  email,
		logger: log.With().Str("service", "contactNotifier").Logger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify delivers msg. profileEmail is used when no fixed recipient is configured.
func (n *ContactNotifier) Notify(ctx context.Context, msg ContactMessage, profileEmail string) error {
	to := n.emailTo
	if to == "" {
		to = strings.TrimSpace(profileEmail)
	}
	if n.email == nil || to == "" {
		return errs.NewNotificationError("email", errors.New("no email sender or recipient configured"))
	}

	var failures []string
	var successes []string

	err := n.email.SendEmail(ctx, Email{
		To:      []string{to},
		Subject: fmt.Sprintf("New message from %s", msg.Name),
		Html:    contactEmailHTML(msg),
		ReplyTo: msg.Email,
	})
	if err != nil {
		n.logger.Error().Err(err).Msg("Failed to send contact email")
		return errs.NewNotificationError("email", err)
	}
	successes = append(successes, "email")

	if n.sms != nil && n.smsTo != "" {
		if err := n.sms.SendSMS(ctx, n.smsTo, contactSMSBody(msg)); err != nil {
			n.logger.Error().Err(err).Msg("Failed to send contact SMS")
			failures = append(failures, fmt.Sprintf("sms: %v", err))
		} else {
			successes = append(successes, "sms")
		}
	}

	n.logger.Info().Strs("delivered", successes).Strs("failed", failures).Msg("Contact message forwarded")
	return nil
}

func contactEmailHTML(msg ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	return b.String()
}

func contactSMSBody(msg ContactMessage) string {
	body := fmt.Sprintf("Portfolio contact from %s <%s>: %s", msg.Name, msg.Email, msg.Message)
	if r := []rune(body); len(r) > 320 {
		body = string(r[:317]) + "..."
	}
	return body
}
