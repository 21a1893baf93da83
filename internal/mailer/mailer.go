package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uyeplus/app-campaign/internal/config"
	"github.com/uyeplus/app-campaign/internal/observability"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Delivery retry policy: 3 total attempts, backoff starting at 2s, doubling.
const (
	maxAttempts       = 3
	initialBackoff    = 2 * time.Second
	backoffMultiplier = 2
)

// Message is one notification to deliver. Data feeds the {{key}}
// placeholders in Subject and HTML.
type Message struct {
	To         string
	Subject    string
	HTML       string
	SenderName string
	Data       map[string]string
}

// Transport delivers a rendered message. The production transport is an SMTP
// client; tests substitute fakes.
type Transport interface {
	Deliver(ctx context.Context, from, fromName, to, subject, html, messageID string) error
}

// Mailer renders templates and delivers notifications with bounded retry
type Mailer struct {
	transport Transport
	sender    string
	logger    *zap.Logger
	sleep     func(time.Duration)
}

// NewMailer creates a mailer on top of a transport
func NewMailer(transport Transport, sender string, logger *zap.Logger) *Mailer {
	return &Mailer{
		transport: transport,
		sender:    sender,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// Send renders and delivers the message. It retries failed deliveries with
// exponential backoff and, after exhausting all attempts, returns a terminal
// error wrapping the last failure. On success it returns the message ID.
func (m *Mailer) Send(ctx context.Context, msg Message) (string, error) {
	subject := Render(msg.Subject, msg.Data)
	html := Render(msg.HTML, msg.Data)
	messageID := uuid.NewString()

	var lastErr error
	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			m.logger.Warn("retrying notification delivery",
				zap.String("message_id", messageID),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			m.sleep(backoff)
			backoff *= backoffMultiplier
		}

		lastErr = m.transport.Deliver(ctx, m.sender, msg.SenderName, msg.To, subject, html, messageID)
		if lastErr == nil {
			observability.NotificationAttempts.WithLabelValues("success").Inc()
			m.logger.Info("notification delivered",
				zap.String("message_id", messageID),
				zap.Int("attempts", attempt))
			return messageID, nil
		}
		observability.NotificationAttempts.WithLabelValues("failure").Inc()
	}

	m.logger.Error("notification delivery failed after all attempts",
		zap.String("message_id", messageID),
		zap.Int("attempts", maxAttempts),
		zap.Error(lastErr))
	return "", fmt.Errorf("notification delivery failed after %d attempts: %w", maxAttempts, lastErr)
}

// SMTPTransport delivers messages through a conventional SMTP relay
type SMTPTransport struct {
	client *mail.Client
}

// NewSMTPTransport creates the production SMTP transport
func NewSMTPTransport(cfg *config.Config) (*SMTPTransport, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPTransport{client: client}, nil
}

// Deliver sends one email through the SMTP relay
func (t *SMTPTransport) Deliver(ctx context.Context, from, fromName, to, subject, html, messageID string) error {
	msg := mail.NewMsg()
	if fromName != "" {
		if err := msg.FromFormat(fromName, from); err != nil {
			return fmt.Errorf("invalid sender address: %w", err)
		}
	} else if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetMessageIDWithValue(messageID)
	msg.SetBodyString(mail.TypeTextHTML, html)

	if err := t.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
