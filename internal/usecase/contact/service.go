package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	domspam "github.com/kailas-cloud/folio/internal/domain/spam"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// MessageSent is returned when a submission was accepted and queued.
const MessageSent = "Your message has been sent successfully. You will receive a confirmation email shortly."

// Outbox queues outbound email for delivery.
type Outbox interface {
	Enqueue(ctx context.Context, emails ...domcontact.Email) error
}

// Classifier decides whether a submission is held for review.
type Classifier interface {
	Classify(sub domspam.Submission) domspam.Classification
}

// Info is the public contact card.
type Info struct {
	Email        string `json:"email"`
	Location     string `json:"location,omitempty"`
	Availability string `json:"availability,omitempty"`
	ResponseTime string `json:"responseTime,omitempty"`
}

// Config holds the addresses used for outbound email.
type Config struct {
	From  string
	Owner string
	Info  Info
}

// Service accepts contact form submissions.
type Service struct {
	outbox     Outbox
	classifier Classifier
	cfg        Config
	now        func() time.Time
}

// New creates a contact service.
func New(outbox Outbox, classifier Classifier, cfg Config) *Service {
	if cfg.Info.Email == "" {
		cfg.Info.Email = cfg.Owner
	}
	return &Service{outbox: outbox, classifier: classifier, cfg: cfg, now: time.Now}
}

// Info returns the public contact details.
func (s *Service) Info() Info { return s.cfg.Info }

// Send validates and classifies a submission, then queues the owner
// notification and the sender confirmation. A filled honeypot yields
// domcontact.ErrInvalidSubmission, a held message domcontact.ErrLooksLikeSpam.
func (s *Service) Send(ctx context.Context, msg domcontact.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	cl := s.classifier.Classify(domspam.Submission{
		Name:     msg.Name,
		Email:    msg.Email,
		Subject:  msg.Subject,
		Content:  msg.Body,
		Honeypot: msg.Honeypot,
	})
	metrics.SpamDecisionsTotal.WithLabelValues("contact", string(cl.Decision)).Inc()
	logger.FromContext(ctx).Info("contact classified",
		zap.String("decision", string(cl.Decision)),
		zap.Float64("score", cl.Score),
		zap.Any("signals", cl.Signals),
	)

	if msg.Honeypot != "" {
		return domcontact.ErrInvalidSubmission
	}
	if cl.Held() {
		return domcontact.ErrLooksLikeSpam
	}

	now := s.now().UTC()
	if err := s.outbox.Enqueue(ctx, s.notification(&msg, now), s.confirmation(&msg, now)); err != nil {
		return fmt.Errorf("queue contact email: %w", err)
	}
	return nil
}

func (s *Service) notification(msg *domcontact.Message, now time.Time) domcontact.Email {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s (%s)\n", msg.Name, msg.Email)
	fmt.Fprintf(&b, "Subject: %s\n\n", msg.Subject)
	b.WriteString(msg.Body)
	fmt.Fprintf(&b, "\n\n--\nIP: %s\nUser agent: %s\n", msg.IP, msg.UA)
	return domcontact.Email{
		From:     s.cfg.From,
		To:       s.cfg.Owner,
		ReplyTo:  msg.Email,
		Subject:  "New Contact Form Submission: " + msg.Subject,
		Text:     b.String(),
		QueuedAt: now,
	}
}

func (s *Service) confirmation(msg *domcontact.Message, now time.Time) domcontact.Email {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", msg.Name)
	b.WriteString("I've received your message and will get back to you as soon as possible.\n\n")
	b.WriteString("Your message:\n\n")
	b.WriteString(msg.Body)
	b.WriteString("\n")
	return domcontact.Email{
		From:     s.cfg.From,
		To:       msg.Email,
		Subject:  "Thank you for your message",
		Text:     b.String(),
		QueuedAt: now,
	}
}
