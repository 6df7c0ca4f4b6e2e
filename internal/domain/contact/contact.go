package contact

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Field limits.
const (
	MaxNameLength    = 100
	MaxSubjectLength = 200
	MinMessageLength = 10
	MaxMessageLength = 2000
)

// Message is a contact form submission.
type Message struct {
	Name     string
	Email    string
	Subject  string
	Body     string
	Honeypot string
	IP       string
	UA       string
}

// Validate trims the message and checks field constraints.
// The honeypot is not validated here; the classifier owns it.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)

	if n := utf8.RuneCountInString(m.Name); n == 0 || n > MaxNameLength {
		return domain.NewValidationError("name", "Name is required and must be less than 100 characters")
	}
	if _, err := mail.ParseAddress(m.Email); err != nil || strings.ContainsAny(m.Email, "<> ") {
		return domain.NewValidationError("email", "Valid email is required")
	}
	if n := utf8.RuneCountInString(m.Subject); n == 0 || n > MaxSubjectLength {
		return domain.NewValidationError("subject", "Subject is required and must be less than 200 characters")
	}
	if n := utf8.RuneCountInString(m.Body); n < MinMessageLength || n > MaxMessageLength {
		return domain.NewValidationError("message", "Message must be between 10 and 2000 characters")
	}
	return nil
}

// Email is an outbound message handed to the delivery collaborator.
type Email struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	ReplyTo  string    `json:"reply_to,omitempty"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text"`
	QueuedAt time.Time `json:"queued_at"`
}

// Rejections of the contact form. Both are client errors.
var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrLooksLikeSpam     = errors.New("message appears to be spam")
)
