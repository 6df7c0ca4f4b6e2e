package comment

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Field limits.
const (
	MaxAuthorLength  = 100
	MaxContentLength = 2000
)

// Draft is an unvalidated comment submission.
type Draft struct {
	EssayID  string
	ParentID string
	Author   string
	Email    string
	Content  string
	IP       string
	UA       string
}

// Validate trims the draft and checks field constraints.
func (d *Draft) Validate() error {
	d.EssayID = strings.TrimSpace(d.EssayID)
	d.ParentID = strings.TrimSpace(d.ParentID)
	d.Author = strings.TrimSpace(d.Author)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Content = strings.TrimSpace(d.Content)

	if d.EssayID == "" {
		return domain.NewValidationError("essayId", "Invalid essay ID")
	}
	if n := utf8.RuneCountInString(d.Author); n == 0 || n > MaxAuthorLength {
		return domain.NewValidationError("name", "Name is required and must be less than 100 characters")
	}
	if _, err := mail.ParseAddress(d.Email); err != nil || strings.ContainsAny(d.Email, "<> ") {
		return domain.NewValidationError("email", "Valid email is required")
	}
	if n := utf8.RuneCountInString(d.Content); n == 0 || n > MaxContentLength {
		return domain.NewValidationError("content", "Comment must be between 1 and 2000 characters")
	}
	return nil
}

// Comment is a persisted comment. Only the classification outcome is stored,
// never the spam score.
type Comment struct {
	ID          string
	EssayID     string
	ParentID    string
	Author      string
	Email       string
	Content     string
	Approved    bool
	Spam        bool
	IP          string
	UA          string
	CreatedAt   time.Time
	ModeratedAt time.Time
}

// FromDraft creates a comment with the classifier's flags: held submissions
// are stored unapproved and flagged as spam.
func FromDraft(id string, d Draft, held bool, now time.Time) Comment {
	return Comment{
		ID:        id,
		EssayID:   d.EssayID,
		ParentID:  d.ParentID,
		Author:    d.Author,
		Email:     d.Email,
		Content:   d.Content,
		Approved:  !held,
		Spam:      held,
		IP:        d.IP,
		UA:        d.UA,
		CreatedAt: now,
	}
}

// Visible reports whether the comment is shown under its essay.
func (c *Comment) Visible() bool { return c.Approved && !c.Spam }

// Pending reports whether the comment awaits moderation.
func (c *Comment) Pending() bool { return !c.Approved && !c.Spam }

// Moderation is an administrative transition.
type Moderation string

// Moderation transitions.
const (
	Approve  Moderation = "approve"
	Reject   Moderation = "reject"
	MarkSpam Moderation = "spam"
)

// ParseModeration parses an action path segment.
func ParseModeration(s string) (Moderation, error) {
	switch m := Moderation(s); m {
	case Approve, Reject, MarkSpam:
		return m, nil
	default:
		return "", domain.NewValidationError("action", "unknown moderation action "+s)
	}
}

// Moderate applies m.
//
//	approve  -> approved, not spam
//	reject   -> not approved, spam flag kept
//	spam     -> not approved, spam
func (c *Comment) Moderate(m Moderation, now time.Time) {
	switch m {
	case Approve:
		c.Approved, c.Spam = true, false
	case Reject:
		c.Approved = false
	case MarkSpam:
		c.Approved, c.Spam = false, true
	}
	c.ModeratedAt = now
}
