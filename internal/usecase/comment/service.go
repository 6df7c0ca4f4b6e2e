package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
	domcontent "github.com/kailas-cloud/folio/internal/domain/content"
	domspam "github.com/kailas-cloud/folio/internal/domain/spam"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// Response messages.
const (
	MessagePosted    = "Comment posted successfully"
	MessageModerated = "Comment submitted for moderation"
)

// Classifier decides whether a submission is held for review.
type Classifier interface {
	Classify(sub domspam.Submission) domspam.Classification
}

// Posted is the outcome of posting a comment. Held comments are not errors.
type Posted struct {
	Comment domcomment.Comment
	Message string
}

// Service handles posting, listing and moderating comments.
type Service struct {
	repo       Repository
	essays     EssayChecker
	classifier Classifier
	newID      func() string
	now        func() time.Time
}

// New creates a comment service.
func New(repo Repository, essays EssayChecker, classifier Classifier) *Service {
	return &Service{
		repo:       repo,
		essays:     essays,
		classifier: classifier,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Post validates, classifies and stores a comment. The spam score is logged,
// never stored.
func (s *Service) Post(ctx context.Context, d domcomment.Draft, honeypot string) (Posted, error) {
	if err := d.Validate(); err != nil {
		return Posted{}, err
	}
	ok, err := s.essays.Exists(ctx, domcontent.Essay, d.EssayID)
	if err != nil {
		return Posted{}, fmt.Errorf("check essay %s: %w", d.EssayID, err)
	}
	if !ok {
		return Posted{}, fmt.Errorf("essay %q: %w", d.EssayID, domain.ErrNotFound)
	}

	cl := s.classifier.Classify(domspam.Submission{
		Name:     d.Author,
		Email:    d.Email,
		Content:  d.Content,
		Honeypot: honeypot,
		EssayID:  d.EssayID,
	})
	metrics.SpamDecisionsTotal.WithLabelValues("comment", string(cl.Decision)).Inc()
	logger.FromContext(ctx).Info("comment classified",
		zap.String("essay_id", d.EssayID),
		zap.String("decision", string(cl.Decision)),
		zap.Float64("score", cl.Score),
		zap.Any("signals", cl.Signals),
	)

	c := domcomment.FromDraft(s.newID(), d, cl.Held(), s.now().UTC())
	if err := s.repo.Create(ctx, &c); err != nil {
		return Posted{}, fmt.Errorf("create comment: %w", err)
	}

	msg := MessagePosted
	if cl.Held() {
		msg = MessageModerated
	}
	return Posted{Comment: c, Message: msg}, nil
}

// ForEssay returns the essay's visible comments in posting order.
func (s *Service) ForEssay(ctx context.Context, essayID string) ([]domcomment.Comment, error) {
	all, err := s.repo.ListByEssay(ctx, essayID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return filter(all, (*domcomment.Comment).Visible), nil
}

// Pending returns comments awaiting moderation, newest first.
func (s *Service) Pending(ctx context.Context) ([]domcomment.Comment, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return filter(all, (*domcomment.Comment).Pending), nil
}

// Spam returns comments flagged as spam, newest first.
func (s *Service) Spam(ctx context.Context) ([]domcomment.Comment, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return filter(all, func(c *domcomment.Comment) bool { return c.Spam }), nil
}

// Moderate applies an administrative transition to a comment.
func (s *Service) Moderate(ctx context.Context, id string, m domcomment.Moderation) (domcomment.Comment, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcomment.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	c.Moderate(m, s.now().UTC())
	if err := s.repo.SaveModeration(ctx, &c); err != nil {
		return domcomment.Comment{}, fmt.Errorf("save moderation: %w", err)
	}
	return c, nil
}

func filter(cs []domcomment.Comment, keep func(*domcomment.Comment) bool) []domcomment.Comment {
	out := make([]domcomment.Comment, 0, len(cs))
	for i := range cs {
		if keep(&cs[i]) {
			out = append(out, cs[i])
		}
	}
	return out
}
