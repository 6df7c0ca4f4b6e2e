package vote

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// DefaultPopularLimit caps popular listings and analytics rankings.
const DefaultPopularLimit = 10

// Outcome is the result of one vote.
type Outcome struct {
	Action domvote.Action
	Tally  domvote.Tally
}

// Analytics summarizes votes across every target.
type Analytics struct {
	TotalUpvotes   int
	TotalDownvotes int
	MostVoted      []domvote.TargetTally
}

// Service exposes the vote, tally and reset operations of the ledger.
// Voter entries are never visible outside the backend.
type Service struct {
	ledger  Ledger
	targets TargetResolver
	now     func() time.Time
}

// New creates a vote service.
func New(ledger Ledger, targets TargetResolver) *Service {
	return &Service{ledger: ledger, targets: targets, now: time.Now}
}

// WithClock fixes the vote timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Vote toggles voterID's vote of type t on target.
func (s *Service) Vote(ctx context.Context, target domvote.Target, voterID string, t domvote.Type) (Outcome, error) {
	if !t.IsValid() {
		return Outcome{}, domain.NewValidationError("voteType", "Invalid vote type")
	}
	if strings.TrimSpace(voterID) == "" {
		return Outcome{}, domain.NewValidationError("voter", "voter identity is required")
	}
	if err := s.requireTarget(ctx, target); err != nil {
		return Outcome{}, err
	}

	action, tally, err := s.ledger.Apply(ctx, target, voterID, t, s.now())
	if err != nil {
		return Outcome{}, fmt.Errorf("apply vote %s: %w", target.Key(), err)
	}
	metrics.VotesTotal.WithLabelValues(string(target.Kind), string(action)).Inc()
	return Outcome{Action: action, Tally: tally}, nil
}

// Tally returns a read-only snapshot of the target's counters.
func (s *Service) Tally(ctx context.Context, target domvote.Target) (domvote.Tally, error) {
	if err := s.requireTarget(ctx, target); err != nil {
		return domvote.Tally{}, err
	}
	tally, err := s.ledger.Tally(ctx, target)
	if err != nil {
		return domvote.Tally{}, fmt.Errorf("tally %s: %w", target.Key(), err)
	}
	return tally, nil
}

// Reset clears every voter of the target. Administrative only.
func (s *Service) Reset(ctx context.Context, target domvote.Target) error {
	if err := s.requireTarget(ctx, target); err != nil {
		return err
	}
	if err := s.ledger.Reset(ctx, target); err != nil {
		return fmt.Errorf("reset %s: %w", target.Key(), err)
	}
	metrics.VoteResetsTotal.Inc()
	return nil
}

// Popular returns targets of the given kind ordered by upvotes, then net votes.
// Targets without upvotes are omitted. kind "" means every kind.
func (s *Service) Popular(ctx context.Context, kind domvote.TargetKind, limit int) ([]domvote.TargetTally, error) {
	all, err := s.ledger.Tallies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tallies: %w", err)
	}
	out := all[:0]
	for _, tt := range all {
		if (kind == "" || tt.Target.Kind == kind) && tt.Tally.Upvotes > 0 {
			out = append(out, tt)
		}
	}
	return rank(out, limit), nil
}

// Analytics sums counters across all targets and ranks the most upvoted.
func (s *Service) Analytics(ctx context.Context) (Analytics, error) {
	all, err := s.ledger.Tallies(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("list tallies: %w", err)
	}
	var a Analytics
	for _, tt := range all {
		a.TotalUpvotes += tt.Tally.Upvotes
		a.TotalDownvotes += tt.Tally.Downvotes
	}
	a.MostVoted = rank(all, DefaultPopularLimit)
	return a, nil
}

func (s *Service) requireTarget(ctx context.Context, target domvote.Target) error {
	ok, err := s.targets.Exists(ctx, target)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", target.Key(), err)
	}
	if !ok {
		return fmt.Errorf("%s %q: %w", target.Kind, target.ID, domain.ErrNotFound)
	}
	return nil
}

func rank(tts []domvote.TargetTally, limit int) []domvote.TargetTally {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	sort.Slice(tts, func(i, j int) bool {
		a, b := tts[i].Tally, tts[j].Tally
		if a.Upvotes != b.Upvotes {
			return a.Upvotes > b.Upvotes
		}
		if a.Ratio() != b.Ratio() {
			return a.Ratio() > b.Ratio()
		}
		return tts[i].Target.Key() < tts[j].Target.Key()
	})
	if len(tts) > limit {
		tts = tts[:limit]
	}
	return tts
}
