package folio

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

// Tally is the public summary of a target's votes.
type Tally struct {
	Target    string // "essay:<id>" or "comment:<id>"
	Upvotes   int
	Downvotes int
	Ratio     int // upvotes minus downvotes
}

// Tally returns the counters of a target such as "essay:go-errors".
func (c *Client) Tally(ctx context.Context, target string) (_ Tally, err error) {
	start := time.Now()
	defer func() { c.obs.observe("votes.tally", start, err) }()

	t, err := parseTarget(target)
	if err != nil {
		return Tally{}, err
	}
	tally, err := c.voteSvc.Tally(ctx, t)
	if err != nil {
		return Tally{}, err
	}
	return toTally(domvote.TargetTally{Target: t, Tally: tally}), nil
}

// ResetVotes clears every vote of a target.
func (c *Client) ResetVotes(ctx context.Context, target string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("votes.reset", start, err) }()

	t, err := parseTarget(target)
	if err != nil {
		return err
	}
	return c.voteSvc.Reset(ctx, t)
}

// Popular returns the most upvoted targets of a kind ("essay", "comment",
// or "" for both). Targets without upvotes are omitted.
func (c *Client) Popular(ctx context.Context, kind string, limit int) (_ []Tally, err error) {
	start := time.Now()
	defer func() { c.obs.observe("votes.popular", start, err) }()

	tts, err := c.voteSvc.Popular(ctx, domvote.TargetKind(kind), limit)
	if err != nil {
		return nil, err
	}
	out := make([]Tally, len(tts))
	for i, tt := range tts {
		out[i] = toTally(tt)
	}
	return out, nil
}

func parseTarget(s string) (domvote.Target, error) {
	t, err := domvote.ParseKey(s)
	if err != nil {
		return domvote.Target{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return t, nil
}

func toTally(tt domvote.TargetTally) Tally {
	return Tally{
		Target:    tt.Target.Key(),
		Upvotes:   tt.Tally.Upvotes,
		Downvotes: tt.Tally.Downvotes,
		Ratio:     tt.Tally.Ratio(),
	}
}
