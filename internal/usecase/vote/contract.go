package vote

import (
	"context"
	"time"

	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

// Ledger is a vote storage backend. Apply must run the read-modify-write
// of one target atomically; different targets must not contend.
type Ledger interface {
	Apply(ctx context.Context, target domvote.Target, voterID string, t domvote.Type, now time.Time) (domvote.Action, domvote.Tally, error)
	Tally(ctx context.Context, target domvote.Target) (domvote.Tally, error)
	Reset(ctx context.Context, target domvote.Target) error
	Tallies(ctx context.Context) ([]domvote.TargetTally, error)
}

// TargetResolver reports whether a vote target exists.
type TargetResolver interface {
	Exists(ctx context.Context, target domvote.Target) (bool, error)
}
