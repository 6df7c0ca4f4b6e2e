package vote

import (
	"context"
	"fmt"

	domcontent "github.com/kailas-cloud/folio/internal/domain/content"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

type contentLookup interface {
	Exists(ctx context.Context, kind domcontent.Kind, id string) (bool, error)
}

type commentLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Targets resolves vote targets against the content and comment stores.
// Implements usecase/vote.TargetResolver.
type Targets struct {
	content  contentLookup
	comments commentLookup
}

// NewTargets creates a resolver.
func NewTargets(content contentLookup, comments commentLookup) *Targets {
	return &Targets{content: content, comments: comments}
}

// Exists reports whether the essay or comment behind target is stored.
func (t *Targets) Exists(ctx context.Context, target domvote.Target) (bool, error) {
	switch target.Kind {
	case domvote.TargetEssay:
		return t.content.Exists(ctx, domcontent.Essay, target.ID)
	case domvote.TargetComment:
		return t.comments.Exists(ctx, target.ID)
	default:
		return false, fmt.Errorf("unknown target kind %q", target.Kind)
	}
}
