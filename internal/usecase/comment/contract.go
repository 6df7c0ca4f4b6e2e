package comment

import (
	"context"

	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
	domcontent "github.com/kailas-cloud/folio/internal/domain/content"
)

// Repository defines the storage contract for comments.
type Repository interface {
	Create(ctx context.Context, c *domcomment.Comment) error
	Get(ctx context.Context, id string) (domcomment.Comment, error)
	SaveModeration(ctx context.Context, c *domcomment.Comment) error
	ListByEssay(ctx context.Context, essayID string) ([]domcomment.Comment, error)
	ListAll(ctx context.Context) ([]domcomment.Comment, error)
}

// EssayChecker reports whether the essay being commented on exists.
type EssayChecker interface {
	Exists(ctx context.Context, kind domcontent.Kind, id string) (bool, error)
}
