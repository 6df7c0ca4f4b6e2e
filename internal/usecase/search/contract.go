package search

import (
	"context"

	"github.com/kailas-cloud/folio/internal/domain/content"
)

// SnapshotReader supplies immutable content snapshots per kind.
// Only published items are returned, in collection order.
type SnapshotReader interface {
	Items(ctx context.Context, kind content.Kind) ([]content.Item, error)
}
