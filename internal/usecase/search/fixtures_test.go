package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kailas-cloud/folio/internal/domain/content"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return testNow.Add(-time.Duration(d) * 24 * time.Hour) }

func essay(id, title string, tags []string, published time.Time) content.Item {
	return content.Reconstruct(content.Essay, content.Fields{
		ID: id, Slug: id, Title: title, Tags: tags, PublishedAt: published,
	})
}

// --- Mocks ---

type mockSnapshots struct {
	mu    sync.Mutex
	items map[content.Kind][]content.Item
	errs  map[content.Kind]error
	calls int
}

func (m *mockSnapshots) Items(_ context.Context, kind content.Kind) ([]content.Item, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if err := m.errs[kind]; err != nil {
		return nil, err
	}
	return m.items[kind], nil
}

var errSnapshot = errors.New("store unavailable")
