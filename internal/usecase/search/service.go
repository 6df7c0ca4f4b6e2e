package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/kailas-cloud/folio/internal/domain/content"
	"github.com/kailas-cloud/folio/internal/domain/search/request"
	"github.com/kailas-cloud/folio/internal/domain/search/result"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// Service runs cross-collection search over content snapshots.
// Matching and scoring are pure; the only blocking step is the snapshot fetch.
type Service struct {
	snapshots       SnapshotReader
	pool            *ants.Pool
	now             func() time.Time
	maxResults      int
	suggestionLimit int
	tagLimit        int
}

// New creates a search service. pool fans out per-kind work; nil runs one goroutine per kind.
func New(snapshots SnapshotReader, pool *ants.Pool) *Service {
	return &Service{
		snapshots:       snapshots,
		pool:            pool,
		now:             time.Now,
		suggestionLimit: DefaultSuggestionLimit,
		tagLimit:        DefaultTagLimit,
	}
}

// WithLimits overrides the result cap (0 = uncapped), suggestion and tag limits.
func (s *Service) WithLimits(maxResults, suggestions, tags int) *Service {
	if maxResults >= 0 {
		s.maxResults = maxResults
	}
	if suggestions > 0 {
		s.suggestionLimit = suggestions
	}
	if tags > 0 {
		s.tagLimit = tags
	}
	return s
}

// WithClock fixes "now" for recency scoring.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search matches, scores and aggregates content for a validated request.
// Queries shorter than request.MinQueryLength return an empty page without
// touching the snapshot.
func (s *Service) Search(ctx context.Context, req *request.Request) (Page, error) {
	metrics.SearchRequestsTotal.WithLabelValues(req.Type(), string(req.Sort())).Inc()

	if !req.Matchable() {
		return Page{Results: []result.Result{}}, nil
	}

	kinds := req.Kinds()
	lists := make([][]result.Result, len(kinds))
	now := s.now()
	err := s.fanOut(ctx, kinds, func(i int, items []content.Item) {
		lists[i] = scoreAll(req.Query(), items, now)
	})
	if err != nil {
		return Page{}, err
	}

	limit := req.Limit()
	if limit == 0 || (s.maxResults > 0 && limit > s.maxResults) {
		limit = s.maxResults
	}

	page := Aggregate(lists, AggregateOptions{
		Kinds: kinds,
		Tag:   req.Tag(),
		Sort:  req.Sort(),
		Limit: limit,
	})
	metrics.SearchResults.Observe(float64(page.Total))
	return page, nil
}

// Suggest returns title autocomplete entries across every kind.
func (s *Service) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < request.MinQueryLength {
		return []Suggestion{}, nil
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(query, snapshot, s.suggestionLimit), nil
}

// Tags returns the most frequent tag tokens merged across kinds.
func (s *Service) Tags(ctx context.Context) ([]TagCount, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return PopularTags(snapshot, s.tagLimit), nil
}

func (s *Service) snapshot(ctx context.Context) ([][]content.Item, error) {
	out := make([][]content.Item, len(content.Kinds))
	err := s.fanOut(ctx, content.Kinds, func(i int, items []content.Item) {
		out[i] = items
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fanOut fetches every kind concurrently and hands each snapshot to fn with
// its position. fn must only write to its own slot.
func (s *Service) fanOut(ctx context.Context, kinds []content.Kind, fn func(i int, items []content.Item)) error {
	var wg sync.WaitGroup
	errs := make([]error, len(kinds))

	for i, k := range kinds {
		task := func() {
			defer wg.Done()
			items, err := s.snapshots.Items(ctx, k)
			if err != nil {
				errs[i] = fmt.Errorf("snapshot %s: %w", k, err)
				return
			}
			fn(i, items)
		}

		wg.Add(1)
		if s.pool == nil {
			go task()
			continue
		}
		if err := s.pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit %s: %w", k, err)
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// scoreAll matches and scores one collection, preserving its order.
func scoreAll(query string, items []content.Item, now time.Time) []result.Result {
	var out []result.Result
	for i := range items {
		it := &items[i]
		matched := Match(query, it)
		if len(matched) == 0 {
			continue
		}
		out = append(out, result.FromItem(it, Relevance(it, query, matched, now), matched))
	}
	return out
}
