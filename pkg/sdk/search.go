package folio

import (
	"context"
	"time"

	"github.com/kailas-cloud/folio/internal/domain/search/mode"
	"github.com/kailas-cloud/folio/internal/domain/search/request"
	"github.com/kailas-cloud/folio/internal/domain/search/result"
)

// SearchQuery selects and orders content.
type SearchQuery struct {
	Query string // empty matches everything
	Type  string // "essay", "project", "book"; empty or "all" for every kind
	Tag   string // substring match against tags
	Sort  string // "relevance" (default), "date", "views", "votes"
	Limit int    // 0 means uncapped
}

// SearchResult is one hit.
type SearchResult struct {
	Type          string
	ID            string
	Title         string
	URL           string
	Score         float64
	MatchedFields []string
	Tags          []string
	PublishedAt   time.Time
	Views         int
	NetVotes      int
}

// SearchPage is an ordered, capped result set. Total counts every hit
// before the limit.
type SearchPage struct {
	Results []SearchResult
	Total   int
}

// Search runs a query against every stored collection.
func (c *Client) Search(ctx context.Context, q SearchQuery) (_ SearchPage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := request.New(q.Query, q.Type, q.Tag, mode.Mode(q.Sort), q.Limit)
	if err != nil {
		return SearchPage{}, err
	}
	page, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return SearchPage{}, err
	}

	out := SearchPage{Results: make([]SearchResult, len(page.Results)), Total: page.Total}
	for i := range page.Results {
		out.Results[i] = toSearchResult(&page.Results[i])
	}
	return out, nil
}

func toSearchResult(r *result.Result) SearchResult {
	fields := make([]string, len(r.MatchedFields()))
	for i, f := range r.MatchedFields() {
		fields[i] = string(f)
	}
	return SearchResult{
		Type:          string(r.Kind()),
		ID:            r.ID(),
		Title:         r.Title(),
		URL:           r.URL(),
		Score:         r.Score(),
		MatchedFields: fields,
		Tags:          r.Tags(),
		PublishedAt:   r.PublishedAt(),
		Views:         r.Views(),
		NetVotes:      r.NetVotes(),
	}
}
