package search

import (
	"slices"
	"sort"
	"strings"

	"github.com/kailas-cloud/folio/internal/domain/content"
	"github.com/kailas-cloud/folio/internal/domain/search/mode"
	"github.com/kailas-cloud/folio/internal/domain/search/result"
)

// AggregateOptions controls filtering, ordering and capping of merged results.
type AggregateOptions struct {
	Kinds []content.Kind // empty means every kind
	Tag   string         // case-insensitive substring against any tag token
	Sort  mode.Mode      // empty means relevance
	Limit int            // 0 means uncapped
}

// Page is a bounded ordered result set. Total counts every result that
// passed the filters, before the limit is applied.
type Page struct {
	Results []result.Result
	Total   int
}

// Aggregate merges per-kind candidate lists (in collection order), applies
// the type and tag filters, sorts stably and caps the result.
// Ties keep the original collection order. Side-effect free.
func Aggregate(lists [][]result.Result, opts AggregateOptions) Page {
	tag := strings.ToLower(strings.TrimSpace(opts.Tag))

	merged := make([]result.Result, 0, countAll(lists))
	for _, list := range lists {
		for i := range list {
			r := list[i]
			if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, r.Kind()) {
				continue
			}
			if tag != "" && !anyContains(r.Tags(), tag) {
				continue
			}
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, lessFor(opts.Sort, merged))

	total := len(merged)
	if opts.Limit > 0 && len(merged) > opts.Limit {
		merged = merged[:opts.Limit]
	}
	return Page{Results: merged, Total: total}
}

func lessFor(m mode.Mode, rs []result.Result) func(i, j int) bool {
	switch m {
	case mode.Date:
		return func(i, j int) bool {
			a, b := rs[i].PublishedAt(), rs[j].PublishedAt()
			if a.IsZero() != b.IsZero() {
				return b.IsZero() // undated results sink
			}
			return a.After(b)
		}
	case mode.Views:
		return func(i, j int) bool { return rs[i].Views() > rs[j].Views() }
	case mode.Votes:
		return func(i, j int) bool { return rs[i].NetVotes() > rs[j].NetVotes() }
	default:
		return func(i, j int) bool { return rs[i].Score() > rs[j].Score() }
	}
}

func countAll(lists [][]result.Result) int {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	return n
}
