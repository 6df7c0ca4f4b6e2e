package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/folio/internal/domain/content"
)

// Tag popularity limits.
const (
	DefaultTagLimit = 30
	tagsPerKind     = 20
)

// TagCount is a tag token with its frequency across kinds.
type TagCount struct {
	Tag   string
	Count int
}

// PopularTags counts tag tokens (technologies for projects) per kind, keeps
// the tagsPerKind most frequent of each kind, merges them by case-normalized
// token and returns them by descending count, ties by token.
func PopularTags(snapshot [][]content.Item, limit int) []TagCount {
	if limit <= 0 {
		limit = DefaultTagLimit
	}

	merged := make(map[string]int)
	for _, items := range snapshot {
		for _, tc := range topTokens(items, tagsPerKind) {
			merged[tc.Tag] += tc.Count
		}
	}

	out := toSortedCounts(merged)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topTokens(items []content.Item, n int) []TagCount {
	counts := make(map[string]int)
	for i := range items {
		seen := make(map[string]struct{})
		for _, tok := range items[i].TagTokens() {
			tok = normalizeToken(tok)
			if tok == "" {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			counts[tok]++
		}
	}
	out := toSortedCounts(counts)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func toSortedCounts(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, c := range counts {
		out = append(out, TagCount{Tag: tag, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
