package search

import (
	"github.com/kailas-cloud/folio/internal/domain/content"
)

// Suggestion limits.
const (
	DefaultSuggestionLimit = 10
	suggestionsPerKind     = 5
)

// Suggestion is an autocomplete entry.
type Suggestion struct {
	Text string
	Kind content.Kind
}

// Suggest matches the query against titles only, at most suggestionsPerKind
// per kind, in kind order, capped at limit.
func Suggest(query string, snapshot [][]content.Item, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	out := make([]Suggestion, 0, limit)
	for _, items := range snapshot {
		taken := 0
		for i := range items {
			if taken == suggestionsPerKind || len(out) == limit {
				break
			}
			it := &items[i]
			if len(MatchFields(query, it, content.FieldTitle)) == 0 {
				continue
			}
			out = append(out, Suggestion{Text: it.Title(), Kind: it.Kind()})
			taken++
		}
	}
	return out
}
