package search

import (
	"strings"

	"github.com/kailas-cloud/folio/internal/domain/content"
)

// Match returns the searchable fields of it whose lowercase text contains
// the lowercase query. The query must already be trimmed and at least
// request.MinQueryLength long; callers short-circuit shorter queries.
func Match(query string, it *content.Item) []content.Field {
	return MatchFields(query, it, content.SearchableFields(it.Kind())...)
}

// MatchFields is Match restricted to the given fields.
// Fields the item's kind does not carry never match.
func MatchFields(query string, it *content.Item, fields ...content.Field) []content.Field {
	q := strings.ToLower(query)
	var matched []content.Field
	for _, f := range fields {
		if anyContains(it.Values(f), q) {
			matched = append(matched, f)
		}
	}
	return matched
}

// anyContains reports whether any value contains the lowered query.
func anyContains(values []string, loweredQuery string) bool {
	for _, v := range values {
		if v != "" && strings.Contains(strings.ToLower(v), loweredQuery) {
			return true
		}
	}
	return false
}
