package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/content"
	"github.com/kailas-cloud/folio/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MinQueryLength is the shortest trimmed query that is matched at all.
	MinQueryLength = 2
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 256
	MaxTagLength   = 64
	// MaxLimit caps the optional result limit.
	MaxLimit = 100
)

// Request is a validated search query.
type Request struct {
	query string
	kinds []content.Kind
	tag   string
	sort  mode.Mode
	limit int
}

// New validates and normalizes search parameters.
// typ is "" or "all" for every kind; sort defaults to relevance; limit 0 means uncapped.
func New(query, typ, tag string, sort mode.Mode, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, domain.NewValidationError("q", fmt.Sprintf("query too long (max %d chars)", MaxQueryLength))
	}

	kinds := content.Kinds
	if typ != "" && !strings.EqualFold(typ, "all") {
		k, err := content.ParseKind(typ)
		if err != nil {
			return Request{}, domain.NewValidationError("type", err.Error())
		}
		kinds = []content.Kind{k}
	}

	tag = strings.TrimSpace(tag)
	if len(tag) > MaxTagLength {
		return Request{}, domain.NewValidationError("tag", fmt.Sprintf("tag too long (max %d chars)", MaxTagLength))
	}

	if sort == "" {
		sort = mode.Relevance
	}
	if !sort.IsValid() {
		return Request{}, domain.NewValidationError("sort", fmt.Sprintf("invalid sort mode: %q", sort))
	}

	if limit < 0 || limit > MaxLimit {
		return Request{}, domain.NewValidationError("limit", fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}

	return Request{query: query, kinds: kinds, tag: tag, sort: sort, limit: limit}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Kinds returns the content kinds to search.
func (r *Request) Kinds() []content.Kind { return r.kinds }

// Tag returns the optional tag filter.
func (r *Request) Tag() string { return r.tag }

// Sort returns the sort mode.
func (r *Request) Sort() mode.Mode { return r.sort }

// Limit returns the result cap, 0 when uncapped.
func (r *Request) Limit() int { return r.limit }

// Matchable reports whether the query is long enough to be matched.
// Shorter queries yield an empty result set, not an error.
func (r *Request) Matchable() bool {
	return Matchable(r.query)
}

// Matchable reports whether raw q, once trimmed, reaches MinQueryLength runes.
func Matchable(q string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(q)) >= MinQueryLength
}

// Type returns the type filter as reported back to clients.
func (r *Request) Type() string {
	if len(r.kinds) == 1 {
		return string(r.kinds[0])
	}
	return "all"
}
