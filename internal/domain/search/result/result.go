package result

import (
	"time"

	"github.com/kailas-cloud/folio/internal/domain/content"
)

// Result is a single search hit. Created per query, never persisted.
type Result struct {
	kind          content.Kind
	id            string
	title         string
	url           string
	score         float64
	matchedFields []content.Field
	tags          []string
	publishedAt   time.Time
	views         int
	netVotes      int
}

// FromItem builds a result for a matched item.
func FromItem(it *content.Item, score float64, matched []content.Field) Result {
	return Result{
		kind:          it.Kind(),
		id:            it.ID(),
		title:         it.Title(),
		url:           it.URL(),
		score:         score,
		matchedFields: matched,
		tags:          it.TagTokens(),
		publishedAt:   it.PublishedAt(),
		views:         it.Views(),
		netVotes:      it.NetVotes(),
	}
}

// Kind returns the content type of the hit.
func (r *Result) Kind() content.Kind { return r.kind }

// ID returns the content identifier.
func (r *Result) ID() string { return r.id }

// Title returns the content title.
func (r *Result) Title() string { return r.title }

// URL returns the public path.
func (r *Result) URL() string { return r.url }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// MatchedFields returns the fields that contained the query.
func (r *Result) MatchedFields() []content.Field { return r.matchedFields }

// Tags returns the tag tokens used by the tag filter.
func (r *Result) Tags() []string { return r.tags }

// PublishedAt returns the publish date.
func (r *Result) PublishedAt() time.Time { return r.publishedAt }

// Views returns the view counter.
func (r *Result) Views() int { return r.views }

// NetVotes returns upvotes minus downvotes.
func (r *Result) NetVotes() int { return r.netVotes }
