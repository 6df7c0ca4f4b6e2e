package search

import (
	"slices"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain/content"
)

// Relevance weights.
const (
	weightTitle      = 10.0
	weightExactTitle = 5.0
	weightSummary    = 3.0
	weightTag        = 2.0
	weightCredit     = 2.0
	weightRecent     = 1.0 // published within recentWindow
	weightFresh      = 1.0 // additionally, published within freshWindow

	maxViewsBonus = 2.0
	viewsPerPoint = 100.0
	maxVotesBonus = 3.0

	recentWindow = 30 * 24 * time.Hour
	freshWindow  = 7 * 24 * time.Hour
)

// Relevance scores a matched item as the sum of independent non-negative signals.
// matched is the Match output for the same query and item. Deterministic for a fixed now.
func Relevance(it *content.Item, query string, matched []content.Field, now time.Time) float64 {
	q := strings.ToLower(query)
	score := 0.0

	if slices.Contains(matched, content.FieldTitle) {
		score += weightTitle
		if strings.ToLower(it.Title()) == q {
			score += weightExactTitle
		}
	}
	if it.Summary() != "" && strings.Contains(strings.ToLower(it.Summary()), q) {
		score += weightSummary
	}
	if slices.Contains(matched, content.FieldTags) {
		score += weightTag
	}
	if slices.Contains(matched, content.FieldAuthor) || slices.Contains(matched, content.FieldTechnologies) {
		score += weightCredit
	}

	if published := it.PublishedAt(); !published.IsZero() {
		age := now.Sub(published)
		if age < recentWindow {
			score += weightRecent
		}
		if age < freshWindow {
			score += weightFresh
		}
	}

	if views := it.Views(); views > 0 {
		score += min(float64(views)/viewsPerPoint, maxViewsBonus)
	}
	if votes := it.NetVotes(); votes > 0 {
		score += min(float64(votes), maxVotesBonus)
	}

	return score
}
