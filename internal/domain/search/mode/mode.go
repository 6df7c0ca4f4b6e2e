package mode

// Mode is the ordering applied to search results.
type Mode string

// Sort mode constants.
const (
	// Relevance orders by relevance score descending (default).
	Relevance Mode = "relevance"
	// Date orders by publish date, newest first.
	Date  Mode = "date"
	Views Mode = "views"
	// Votes orders by net votes descending.
	Votes Mode = "votes"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Relevance || m == Date || m == Views || m == Votes
}
