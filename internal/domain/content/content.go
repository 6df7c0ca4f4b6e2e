package content

import (
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the content variants exposed to search.
type Kind string

// Content kinds.
const (
	Essay   Kind = "essay"
	Project Kind = "project"
	Book    Kind = "book"
)

// Kinds lists every kind in collection order.
var Kinds = []Kind{Essay, Project, Book}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Essay || k == Project || k == Book
}

// ParseKind accepts singular and plural names case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "essay", "essays":
		return Essay, nil
	case "project", "projects":
		return Project, nil
	case "book", "books":
		return Book, nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// Fields holds the raw attributes of a content item.
// Body is the long text (essay content, project description, book notes);
// Summary is the short text shown in listings (excerpt, description, summary).
// Credits are the author (books) or the technology list (projects).
type Fields struct {
	ID          string
	Slug        string
	Title       string
	Body        string
	Summary     string
	Tags        []string
	Credits     []string
	PublishedAt time.Time
	Views       int
	NetVotes    int
}

// Item is one essay, project or book note (immutable snapshot).
type Item struct {
	kind        Kind
	id          string
	slug        string
	title       string
	body        string
	summary     string
	tags        []string
	credits     []string
	publishedAt time.Time
	views       int
	netVotes    int
}

// New validates and creates an Item.
func New(kind Kind, f Fields) (Item, error) {
	if !kind.IsValid() {
		return Item{}, fmt.Errorf("invalid content kind %q", kind)
	}
	if f.ID == "" {
		return Item{}, fmt.Errorf("content ID is required")
	}
	if f.Views < 0 {
		return Item{}, fmt.Errorf("views must be non-negative")
	}
	return Reconstruct(kind, f), nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(kind Kind, f Fields) Item {
	slug := f.Slug
	if slug == "" {
		slug = f.ID
	}
	summary := f.Summary
	if summary == "" && kind == Project {
		summary = f.Body
	}
	return Item{
		kind:        kind,
		id:          f.ID,
		slug:        slug,
		title:       f.Title,
		body:        f.Body,
		summary:     summary,
		tags:        cloneStrings(f.Tags),
		credits:     cloneStrings(f.Credits),
		publishedAt: f.PublishedAt,
		views:       f.Views,
		netVotes:    f.NetVotes,
	}
}

// Kind returns the variant discriminator.
func (it *Item) Kind() Kind { return it.kind }

// ID returns the item identifier.
func (it *Item) ID() string { return it.id }

// Slug returns the URL slug.
func (it *Item) Slug() string { return it.slug }

// Title returns the item title.
func (it *Item) Title() string { return it.title }

// Body returns the long text.
func (it *Item) Body() string { return it.body }

// Summary returns the excerpt, description or summary.
func (it *Item) Summary() string { return it.summary }

// Tags returns the item tags (empty for projects).
func (it *Item) Tags() []string { return it.tags }

// Credits returns the author or technology list.
func (it *Item) Credits() []string { return it.credits }

// PublishedAt returns the publish (or reading) date. Zero when unknown.
func (it *Item) PublishedAt() time.Time { return it.publishedAt }

// Views returns the view counter.
func (it *Item) Views() int { return it.views }

// NetVotes returns upvotes minus downvotes at snapshot time.
func (it *Item) NetVotes() int { return it.netVotes }

// TagTokens returns the tokens used for tag filtering and tag popularity:
// technologies for projects, tags otherwise.
func (it *Item) TagTokens() []string {
	if it.kind == Project {
		return it.credits
	}
	return it.tags
}

// URL returns the public path of the item.
func (it *Item) URL() string {
	return fmt.Sprintf("/%ss/%s", it.kind, it.slug)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
