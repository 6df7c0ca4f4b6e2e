package content

import (
	"fmt"
	"time"

	domcontent "github.com/kailas-cloud/folio/internal/domain/content"
)

// Publication states of a document. Only published documents are searchable.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Doc is the stored JSON shape of a content item, also the seed file entry.
// Body holds the essay content, project description or book notes.
// A seed entry without a status is stored as published.
type Doc struct {
	ID           string    `json:"id" yaml:"id"`
	Status       string    `json:"status" yaml:"status"`
	Slug         string    `json:"slug,omitempty" yaml:"slug"`
	Title        string    `json:"title" yaml:"title"`
	Body         string    `json:"body,omitempty" yaml:"body"`
	Summary      string    `json:"summary,omitempty" yaml:"summary"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags"`
	Technologies []string  `json:"technologies,omitempty" yaml:"technologies"`
	Author       string    `json:"author,omitempty" yaml:"author"`
	PublishedAt  time.Time `json:"published_at,omitzero" yaml:"published_at"`
	Views        int       `json:"views,omitempty" yaml:"views"`
}

// Seed is a seed file: one list per kind.
type Seed struct {
	Essays   []Doc `yaml:"essays"`
	Projects []Doc `yaml:"projects"`
	Books    []Doc `yaml:"books"`
}

// ByKind returns the seed lists in collection order.
func (s *Seed) ByKind() map[domcontent.Kind][]Doc {
	return map[domcontent.Kind][]Doc{
		domcontent.Essay:   s.Essays,
		domcontent.Project: s.Projects,
		domcontent.Book:    s.Books,
	}
}

// Published reports whether the document may be served to readers.
// Documents stored without a status count as published.
func (d *Doc) Published() bool {
	return d.Status == StatusPublished || d.Status == ""
}

func (d *Doc) normalizeStatus() error {
	switch d.Status {
	case "":
		d.Status = StatusPublished
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		return fmt.Errorf("unknown status %q", d.Status)
	}
	return nil
}

func (d *Doc) toItem(kind domcontent.Kind, netVotes int) (domcontent.Item, error) {
	f := domcontent.Fields{
		ID:          d.ID,
		Slug:        d.Slug,
		Title:       d.Title,
		Body:        d.Body,
		Summary:     d.Summary,
		Tags:        d.Tags,
		PublishedAt: d.PublishedAt,
		Views:       d.Views,
		NetVotes:    netVotes,
	}
	switch kind {
	case domcontent.Project:
		f.Credits = d.Technologies
	case domcontent.Book:
		if d.Author != "" {
			f.Credits = []string{d.Author}
		}
	}
	return domcontent.New(kind, f)
}
