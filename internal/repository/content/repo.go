package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kailas-cloud/folio/internal/domain"
	domcontent "github.com/kailas-cloud/folio/internal/domain/content"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

// store is the consumer interface for content documents (ISP).
type store interface {
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// TallyLister supplies net votes for essays. Optional.
type TallyLister interface {
	Tallies(ctx context.Context) ([]domvote.TargetTally, error)
}

// Repo reads content snapshots and writes seed documents.
// Implements usecase/search.SnapshotReader.
type Repo struct {
	store  store
	prefix string
	votes  TallyLister
}

// New creates a content repository. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: domain.KeyPrefixOr(prefix)}
}

// WithVotes merges ledger net votes into essay snapshots.
func (r *Repo) WithVotes(v TallyLister) *Repo {
	r.votes = v
	return r
}

// Items returns the published items of kind, newest first, ties by ID.
// Drafts and archived documents are skipped, as are keys deleted between
// SCAN and MGET.
func (r *Repo) Items(ctx context.Context, kind domcontent.Kind) ([]domcontent.Item, error) {
	keys, err := r.store.Scan(ctx, r.kindPrefix(kind)+"*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", kind, err)
	}
	if len(keys) == 0 {
		return []domcontent.Item{}, nil
	}

	raws, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget %s: %w", kind, err)
	}

	netVotes, err := r.netVotes(ctx, kind)
	if err != nil {
		return nil, err
	}

	items := make([]domcontent.Item, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		var d Doc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		if !d.Published() {
			continue
		}
		it, err := d.toItem(kind, netVotes[d.ID])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt(), items[j].PublishedAt()
		if !a.Equal(b) {
			return a.After(b)
		}
		return items[i].ID() < items[j].ID()
	})
	return items, nil
}

// Exists reports whether an item of kind with id is stored.
func (r *Repo) Exists(ctx context.Context, kind domcontent.Kind, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.key(kind, id))
	if err != nil {
		return false, fmt.Errorf("exists %s %s: %w", kind, id, err)
	}
	return ok, nil
}

// Put validates and stores a document, replacing any previous version.
func (r *Repo) Put(ctx context.Context, kind domcontent.Kind, d Doc) error {
	if err := d.normalizeStatus(); err != nil {
		return fmt.Errorf("validate %s %q: %w: %w", kind, d.ID, domain.ErrValidation, err)
	}
	if _, err := d.toItem(kind, 0); err != nil {
		return fmt.Errorf("validate %s %q: %w: %w", kind, d.ID, domain.ErrValidation, err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal %s %q: %w", kind, d.ID, err)
	}
	if err := r.store.Set(ctx, r.key(kind, d.ID), data); err != nil {
		return fmt.Errorf("set %s %q: %w", kind, d.ID, err)
	}
	return nil
}

// Seed stores every document of s and returns how many were written.
func (r *Repo) Seed(ctx context.Context, s *Seed) (int, error) {
	n := 0
	byKind := s.ByKind()
	for _, kind := range domcontent.Kinds {
		for _, d := range byKind[kind] {
			if err := r.Put(ctx, kind, d); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (r *Repo) netVotes(ctx context.Context, kind domcontent.Kind) (map[string]int, error) {
	out := make(map[string]int)
	if r.votes == nil || kind != domcontent.Essay {
		return out, nil
	}
	tallies, err := r.votes.Tallies(ctx)
	if err != nil {
		return nil, fmt.Errorf("essay tallies: %w", err)
	}
	for _, tt := range tallies {
		if tt.Target.Kind == domvote.TargetEssay {
			out[tt.Target.ID] = tt.Tally.Ratio()
		}
	}
	return out, nil
}

func (r *Repo) kindPrefix(kind domcontent.Kind) string {
	return fmt.Sprintf("%scontent:%s:", r.prefix, kind)
}

func (r *Repo) key(kind domcontent.Kind, id string) string {
	return r.kindPrefix(kind) + id
}
