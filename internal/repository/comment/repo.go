package comment

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/folio/internal/domain"
	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
)

// store is the consumer interface for comments (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	RPush(ctx context.Context, key string, values ...[]byte) error
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}

// Repo stores comments as hashes with a per-essay id list.
type Repo struct {
	store  store
	prefix string
}

// New creates a comment repository. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: domain.KeyPrefixOr(prefix)}
}

// Create stores a new comment and links it to its essay.
func (r *Repo) Create(ctx context.Context, c *domcomment.Comment) error {
	if err := r.store.HSet(ctx, r.key(c.ID), buildHashFields(c)); err != nil {
		return fmt.Errorf("hset comment %s: %w", c.ID, err)
	}
	if err := r.store.RPush(ctx, r.essayKey(c.EssayID), []byte(c.ID)); err != nil {
		return fmt.Errorf("link comment %s: %w", c.ID, err)
	}
	return nil
}

// Get returns a comment by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcomment.Comment, error) {
	m, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return domcomment.Comment{}, fmt.Errorf("hgetall comment %s: %w", id, err)
	}
	if len(m) == 0 {
		return domcomment.Comment{}, fmt.Errorf("comment %q: %w", id, domain.ErrNotFound)
	}
	return parseHashFields(m), nil
}

// Exists reports whether a comment is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.key(id))
	if err != nil {
		return false, fmt.Errorf("exists comment %s: %w", id, err)
	}
	return ok, nil
}

// SaveModeration persists the moderation flags of c.
func (r *Repo) SaveModeration(ctx context.Context, c *domcomment.Comment) error {
	if err := r.store.HSet(ctx, r.key(c.ID), moderationFields(c)); err != nil {
		return fmt.Errorf("hset comment %s: %w", c.ID, err)
	}
	return nil
}

// ListByEssay returns the essay's comments in posting order.
func (r *Repo) ListByEssay(ctx context.Context, essayID string) ([]domcomment.Comment, error) {
	ids, err := r.store.LRange(ctx, r.essayKey(essayID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange essay %s: %w", essayID, err)
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(string(id))
	}
	return r.load(ctx, keys)
}

// ListAll returns every comment, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domcomment.Comment, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan comments: %w", err)
	}
	out, err := r.load(ctx, keys)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) load(ctx context.Context, keys []string) ([]domcomment.Comment, error) {
	out := make([]domcomment.Comment, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	for _, m := range hashes {
		if len(m) == 0 {
			continue
		}
		out = append(out, parseHashFields(m))
	}
	return out, nil
}

func (r *Repo) key(id string) string {
	return fmt.Sprintf("%scomment:%s", r.prefix, id)
}

func (r *Repo) essayKey(essayID string) string {
	return fmt.Sprintf("%scomments:%s", r.prefix, essayID)
}
