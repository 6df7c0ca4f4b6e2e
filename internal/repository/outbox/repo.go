package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/contact"
)

// store is the consumer interface for the outbox (ISP).
type store interface {
	RPush(ctx context.Context, key string, values ...[]byte) error
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}

// Repo queues outbound email for an external delivery worker.
type Repo struct {
	store store
	key   string
}

// New creates an outbox. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, key: domain.KeyPrefixOr(prefix) + "outbox:email"}
}

// Enqueue appends emails in order with one RPUSH.
func (r *Repo) Enqueue(ctx context.Context, emails ...contact.Email) error {
	values := make([][]byte, len(emails))
	for i := range emails {
		data, err := json.Marshal(emails[i])
		if err != nil {
			return fmt.Errorf("marshal email: %w", err)
		}
		values[i] = data
	}
	if err := r.store.RPush(ctx, r.key, values...); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}

// Peek returns up to n queued emails from the head without removing them.
func (r *Repo) Peek(ctx context.Context, n int) ([]contact.Email, error) {
	if n <= 0 {
		return []contact.Email{}, nil
	}
	raws, err := r.store.LRange(ctx, r.key, 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("peek outbox: %w", err)
	}
	out := make([]contact.Email, 0, len(raws))
	for _, raw := range raws {
		var e contact.Email
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode email: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
