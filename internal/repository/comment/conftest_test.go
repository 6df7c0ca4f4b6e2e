package comment

import (
	"context"
	"strings"
	"testing"
	"time"

	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
)

// mockStore is an in-memory implementation of the consumer interface.
type mockStore struct {
	hashes map[string]map[string]string
	lists  map[string][][]byte
	hsetFn func(ctx context.Context, key string, fields map[string]string) error
}

func newMockStore() *mockStore {
	return &mockStore{hashes: map[string]map[string]string{}, lists: map[string][][]byte{}}
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return m.hashes[key], nil
}

func (m *mockStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *mockStore) Scan(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.hashes {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *mockStore) RPush(_ context.Context, key string, values ...[]byte) error {
	m.lists[key] = append(m.lists[key], values...)
	return nil
}

func (m *mockStore) LRange(_ context.Context, key string, _, _ int64) ([][]byte, error) {
	return m.lists[key], nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := newMockStore()
	return New(ms, ""), ms
}

func testComment(id, essayID string, created time.Time, held bool) domcomment.Comment {
	d := domcomment.Draft{EssayID: essayID, Author: "Ann", Email: "ann@example.com", Content: "hi " + id}
	return domcomment.FromDraft(id, d, held, created)
}
