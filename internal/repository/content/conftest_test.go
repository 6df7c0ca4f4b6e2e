package content

import (
	"context"
	"strings"
	"sync"
	"testing"

	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

// mockStore is an in-memory implementation of the consumer interface.
type mockStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	scanErr error
	mgetErr error
	order   []string // scan order; defaults to insertion order
}

func (m *mockStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if m.mgetErr != nil {
		return nil, m.mgetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	if _, ok := m.data[key]; !ok {
		m.order = append(m.order, key)
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *mockStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for _, k := range m.order {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

type stubTallies []domvote.TargetTally

func (s stubTallies) Tallies(context.Context) ([]domvote.TargetTally, error) { return s, nil }

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, ""), ms
}
