package vote

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

var now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func openTestBadger(t *testing.T) *BadgerLedger {
	t.Helper()
	l, err := OpenBadgerLedger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func essay(id string) domvote.Target {
	return domvote.Target{Kind: domvote.TargetEssay, ID: id}
}

func TestBadger_ToggleAndSwitch(t *testing.T) {
	l := openTestBadger(t)
	ctx := context.Background()
	T := essay("T")

	action, tally, err := l.Apply(ctx, T, "A", domvote.Up, now)
	require.NoError(t, err)
	assert.Equal(t, domvote.Added, action)
	assert.Equal(t, domvote.Tally{Upvotes: 1}, tally)

	action, tally, err = l.Apply(ctx, T, "A", domvote.Down, now)
	require.NoError(t, err)
	assert.Equal(t, domvote.Switched, action)
	assert.Equal(t, domvote.Tally{Downvotes: 1}, tally)

	action, tally, err = l.Apply(ctx, T, "A", domvote.Down, now)
	require.NoError(t, err)
	assert.Equal(t, domvote.Retracted, action)
	assert.Equal(t, domvote.Tally{}, tally)
}

func TestBadger_TallyOfUnknownTargetIsEmpty(t *testing.T) {
	l := openTestBadger(t)
	tally, err := l.Tally(context.Background(), essay("nobody"))
	require.NoError(t, err)
	assert.Equal(t, domvote.Tally{}, tally)
}

func TestBadger_Reset(t *testing.T) {
	l := openTestBadger(t)
	ctx := context.Background()
	T := essay("T")
	_, _, _ = l.Apply(ctx, T, "A", domvote.Up, now)

	require.NoError(t, l.Reset(ctx, T))
	tally, err := l.Tally(ctx, T)
	require.NoError(t, err)
	assert.Equal(t, domvote.Tally{}, tally)

	action, _, err := l.Apply(ctx, T, "A", domvote.Up, now)
	require.NoError(t, err)
	assert.Equal(t, domvote.Added, action)
}

func TestBadger_ConcurrentSameTarget(t *testing.T) {
	l := openTestBadger(t)
	ctx := context.Background()
	T := essay("hot")

	const voters = 64
	var wg sync.WaitGroup
	for i := range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := l.Apply(ctx, T, fmt.Sprintf("v%d", i), domvote.Up, now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tally, err := l.Tally(ctx, T)
	require.NoError(t, err)
	assert.Equal(t, domvote.Tally{Upvotes: voters}, tally)
}

func TestBadger_Tallies(t *testing.T) {
	l := openTestBadger(t)
	ctx := context.Background()
	c := domvote.Target{Kind: domvote.TargetComment, ID: "c1"}
	_, _, _ = l.Apply(ctx, essay("e1"), "A", domvote.Up, now)
	_, _, _ = l.Apply(ctx, c, "A", domvote.Down, now)

	all, err := l.Tallies(ctx)
	require.NoError(t, err)
	got := map[domvote.Target]domvote.Tally{}
	for _, tt := range all {
		got[tt.Target] = tt.Tally
	}
	assert.Equal(t, map[domvote.Target]domvote.Tally{
		essay("e1"): {Upvotes: 1},
		c:           {Downvotes: 1},
	}, got)
}

func TestBadger_CorruptLedgerIsIntegrityError(t *testing.T) {
	l := openTestBadger(t)
	ctx := context.Background()
	T := essay("broken")

	raw := `{"upvotes":5,"downvotes":0,"voters":{}}`
	require.NoError(t, l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ledgerKey(T), []byte(raw))
	}))

	_, _, err := l.Apply(ctx, T, "A", domvote.Up, now)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}

func TestBadger_PingAfterClose(t *testing.T) {
	l, err := OpenBadgerLedger("", nil)
	require.NoError(t, err)
	require.NoError(t, l.Ping(context.Background()))
	require.NoError(t, l.Close())
	assert.Error(t, l.Ping(context.Background()))
}

func TestBadger_CanceledContext(t *testing.T) {
	l := openTestBadger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := l.Apply(ctx, essay("T"), "A", domvote.Up, now)
	assert.ErrorIs(t, err, context.Canceled)
}
