package vote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

const (
	badgerKeyPrefix    = "votes/"
	maxConflictRetries = 16
)

// zapBadgerLogger adapts zap to badger.Logger.
type zapBadgerLogger struct {
	s *zap.SugaredLogger
}

var _ badger.Logger = (*zapBadgerLogger)(nil)

func (l *zapBadgerLogger) Errorf(msg string, args ...any)   { l.s.Errorf(msg, args...) }
func (l *zapBadgerLogger) Warningf(msg string, args ...any) { l.s.Warnf(msg, args...) }
func (l *zapBadgerLogger) Infof(msg string, args ...any)    { l.s.Debugf(msg, args...) }
func (l *zapBadgerLogger) Debugf(msg string, args ...any)   { l.s.Debugf(msg, args...) }

// BadgerLedger keeps one JSON-encoded ledger per target in an embedded
// Badger database. Writers of one target queue on a per-target mutex and
// each toggle runs in a serializable transaction; ErrConflict is retried.
type BadgerLedger struct {
	db    *badger.DB
	locks sync.Map // target key -> *sync.Mutex
}

// OpenBadgerLedger opens (creating if needed) a ledger database at path.
// An empty path opens an in-memory database.
func OpenBadgerLedger(path string, log *zap.Logger) (*BadgerLedger, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = &zapBadgerLogger{s: log.Named("badger").Sugar()}

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerLedger{db: bdb}, nil
}

// Close closes the database.
func (l *BadgerLedger) Close() error {
	return l.db.Close()
}

// Ping fails once the database is closed.
func (l *BadgerLedger) Ping(_ context.Context) error {
	if l.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

// Apply toggles the voter's vote in a read-modify-write transaction.
func (l *BadgerLedger) Apply(ctx context.Context, target domvote.Target, voterID string, t domvote.Type, now time.Time) (domvote.Action, domvote.Tally, error) {
	var (
		action domvote.Action
		tally  domvote.Tally
	)
	unlock := l.lock(target)
	defer unlock()

	err := l.update(ctx, func(txn *badger.Txn) error {
		ledger, err := load(txn, target)
		if err != nil {
			return err
		}
		action = ledger.Apply(voterID, t, now)
		if err := ledger.Check(); err != nil {
			return &domain.IntegrityError{TargetID: target.Key(), Reason: err.Error()}
		}
		tally = ledger.Tally()
		return store(txn, target, ledger)
	})
	if err != nil {
		return "", domvote.Tally{}, fmt.Errorf("apply %s: %w", target.Key(), err)
	}
	return action, tally, nil
}

// Tally reads the counters; missing ledgers read as empty.
func (l *BadgerLedger) Tally(_ context.Context, target domvote.Target) (domvote.Tally, error) {
	var tally domvote.Tally
	err := l.db.View(func(txn *badger.Txn) error {
		ledger, err := load(txn, target)
		if err != nil {
			return err
		}
		tally = ledger.Tally()
		return nil
	})
	if err != nil {
		return domvote.Tally{}, fmt.Errorf("tally %s: %w", target.Key(), err)
	}
	return tally, nil
}

// Reset deletes the target's ledger.
func (l *BadgerLedger) Reset(ctx context.Context, target domvote.Target) error {
	unlock := l.lock(target)
	defer unlock()

	err := l.update(ctx, func(txn *badger.Txn) error {
		return txn.Delete(ledgerKey(target))
	})
	if err != nil {
		return fmt.Errorf("reset %s: %w", target.Key(), err)
	}
	return nil
}

// Tallies iterates every stored ledger.
func (l *BadgerLedger) Tallies(_ context.Context) ([]domvote.TargetTally, error) {
	out := []domvote.TargetTally{}
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			target, err := domvote.ParseKey(string(item.Key()[len(badgerKeyPrefix):]))
			if err != nil {
				continue
			}
			ledger := domvote.NewLedger()
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, ledger) }); err != nil {
				return &domain.IntegrityError{TargetID: target.Key(), Reason: err.Error()}
			}
			out = append(out, domvote.TargetTally{Target: target, Tally: ledger.Tally()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tallies: %w", err)
	}
	return out, nil
}

func (l *BadgerLedger) lock(target domvote.Target) func() {
	mu, _ := l.locks.LoadOrStore(target.Key(), &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// update runs fn in a read-write transaction, retrying on write conflicts.
func (l *BadgerLedger) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for range maxConflictRetries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = l.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("gave up after %d conflicts: %w", maxConflictRetries, err)
}

func load(txn *badger.Txn, target domvote.Target) (*domvote.Ledger, error) {
	ledger := domvote.NewLedger()
	item, err := txn.Get(ledgerKey(target))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ledger, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error { return json.Unmarshal(val, ledger) })
	if err != nil {
		return nil, &domain.IntegrityError{TargetID: target.Key(), Reason: err.Error()}
	}
	return ledger, nil
}

func store(txn *badger.Txn, target domvote.Target, ledger *domvote.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return txn.Set(ledgerKey(target), data)
}

func ledgerKey(t domvote.Target) []byte {
	return []byte(badgerKeyPrefix + t.Key())
}
