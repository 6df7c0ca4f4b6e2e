package vote

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

type lockedLedger struct {
	mu     sync.Mutex
	target domvote.Target
	ledger *domvote.Ledger
}

// MemoryLedger keeps ledgers in process memory with one mutex per target.
// The map lock is held only to find or create a target's entry.
type MemoryLedger struct {
	mu      sync.Mutex
	targets map[string]*lockedLedger
}

// NewMemoryLedger creates an empty in-memory backend.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{targets: make(map[string]*lockedLedger)}
}

func (m *MemoryLedger) entry(target domvote.Target, create bool) *lockedLedger {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.targets[target.Key()]
	if !ok && create {
		e = &lockedLedger{target: target, ledger: domvote.NewLedger()}
		m.targets[target.Key()] = e
	}
	return e
}

// Apply toggles the voter's vote under the target's lock.
func (m *MemoryLedger) Apply(_ context.Context, target domvote.Target, voterID string, t domvote.Type, now time.Time) (domvote.Action, domvote.Tally, error) {
	e := m.entry(target, true)
	e.mu.Lock()
	defer e.mu.Unlock()

	action := e.ledger.Apply(voterID, t, now)
	if err := e.ledger.Check(); err != nil {
		return "", domvote.Tally{}, &domain.IntegrityError{TargetID: target.Key(), Reason: err.Error()}
	}
	return action, e.ledger.Tally(), nil
}

// Tally returns the current counters; unknown targets have an empty tally.
func (m *MemoryLedger) Tally(_ context.Context, target domvote.Target) (domvote.Tally, error) {
	e := m.entry(target, false)
	if e == nil {
		return domvote.Tally{}, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Tally(), nil
}

// Reset empties the target's ledger.
func (m *MemoryLedger) Reset(_ context.Context, target domvote.Target) error {
	e := m.entry(target, false)
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Reset()
	return nil
}

// Tallies snapshots every target that has a ledger.
func (m *MemoryLedger) Tallies(_ context.Context) ([]domvote.TargetTally, error) {
	m.mu.Lock()
	entries := make([]*lockedLedger, 0, len(m.targets))
	for _, e := range m.targets {
		entries = append(entries, e)
	}
	m.mu.Unlock()

	out := make([]domvote.TargetTally, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, domvote.TargetTally{Target: e.target, Tally: e.ledger.Tally()})
		e.mu.Unlock()
	}
	return out, nil
}
