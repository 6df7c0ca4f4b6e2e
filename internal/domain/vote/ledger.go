package vote

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ledger holds the active voters of one target and the derived counters.
// Invariant: upvotes == |voters with Up| and downvotes == |voters with Down|.
// Callers serialize access; a Ledger is not safe for concurrent use.
type Ledger struct {
	upvotes   int
	downvotes int
	voters    map[string]Entry
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{voters: make(map[string]Entry)}
}

// Apply performs the toggle transition for voterID and returns the action taken.
//
//	no entry          -> insert, increment t
//	entry of type t   -> remove, decrement t
//	entry of other t  -> replace, increment t, decrement other
//
// Counters are floored at zero.
func (l *Ledger) Apply(voterID string, t Type, now time.Time) Action {
	if l.voters == nil {
		l.voters = make(map[string]Entry)
	}

	existing, ok := l.voters[voterID]
	switch {
	case !ok:
		l.voters[voterID] = Entry{Type: t, VotedAt: now}
		l.inc(t)
		return Added
	case existing.Type == t:
		delete(l.voters, voterID)
		l.dec(t)
		return Retracted
	default:
		l.voters[voterID] = Entry{Type: t, VotedAt: now}
		l.inc(t)
		l.dec(existing.Type)
		return Switched
	}
}

// Reset clears all voters and zeroes both counters.
func (l *Ledger) Reset() {
	l.upvotes = 0
	l.downvotes = 0
	l.voters = make(map[string]Entry)
}

// Tally returns a read-only snapshot of the counters.
func (l *Ledger) Tally() Tally {
	return Tally{Upvotes: l.upvotes, Downvotes: l.downvotes}
}

// Voters returns the number of active voter entries.
func (l *Ledger) Voters() int { return len(l.voters) }

// VoteOf returns the active vote of voterID, if any.
func (l *Ledger) VoteOf(voterID string) (Entry, bool) {
	e, ok := l.voters[voterID]
	return e, ok
}

// Check verifies the counter invariant.
func (l *Ledger) Check() error {
	up, down := 0, 0
	for _, e := range l.voters {
		switch e.Type {
		case Up:
			up++
		case Down:
			down++
		default:
			return fmt.Errorf("voter entry with unknown type %q", e.Type)
		}
	}
	if up != l.upvotes || down != l.downvotes {
		return fmt.Errorf("counters %d/%d disagree with voters %d/%d", l.upvotes, l.downvotes, up, down)
	}
	return nil
}

func (l *Ledger) inc(t Type) {
	if t == Up {
		l.upvotes++
	} else {
		l.downvotes++
	}
}

func (l *Ledger) dec(t Type) {
	if t == Up {
		l.upvotes = max(l.upvotes-1, 0)
	} else {
		l.downvotes = max(l.downvotes-1, 0)
	}
}

type ledgerJSON struct {
	Upvotes   int              `json:"upvotes"`
	Downvotes int              `json:"downvotes"`
	Voters    map[string]Entry `json:"voters"`
}

// MarshalJSON encodes the ledger for embedded storage backends.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(ledgerJSON{Upvotes: l.upvotes, Downvotes: l.downvotes, Voters: l.voters})
}

// UnmarshalJSON decodes a stored ledger and verifies the invariant.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw ledgerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}
	l.upvotes = raw.Upvotes
	l.downvotes = raw.Downvotes
	l.voters = raw.Voters
	if l.voters == nil {
		l.voters = make(map[string]Entry)
	}
	return l.Check()
}
