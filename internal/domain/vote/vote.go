package vote

import (
	"fmt"
	"strings"
	"time"
)

// Type is the direction of a vote.
type Type string

// Vote types.
const (
	Up   Type = "up"
	Down Type = "down"
)

// IsValid checks if the type is up or down.
func (t Type) IsValid() bool {
	return t == Up || t == Down
}

// ParseType parses "up" or "down".
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("vote type must be %q or %q, got %q", Up, Down, s)
	}
	return t, nil
}

// TargetKind is the kind of voteable resource.
type TargetKind string

// Target kinds.
const (
	TargetEssay   TargetKind = "essay"
	TargetComment TargetKind = "comment"
)

// Target identifies a voteable resource.
type Target struct {
	Kind TargetKind
	ID   string
}

// NewTarget validates and creates a Target.
func NewTarget(kind TargetKind, id string) (Target, error) {
	if kind != TargetEssay && kind != TargetComment {
		return Target{}, fmt.Errorf("invalid target kind %q", kind)
	}
	if id == "" || strings.ContainsAny(id, ": \t\n") {
		return Target{}, fmt.Errorf("invalid target id %q", id)
	}
	return Target{Kind: kind, ID: id}, nil
}

// Key returns the ledger key, e.g. "essay:42".
func (t Target) Key() string { return string(t.Kind) + ":" + t.ID }

// ParseKey is the inverse of Key.
func ParseKey(key string) (Target, error) {
	kind, id, ok := strings.Cut(key, ":")
	if !ok {
		return Target{}, fmt.Errorf("malformed target key %q", key)
	}
	return NewTarget(TargetKind(kind), id)
}

// Tally is the public summary of a ledger.
type Tally struct {
	Upvotes   int
	Downvotes int
}

// Ratio is upvotes minus downvotes. Used everywhere a ratio is exposed.
func (t Tally) Ratio() int { return t.Upvotes - t.Downvotes }

// Action reports what a vote did to the ledger.
type Action string

// Vote actions.
const (
	Added     Action = "added"
	Retracted Action = "retracted"
	Switched  Action = "switched"
)

// Entry is the active vote of one voter.
type Entry struct {
	Type    Type      `json:"type"`
	VotedAt time.Time `json:"voted_at"`
}

// TargetTally pairs a target with its tally (popular listings, analytics).
type TargetTally struct {
	Target Target
	Tally  Tally
}
