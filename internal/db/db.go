// Package db defines the storage contracts the content, comment, outbox and
// redis vote repositories are written against.
package db

import (
	"context"
	"time"
)

// Store is what the process opens once; repositories accept only the narrow
// interface they need.
//
//nolint:interfacebloat // opened once, consumed through the narrow interfaces below
type Store interface {
	Pinger
	HashStore
	KVStore
	ListStore
	ScriptRunner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger is satisfied by anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore backs comments and redis vote tallies, one hash per record.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore holds serialized content documents.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// ListStore keeps append-only lists: comment ids per essay and the notification outbox.
type ListStore interface {
	RPush(ctx context.Context, key string, values ...[]byte) error
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}

// Script is a server-side Lua script. Name identifies it in errors and the
// store's script cache.
type Script struct {
	Name   string
	Source string
}

// ScriptRunner executes scripts atomically on the server.
type ScriptRunner interface {
	// RunInts executes the script and returns its integer array reply.
	RunInts(ctx context.Context, s *Script, keys, args []string) ([]int64, error)
}
