package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/folio/internal/db"
)

// scanCount is the COUNT hint passed to each SCAN page.
const scanCount = 250

// HSet writes fields into the hash at key. An empty field set is a no-op,
// since HSET without pairs is a syntax error on the server.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	cmd := s.b().Hset().Key(key).FieldValue()
	for f, v := range fields {
		cmd = cmd.FieldValue(f, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return nil
}

// HGetAll reads the hash at key. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := s.do(ctx, s.b().Hgetall().Key(key).Build()).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return m, nil
}

// HGetAllMulti pipelines HGETALL for every key. Results line up with keys;
// missing hashes come back empty.
func (s *Store) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	out := make([]map[string]string, len(keys))
	err := s.pipeline(ctx, keys, func(key string) rueidis.Completed {
		return s.b().Hgetall().Key(key).Build()
	}, func(i int, res rueidis.RedisResult) error {
		m, err := res.AsStrMap()
		if err != nil {
			return &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("%s: %w", keys[i], err)}
		}
		out[i] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// pipeline sends one command per key in a single round-trip and hands each
// reply to collect in key order. The first collect error stops the walk.
func (s *Store) pipeline(
	ctx context.Context,
	keys []string,
	build func(key string) rueidis.Completed,
	collect func(i int, res rueidis.RedisResult) error,
) error {
	cmds := make([]rueidis.Completed, 0, len(keys))
	for _, k := range keys {
		cmds = append(cmds, build(k))
	}
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := collect(i, res); err != nil {
			return err
		}
	}
	return nil
}

// Del removes keys. Absent keys are ignored.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.do(ctx, s.b().Del().Key(keys...).Build()).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.do(ctx, s.b().Exists().Key(key).Build()).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return n == 1, nil
}

// Scan walks the keyspace with SCAN MATCH pattern until the cursor wraps.
// Keys may repeat across pages; duplicates are dropped.
func (s *Store) Scan(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		seen   = make(map[string]struct{})
		cursor uint64
	)
	for {
		page, err := s.do(ctx, s.b().Scan().Cursor(cursor).Match(pattern).Count(scanCount).Build()).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: fmt.Errorf("%s: %w", pattern, err)}
		}
		for _, k := range page.Elements {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		if cursor = page.Cursor; cursor == 0 {
			return keys, nil
		}
	}
}
