package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/folio/internal/db"
)

var _ db.Store = (*Store)(nil)

const (
	defaultClientName  = "folio"
	defaultDialTimeout = 5 * time.Second
	readyPollInterval  = 100 * time.Millisecond
)

// Config describes how to reach the comment and vote store.
// Addrs with more than one entry enables cluster mode unless Standalone is set.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	DB          int
	ClientName  string
	DialTimeout time.Duration
	Standalone  bool
}

func (c Config) clientOption() rueidis.ClientOption {
	name := c.ClientName
	if name == "" {
		name = defaultClientName
	}
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	return rueidis.ClientOption{
		InitAddress:       c.Addrs,
		Username:          c.Username,
		Password:          c.Password,
		SelectDB:          c.DB,
		ClientName:        name,
		ForceSingleClient: c.Standalone || len(c.Addrs) == 1,
		ConnWriteTimeout:  dial,
		Dialer:            net.Dialer{Timeout: dial},
		// Tallies and moderation flags change on every request.
		DisableCache: true,
	}
}

// Store is the rueidis-backed db.Store shared by comments and the redis vote ledger.
type Store struct {
	client  rueidis.Client
	scripts sync.Map // name -> *rueidis.Lua
}

// NewStore dials the server described by cfg.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis store: at least one address is required")
	}
	client, err := rueidis.NewClient(cfg.clientOption())
	if err != nil {
		return nil, fmt.Errorf("redis store: connect %v: %w", cfg.Addrs, err)
	}
	return &Store{client: client}, nil
}

// Ping issues PING.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady blocks until a PING succeeds. On timeout the last ping error is
// reported alongside the context error.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lastErr := s.Ping(ctx)
	if lastErr == nil {
		return nil
	}

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("store not ready after %s: %w", timeout, errors.Join(ctx.Err(), lastErr))
		case <-ticker.C:
			if lastErr = s.Ping(ctx); lastErr == nil {
				return nil
			}
		}
	}
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}
