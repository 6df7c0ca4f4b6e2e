package folio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/folio/internal/db/redis"
	"github.com/kailas-cloud/folio/internal/domain/search/request"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
	commentrepo "github.com/kailas-cloud/folio/internal/repository/comment"
	contentrepo "github.com/kailas-cloud/folio/internal/repository/content"
	voterepo "github.com/kailas-cloud/folio/internal/repository/vote"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	searchuc "github.com/kailas-cloud/folio/internal/usecase/search"
	voteuc "github.com/kailas-cloud/folio/internal/usecase/vote"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultSearchWorkers    = 4
)

// Internal interfaces, swapped for fakes in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Page, error)
}

type voteUseCase interface {
	Tally(ctx context.Context, target domvote.Target) (domvote.Tally, error)
	Reset(ctx context.Context, target domvote.Target) error
	Popular(ctx context.Context, kind domvote.TargetKind, limit int) ([]domvote.TargetTally, error)
}

type seeder interface {
	Seed(ctx context.Context, s *contentrepo.Seed) (int, error)
}

// store is the subset of the database the client owns directly.
type store interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the folio embedded client entry point.
type Client struct {
	store     store
	searchSvc searchUseCase
	voteSvc   voteUseCase
	seeder    seeder
	healthSvc healthUseCase
	obs       *observer
	closers   []func()
}

// New creates a folio Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		votesBackend:  VotesRedis,
		searchWorkers: defaultSearchWorkers,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("folio: database address required (use WithValkey or WithRedis)")
	}

	s, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("folio: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		s.Close()
		return nil, err
	}
	c, err := wireClient(s, cfg, obs)
	if err != nil {
		s.Close()
		return nil, err
	}
	return c, nil
}

// createStore opens the shared store. rueidis speaks both Redis and Valkey.
func createStore(cfg *clientConfig) (*dbRedis.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			ClientName: "folio-sdk",
		})
		if err != nil {
			return nil, fmt.Errorf("folio: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("folio: unknown driver %q", cfg.driver)
	}
}

func wireClient(s *dbRedis.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	c := &Client{store: s, obs: obs}

	ledger, err := c.openLedger(s, cfg)
	if err != nil {
		return nil, err
	}

	content := contentrepo.New(s, cfg.keyPrefix).WithVotes(ledger)
	comments := commentrepo.New(s, cfg.keyPrefix)

	pool, err := ants.NewPool(cfg.searchWorkers)
	if err != nil {
		c.release()
		return nil, fmt.Errorf("folio: create search pool: %w", err)
	}
	c.closers = append(c.closers, pool.Release)

	var healthOpts []healthuc.Option
	if p, ok := ledger.(healthuc.Pinger); ok {
		healthOpts = append(healthOpts, healthuc.WithComponent(healthuc.ComponentVotes, p))
	}

	c.searchSvc = searchuc.New(content, pool)
	c.voteSvc = voteuc.New(ledger, voterepo.NewTargets(content, comments))
	c.seeder = content
	c.healthSvc = healthuc.New(s, healthOpts...)
	return c, nil
}

func (c *Client) openLedger(s *dbRedis.Store, cfg *clientConfig) (voteuc.Ledger, error) {
	switch cfg.votesBackend {
	case VotesRedis:
		return voterepo.NewRedisLedger(s, cfg.keyPrefix), nil
	case VotesMemory:
		return voteuc.NewMemoryLedger(), nil
	case VotesBadger:
		logger := cfg.logger
		if logger == nil {
			logger = zap.NewNop()
		}
		l, err := voterepo.OpenBadgerLedger(cfg.badgerPath, logger)
		if err != nil {
			return nil, fmt.Errorf("folio: open badger votes: %w", err)
		}
		c.closers = append(c.closers, func() { _ = l.Close() })
		return l, nil
	default:
		return nil, fmt.Errorf("folio: unknown votes backend %q", cfg.votesBackend)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	c.release()
	if c.store != nil {
		c.store.Close()
	}
}

func (c *Client) release() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
