package folio

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Vote backends.
const (
	VotesRedis  = "redis"
	VotesBadger = "badger"
	VotesMemory = "memory"
)

type clientConfig struct {
	driver   string // "valkey" or "redis"
	addrs    []string
	password string

	keyPrefix     string
	votesBackend  string
	badgerPath    string
	searchWorkers int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithAddrs replaces the seed addresses, e.g. for a cluster.
func WithAddrs(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
	})
}

// WithKeyPrefix namespaces every key the client reads or writes.
// Defaults to "folio:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithBadgerVotes keeps vote ledgers in an embedded Badger database at path
// instead of the shared store.
func WithBadgerVotes(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.votesBackend = VotesBadger
		c.badgerPath = path
	})
}

// WithMemoryVotes keeps vote ledgers in process memory. Tallies are lost on Close.
func WithMemoryVotes() Option {
	return optionFunc(func(c *clientConfig) {
		c.votesBackend = VotesMemory
	})
}

// WithSearchWorkers sizes the pool that scores collections in parallel.
// Default: 4.
func WithSearchWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchWorkers = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
