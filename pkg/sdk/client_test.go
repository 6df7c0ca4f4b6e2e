package folio

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "memcached", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenLedger_UnknownBackend(t *testing.T) {
	c := &Client{}
	if _, err := c.openLedger(nil, &clientConfig{votesBackend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown votes backend")
	}
}

func TestOpenLedger_Badger(t *testing.T) {
	c := &Client{}
	l, err := c.openLedger(nil, &clientConfig{votesBackend: VotesBadger, badgerPath: t.TempDir()})
	if err != nil {
		t.Fatalf("openLedger: %v", err)
	}
	if l == nil {
		t.Fatal("expected a ledger")
	}
	if len(c.closers) != 1 {
		t.Fatalf("closers = %d, want 1", len(c.closers))
	}
	c.Close()
	if c.closers != nil {
		t.Error("Close must drain closers")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass").apply(cfg2)
	if cfg2.driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg2.driver)
	}
	WithAddrs("a:1", "b:2").apply(cfg2)
	if len(cfg2.addrs) != 2 {
		t.Errorf("addrs = %v, want 2 entries", cfg2.addrs)
	}

	cfg3 := &clientConfig{}
	WithKeyPrefix("blog:").apply(cfg3)
	if cfg3.keyPrefix != "blog:" {
		t.Errorf("keyPrefix = %q, want blog:", cfg3.keyPrefix)
	}
	WithBadgerVotes("/tmp/votes").apply(cfg3)
	if cfg3.votesBackend != VotesBadger || cfg3.badgerPath != "/tmp/votes" {
		t.Errorf("votes = (%q, %q), want badger at /tmp/votes", cfg3.votesBackend, cfg3.badgerPath)
	}
	WithMemoryVotes().apply(cfg3)
	if cfg3.votesBackend != VotesMemory {
		t.Errorf("votesBackend = %q, want memory", cfg3.votesBackend)
	}
	WithSearchWorkers(16).apply(cfg3)
	if cfg3.searchWorkers != 16 {
		t.Errorf("searchWorkers = %d, want 16", cfg3.searchWorkers)
	}

	cfg4 := &clientConfig{}
	logger := zap.NewNop()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_CloseOrder(t *testing.T) {
	var order []string
	st := &mockStore{}
	c := &Client{
		store: st,
		closers: []func(){
			func() { order = append(order, "votes") },
			func() { order = append(order, "pool") },
		},
	}
	c.Close()

	if len(order) != 2 || order[0] != "pool" || order[1] != "votes" {
		t.Errorf("close order = %v, want [pool votes]", order)
	}
	if st.closed != 1 {
		t.Errorf("store closed %d times, want 1", st.closed)
	}
}

func TestClient_Ping(t *testing.T) {
	c := &Client{store: &mockStore{}}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	c = &Client{store: &mockStore{pingErr: errors.New("connection refused")}}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "folio_client_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("folio_client_operations_total not found")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("tally: %w", ErrNotFound), "not_found"},
		{fmt.Errorf("target: %w", ErrValidation), "invalid"},
		{errors.New("connection reset"), "error"},
	}
	for _, tc := range tests {
		if got := outcome(tc.err); got != tc.want {
			t.Errorf("outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first observer: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second observer on the same registry: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}
