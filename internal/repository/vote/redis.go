package vote

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/db"
	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

// redisStore is the consumer interface for the shared ledger (ISP).
type redisStore interface {
	RunInts(ctx context.Context, s *db.Script, keys, args []string) ([]int64, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// applyScript performs the toggle transition in one server-side step.
//
//	KEYS[1] voters hash (voter -> "type:unixms"), KEYS[2] tally hash (up, down)
//	ARGV[1] voter, ARGV[2] up|down, ARGV[3] unix ms
//	reply {action, up, down, voters}; action 0 added, 1 retracted, 2 switched
var applyScript = &db.Script{
	Name: "vote_apply",
	Source: `
local function dec(field)
  local v = tonumber(redis.call('HGET', KEYS[2], field) or '0')
  if v > 0 then redis.call('HINCRBY', KEYS[2], field, -1) end
end
local t = ARGV[2]
local other = 'up'
if t == 'up' then other = 'down' end
local prev = redis.call('HGET', KEYS[1], ARGV[1])
local action
if not prev then
  redis.call('HSET', KEYS[1], ARGV[1], t .. ':' .. ARGV[3])
  redis.call('HINCRBY', KEYS[2], t, 1)
  action = 0
elseif string.match(prev, '^%a+') == t then
  redis.call('HDEL', KEYS[1], ARGV[1])
  dec(t)
  action = 1
else
  redis.call('HSET', KEYS[1], ARGV[1], t .. ':' .. ARGV[3])
  redis.call('HINCRBY', KEYS[2], t, 1)
  dec(other)
  action = 2
end
local up = tonumber(redis.call('HGET', KEYS[2], 'up') or '0')
local down = tonumber(redis.call('HGET', KEYS[2], 'down') or '0')
return {action, up, down, redis.call('HLEN', KEYS[1])}
`,
}

var scriptActions = []domvote.Action{domvote.Added, domvote.Retracted, domvote.Switched}

// RedisLedger keeps ledgers in Redis/Valkey. Every toggle is a single Lua
// call, so concurrent votes on one target serialize on the server.
// Both keys of a target share a hash tag and land in one cluster slot.
type RedisLedger struct {
	store  redisStore
	prefix string
}

// NewRedisLedger creates a shared ledger backend.
func NewRedisLedger(s redisStore, prefix string) *RedisLedger {
	return &RedisLedger{store: s, prefix: domain.KeyPrefixOr(prefix)}
}

// Apply toggles the voter's vote atomically.
func (l *RedisLedger) Apply(ctx context.Context, target domvote.Target, voterID string, t domvote.Type, now time.Time) (domvote.Action, domvote.Tally, error) {
	keys := []string{l.votersKey(target), l.tallyKey(target)}
	args := []string{voterID, string(t), strconv.FormatInt(now.UnixMilli(), 10)}

	reply, err := l.store.RunInts(ctx, applyScript, keys, args)
	if err != nil {
		return "", domvote.Tally{}, fmt.Errorf("apply %s: %w", target.Key(), err)
	}
	if len(reply) != 4 || reply[0] < 0 || int(reply[0]) >= len(scriptActions) {
		return "", domvote.Tally{}, fmt.Errorf("apply %s: unexpected reply %v", target.Key(), reply)
	}

	tally := domvote.Tally{Upvotes: int(reply[1]), Downvotes: int(reply[2])}
	if voters := int(reply[3]); tally.Upvotes+tally.Downvotes != voters {
		return "", domvote.Tally{}, &domain.IntegrityError{
			TargetID: target.Key(),
			Reason:   fmt.Sprintf("counters %d/%d disagree with %d voters", tally.Upvotes, tally.Downvotes, voters),
		}
	}
	return scriptActions[reply[0]], tally, nil
}

// Tally reads the counters; missing ledgers read as empty.
func (l *RedisLedger) Tally(ctx context.Context, target domvote.Target) (domvote.Tally, error) {
	m, err := l.store.HGetAll(ctx, l.tallyKey(target))
	if err != nil {
		return domvote.Tally{}, fmt.Errorf("tally %s: %w", target.Key(), err)
	}
	return parseTally(m), nil
}

// Reset drops both hashes of the target.
func (l *RedisLedger) Reset(ctx context.Context, target domvote.Target) error {
	if err := l.store.Del(ctx, l.votersKey(target), l.tallyKey(target)); err != nil {
		return fmt.Errorf("reset %s: %w", target.Key(), err)
	}
	return nil
}

// Tallies scans every tally hash.
func (l *RedisLedger) Tallies(ctx context.Context) ([]domvote.TargetTally, error) {
	keys, err := l.store.Scan(ctx, l.prefix+"votes:{*}:tally")
	if err != nil {
		return nil, fmt.Errorf("scan tallies: %w", err)
	}
	out := make([]domvote.TargetTally, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	hashes, err := l.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load tallies: %w", err)
	}
	for i, key := range keys {
		target, ok := l.targetOf(key)
		if !ok || len(hashes[i]) == 0 {
			continue
		}
		out = append(out, domvote.TargetTally{Target: target, Tally: parseTally(hashes[i])})
	}
	return out, nil
}

func (l *RedisLedger) votersKey(t domvote.Target) string {
	return l.prefix + "votes:{" + t.Key() + "}:voters"
}

func (l *RedisLedger) tallyKey(t domvote.Target) string {
	return l.prefix + "votes:{" + t.Key() + "}:tally"
}

func (l *RedisLedger) targetOf(tallyKey string) (domvote.Target, bool) {
	rest, ok := strings.CutPrefix(tallyKey, l.prefix+"votes:{")
	if !ok {
		return domvote.Target{}, false
	}
	key, ok := strings.CutSuffix(rest, "}:tally")
	if !ok {
		return domvote.Target{}, false
	}
	t, err := domvote.ParseKey(key)
	return t, err == nil
}

func parseTally(m map[string]string) domvote.Tally {
	up, _ := strconv.Atoi(m["up"])
	down, _ := strconv.Atoi(m["down"])
	return domvote.Tally{Upvotes: up, Downvotes: down}
}
