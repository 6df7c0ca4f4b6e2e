package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/folio/internal/db"
)

// RunInts runs s with EVALSHA, falling back to EVAL when the server has not
// cached it yet, and returns the integer array reply.
func (s *Store) RunInts(ctx context.Context, script *db.Script, keys, args []string) ([]int64, error) {
	vals, err := s.lua(script).Exec(ctx, s.client, keys, args).AsIntSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpEval, Err: fmt.Errorf("%s: %w", script.Name, err)}
	}
	return vals, nil
}

func (s *Store) lua(script *db.Script) *rueidis.Lua {
	if l, ok := s.scripts.Load(script.Name); ok {
		return l.(*rueidis.Lua)
	}
	l, _ := s.scripts.LoadOrStore(script.Name, rueidis.NewLuaScript(script.Source))
	return l.(*rueidis.Lua)
}
