package cache

import (
	"context"
	"errors"
	"strconv"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
}

// Noop is used when REDIS_URL is empty: every read misses.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

func (Noop) Incr(context.Context, string) (int64, error) { return 0, nil }

func (Noop) Ping(context.Context) error { return nil }

// GenKey holds the list generation of entity. Every write bumps it, so a
// list filled from a read that raced a write lands under a dead key.
func GenKey(entity string) string {
	return "gen:" + entity
}

func ListKey(entity string, gen int64) string {
	return "list:" + entity + ":" + strconv.FormatInt(gen, 10)
}

// Generation reads the current generation of entity; a missing key is 0.
func Generation(ctx context.Context, c Cache, entity string) (int64, error) {
	raw, err := c.Get(ctx, GenKey(entity))
	if errors.Is(err, ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}
