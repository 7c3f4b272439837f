package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/wayfinder/pkg/cache"
	"github.com/matzehuels/wayfinder/pkg/observability"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// cacheKeyType tags cache hook events emitted by this package.
const cacheKeyType = "links"

// Cached memoizes expansions of an inner source. Remote backends answer the
// same per-node query repeatedly across searches; the cache keeps those
// answers local with a TTL.
//
// Cache failures never fail the expansion: a broken read is a miss, a broken
// write is dropped. Only the inner source decides whether Expand succeeds.
type Cached struct {
	inner search.Expander[string]
	cache cache.Cache
	scope string
	ttl   time.Duration
}

// NewCached wraps inner with the given cache. scope namespaces keys so
// different backends sharing one cache directory cannot collide (use e.g.
// the source URL or "redis:" + addr).
func NewCached(inner search.Expander[string], c cache.Cache, scope string, ttl time.Duration) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Cached{inner: inner, cache: c, scope: scope, ttl: ttl}
}

// Expand returns cached links when fresh, otherwise asks the inner source
// and stores its answer.
func (s *Cached) Expand(ctx context.Context, node string) ([]search.Link[string], error) {
	key := s.scope + ":links:" + node
	hooks := observability.Cache()

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var links []search.Link[string]
		if err := json.Unmarshal(data, &links); err == nil {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return links, nil
		}
		// Corrupt entry: fall through to the source and overwrite it.
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	links, err := s.inner.Expand(ctx, node)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(links); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err == nil {
			hooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return links, nil
}

var _ search.Expander[string] = (*Cached)(nil)
