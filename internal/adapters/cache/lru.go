package cache

import (
	"context"
	"time"

	"github.com/ErVaaL/argos-resource-service/pkg/decorator"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is an in-process query cache backed by an expirable LRU map.
// Entries share the TTL the cache was built with; the per-call TTL on
// Set is accepted to satisfy the decorator contract but not honored
// per entry.
type LRU[Q decorator.Query, R decorator.Result] struct {
	entries *expirable.LRU[string, R]
	keyFn   func(Q) string
}

// NewLRU builds a cache holding up to size results for ttl. keyFn must
// produce a stable key for equal queries.
func NewLRU[Q decorator.Query, R decorator.Result](size int, ttl time.Duration, keyFn func(Q) string) *LRU[Q, R] {
	return &LRU[Q, R]{
		entries: expirable.NewLRU[string, R](size, nil, ttl),
		keyFn:   keyFn,
	}
}

func (c *LRU[Q, R]) Get(_ context.Context, query Q) (R, bool, error) {
	result, ok := c.entries.Get(c.keyFn(query))

	return result, ok, nil
}

func (c *LRU[Q, R]) Set(_ context.Context, query Q, result R, _ time.Duration) error {
	c.entries.Add(c.keyFn(query), result)

	return nil
}

// Purge drops every cached entry. The write path calls it after
// mutations so reads never serve stale pages longer than the TTL.
func (c *LRU[Q, R]) Purge() {
	c.entries.Purge()
}
