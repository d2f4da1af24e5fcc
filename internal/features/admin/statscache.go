package admin

import (
	"context"
	"sync"
	"time"
)

// Stats aggregates the dashboard counters
type Stats struct {
	TotalPosts     int64 `json:"totalPosts"`
	PendingPosts   int64 `json:"pendingPosts"`
	ApprovedPosts  int64 `json:"approvedPosts"`
	RejectedPosts  int64 `json:"rejectedPosts"`
	TotalReports   int64 `json:"totalReports"`
	TotalReactions int64 `json:"totalReactions"`
}

// statsCache memoizes a computed Stats value for a fixed TTL. Moderation
// actions invalidate it so the next read recomputes.
type statsCache struct {
	mu         sync.Mutex
	value      *Stats
	computedAt time.Time
	ttl        time.Duration
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{ttl: ttl}
}

// get returns the cached value while fresh, otherwise recomputes via
// compute and stores the result
func (c *statsCache) get(ctx context.Context, compute func(context.Context) (*Stats, error)) (*Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value != nil && time.Since(c.computedAt) < c.ttl {
		return c.value, nil
	}

	stats, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	c.value = stats
	c.computedAt = time.Now()
	return stats, nil
}

func (c *statsCache) invalidate() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}
