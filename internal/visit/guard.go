package visit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Guard is the crawl's sole dedup and cycle-breaking mechanism. TryVisit
// atomically records the URL and returns true only on its first-ever visit;
// membership never shrinks during a run. Callers must discard any link for
// which TryVisit returns false without fetching or recursing.
type Guard interface {
	TryVisit(ctx context.Context, absoluteURL string) bool
}

type memoryGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryGuard returns the default process-local guard.
func NewMemoryGuard() Guard {
	return &memoryGuard{seen: make(map[string]struct{})}
}

func (g *memoryGuard) TryVisit(_ context.Context, absoluteURL string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[absoluteURL]; ok {
		return false
	}
	g.seen[absoluteURL] = struct{}{}
	return true
}

type redisGuard struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

// NewRedisGuard returns a guard shared between samplemap processes crawling
// the same site. Keys are namespaced per run and expire with the TTL, so the
// shared set is a dedup mechanism for one crawl, not a resume point.
func NewRedisGuard(redisClient *redis.Client, runID string, ttl time.Duration) Guard {
	return &redisGuard{
		redisClient: redisClient,
		keyPrefix:   fmt.Sprintf("samplemap:visited:%s:", runID),
		ttl:         ttl,
	}
}

func (g *redisGuard) TryVisit(ctx context.Context, absoluteURL string) bool {
	first, err := g.redisClient.SetNX(ctx, g.keyPrefix+absoluteURL, 1, g.ttl).Result()
	if err != nil {
		// Treat the URL as already claimed: skipping a page is recoverable
		// by another worker, looping on it is not.
		log.Errorf("Visit guard check failed for %s: %v", absoluteURL, err)
		return false
	}
	return first
}
