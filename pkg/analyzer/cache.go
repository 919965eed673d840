package analyzer

import (
	"sync"
	"time"

	"github.com/lessonkit/lessonkit/models"
)

// Clock abstracts time for TTL decisions so cache and scheduler logic
// run in tests without real timers.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type cacheEntry struct {
	fingerprint string
	result      models.AnalysisResult
	storedAt    time.Time
}

// resultCache keeps one analysis result per URL. An entry is valid only
// while both the TTL window and the structural fingerprint match.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[string]cacheEntry
}

func newResultCache(ttl time.Duration, clock Clock) *resultCache {
	return &resultCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *resultCache) get(url, fingerprint string) (models.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[url]
	if !ok {
		return models.AnalysisResult{}, false
	}
	if e.fingerprint != fingerprint {
		return models.AnalysisResult{}, false
	}
	if c.clock.Now().Sub(e.storedAt) > c.ttl {
		return models.AnalysisResult{}, false
	}
	return e.result, true
}

func (c *resultCache) put(url, fingerprint string, result models.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = cacheEntry{
		fingerprint: fingerprint,
		result:      result,
		storedAt:    c.clock.Now(),
	}
}
