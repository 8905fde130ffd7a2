package memcache

import (
	"sync"
	"time"
)

// LegKey identifies one transfer leg. Bucket is the coarse departure-time
// bucket so lookups within the same quarter hour share an entry.
type LegKey struct {
	From   string
	To     string
	Mode   string
	Bucket string
}

type Leg struct {
	DurationMinutes int
	DistanceKm      float64
	Source          string
}

type ETACacheInterface interface {
	Get(k LegKey) (Leg, bool)
	Set(k LegKey, v Leg, ttl time.Duration)
}

type etaCacheEntry struct {
	leg       Leg
	expiresAt time.Time
}

type ETACache struct {
	mu    sync.RWMutex
	store map[LegKey]etaCacheEntry
}

func NewETACache() *ETACache {
	return &ETACache{store: make(map[LegKey]etaCacheEntry)}
}

func (c *ETACache) Get(k LegKey) (Leg, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.expiresAt) {
		return Leg{}, false
	}
	return it.leg, true
}

func (c *ETACache) Set(k LegKey, v Leg, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = etaCacheEntry{leg: v, expiresAt: time.Now().Add(ttl)}
}
