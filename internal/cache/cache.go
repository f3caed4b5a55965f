package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"video-tutor/internal/model"
	"video-tutor/pkg/log"
)

// Payload is the cached result of one completion call.
type Payload struct {
	Answer     string               `json:"answer"`
	TokensUsed int                  `json:"tokens_used"`
	Metadata   model.AnswerMetadata `json:"metadata"`
}

func (p Payload) clone() Payload {
	out := p
	out.Metadata = p.Metadata.Clone()
	return out
}

// approximate in-memory footprint, used for the byte budget
func (p Payload) size() int64 {
	n := int64(len(p.Answer)) + int64(len(p.Metadata.Model)) + int64(len(p.Metadata.LessonID))
	for k, v := range p.Metadata.Extra {
		n += int64(len(k) + len(v))
	}
	return n + 64
}

// Stats is a snapshot of cache counters and occupancy.
type Stats struct {
	Hits         uint64 `json:"hits"`
	Misses       uint64 `json:"misses"`
	Evictions    uint64 `json:"evictions"`
	TotalEntries int    `json:"total_entries"`
	SizeBytes    int64  `json:"size_bytes"`
}

type entry struct {
	fingerprint string
	payload     Payload
	createdAt   time.Time
	lastAccess  time.Time
	ttl         time.Duration
	size        int64
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Cache deduplicates completion results by question fingerprint, with TTL
// expiry and size-bounded eviction. All operations are in-memory and
// non-blocking; a single mutex covers the entry map.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	defaultTTL time.Duration
	maxBytes   int64
	sizeBytes  int64

	hits      uint64
	misses    uint64
	evictions uint64

	l   log.Logger
	now func() time.Time
}

// evictFraction of entries removed (oldest by last access) when the byte
// budget is exceeded.
const evictFraction = 0.25

// New creates a response cache with the given default TTL and byte budget.
func New(l log.Logger, defaultTTL time.Duration, maxBytes int64) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	if maxBytes <= 0 {
		maxBytes = 100 * 1024 * 1024
	}
	return &Cache{
		entries:    make(map[string]*entry),
		defaultTTL: defaultTTL,
		maxBytes:   maxBytes,
		l:          l,
		now:        time.Now,
	}
}

// Get returns the cached payload for the question, or false on a miss.
// Expired entries count as misses and are purged. A hit refreshes the
// entry's last-access time and returns a copy of the payload.
func (c *Cache) Get(ctx context.Context, question, contextKey, language string) (Payload, bool) {
	fp := Fingerprint(question, contextKey, language)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fp]
	if !ok {
		c.misses++
		return Payload{}, false
	}
	if e.expired(c.now()) {
		c.removeLocked(fp)
		c.misses++
		return Payload{}, false
	}

	e.lastAccess = c.now()
	c.hits++
	return e.payload.clone(), true
}

// Put stores the payload under the question's fingerprint, overwriting any
// existing entry, and runs the capacity check synchronously before
// returning. A non-positive ttl uses the cache default. Returns the
// fingerprint.
func (c *Cache) Put(ctx context.Context, question, contextKey, language string, payload Payload, ttl time.Duration) string {
	fp := Fingerprint(question, contextKey, language)
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := &entry{
		fingerprint: fp,
		payload:     payload.clone(),
		createdAt:   now,
		lastAccess:  now,
		ttl:         ttl,
		size:        payload.size(),
	}

	// Replace, not shadow: the old entry must leave the map with its size in
	// the same step, or the capacity check below could evict it and subtract
	// that size twice. An overwrite is not an eviction.
	if old, ok := c.entries[fp]; ok {
		c.sizeBytes -= old.size
		delete(c.entries, fp)
	}

	// Make room before the new entry becomes visible.
	if c.sizeBytes+e.size > c.maxBytes {
		c.evictExpiredLocked()
	}
	if c.sizeBytes+e.size > c.maxBytes {
		evicted := c.evictOldestLocked(evictFraction)
		c.l.Infof(ctx, "cache: byte budget exceeded, evicted %d oldest entries", evicted)
	}

	c.entries[fp] = e
	c.sizeBytes += e.size
	return fp
}

// EvictExpired removes every expired entry.
func (c *Cache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictExpiredLocked()
}

// EvictOldest removes the given fraction of entries, oldest last-access
// first.
func (c *Cache) EvictOldest(fraction float64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictOldestLocked(fraction)
}

// Stats returns a snapshot of counters and occupancy. Evictions counts
// every removal the cache initiates itself, TTL expiry included, not just
// capacity-driven ones.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:         c.hits,
		Misses:       c.misses,
		Evictions:    c.evictions,
		TotalEntries: len(c.entries),
		SizeBytes:    c.sizeBytes,
	}
}

// Clear removes all entries. Hit/miss/eviction counters deliberately survive
// so long-run ratios stay meaningful across flushes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.sizeBytes = 0
}

func (c *Cache) evictExpiredLocked() int {
	now := c.now()
	removed := 0
	for fp, e := range c.entries {
		if e.expired(now) {
			c.removeLocked(fp)
			removed++
		}
	}
	return removed
}

func (c *Cache) evictOldestLocked(fraction float64) int {
	if fraction <= 0 || len(c.entries) == 0 {
		return 0
	}

	ordered := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].lastAccess.Before(ordered[j].lastAccess)
	})

	toRemove := int(float64(len(ordered)) * fraction)
	if toRemove < 1 {
		toRemove = 1
	}
	for i := 0; i < toRemove; i++ {
		c.removeLocked(ordered[i].fingerprint)
	}
	return toRemove
}

func (c *Cache) removeLocked(fp string) {
	if e, ok := c.entries[fp]; ok {
		c.sizeBytes -= e.size
		delete(c.entries, fp)
		c.evictions++
	}
}
