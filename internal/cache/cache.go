// Package cache implements the short-lived answer cache keyed by a
// fingerprint of the normalized question.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Clock supplies the current time. Tests inject a fake to control expiry.
type Clock func() time.Time

type entry struct {
	answer  string
	created time.Time
}

// ResponseCache maps question fingerprints to answers for a fixed TTL.
// It is shared across concurrent requests; a single mutex around the map is
// enough at the expected request volume. Stale entries are invalidated lazily
// and evicted only when the capacity bound is hit.
type ResponseCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        Clock
}

// New creates a ResponseCache. maxEntries <= 0 means unbounded; a nil clock
// falls back to time.Now.
func New(ttl time.Duration, maxEntries int, now Clock) *ResponseCache {
	if now == nil {
		now = time.Now
	}
	return &ResponseCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

// Fingerprint is a deterministic, collision-resistant digest of the
// normalized question, used as the cache key.
func Fingerprint(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached answer for the question while it is fresh.
// Expired entries report a plain miss; the caller cannot tell them apart
// from absent ones.
func (c *ResponseCache) Get(question string) (string, bool) {
	key := Fingerprint(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.created) >= c.ttl {
		return "", false
	}
	return e.answer, true
}

// Put stores the answer for the question, unconditionally overwriting any
// previous entry for the same fingerprint.
func (c *ResponseCache) Put(question, answer string) {
	key := Fingerprint(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = entry{answer: answer, created: c.now()}
}

// Len reports the number of stored entries, fresh or stale.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked drops expired entries first; if nothing has expired it drops
// the oldest entry. Caller must hold c.mu.
func (c *ResponseCache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.created) >= c.ttl {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.created.Before(oldest) {
			oldestKey = k
			oldest = e.created
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
