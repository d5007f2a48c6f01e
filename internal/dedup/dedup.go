package dedup

import "time"

// Cache tracks recently emitted alert fingerprints.
//
// Not safe for concurrent use; the poll loop is the only caller.
type Cache struct {
	ttl     time.Duration
	expires map[string]time.Time
}

// NewCache creates a cache with the given entry lifetime. A TTL of zero or
// less disables deduplication: every fingerprint is treated as new and
// nothing is recorded.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		expires: make(map[string]time.Time),
	}
}

// ShouldEmit reports whether an event with this fingerprint may be alerted
// now. On a true result the fingerprint is recorded until now+ttl; a later
// call with the same fingerprint returns false until the entry expires.
func (c *Cache) ShouldEmit(fingerprint string, now time.Time) bool {
	if c.ttl <= 0 {
		return true
	}

	c.gc(now)

	if exp, ok := c.expires[fingerprint]; ok && now.Before(exp) {
		return false
	}

	c.expires[fingerprint] = now.Add(c.ttl)
	return true
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return len(c.expires)
}

// gc drops expired entries. Size is bounded by distinct fingerprints seen
// within one TTL window, so a full pass stays cheap.
func (c *Cache) gc(now time.Time) {
	for fp, exp := range c.expires {
		if !now.Before(exp) {
			delete(c.expires, fp)
		}
	}
}
