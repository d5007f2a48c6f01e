package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldEmitOncePerTTL(t *testing.T) {
	c := NewCache(10 * time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.ShouldEmit("wallet:abc", now))
	assert.False(t, c.ShouldEmit("wallet:abc", now))
	assert.False(t, c.ShouldEmit("wallet:abc", now.Add(9*time.Minute)))
}

func TestExpiredEntryTreatedAsNew(t *testing.T) {
	c := NewCache(10 * time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.ShouldEmit("wallet:abc", now))
	assert.True(t, c.ShouldEmit("wallet:abc", now.Add(10*time.Minute)))
	assert.False(t, c.ShouldEmit("wallet:abc", now.Add(11*time.Minute)))
}

func TestDistinctFingerprintsIndependent(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()

	assert.True(t, c.ShouldEmit("wallet:abc", now))
	assert.True(t, c.ShouldEmit("fill:abc", now))
	assert.Equal(t, 2, c.Len())
}

func TestZeroTTLDisablesDedup(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Minute} {
		c := NewCache(ttl)
		now := time.Now()

		assert.True(t, c.ShouldEmit("wallet:abc", now))
		assert.True(t, c.ShouldEmit("wallet:abc", now))
		assert.Equal(t, 0, c.Len())
	}
}

func TestLazyGC(t *testing.T) {
	c := NewCache(time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c.ShouldEmit("a", now)
	c.ShouldEmit("b", now)
	assert.Equal(t, 2, c.Len())

	// A lookup after expiry purges the stale entries.
	c.ShouldEmit("c", now.Add(2*time.Minute))
	assert.Equal(t, 1, c.Len())
}
