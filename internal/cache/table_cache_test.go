package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableCache_SetGetInvalidate(t *testing.T) {
	c := New(8, time.Minute)

	c.Set(KeyMembers, []string{"a", "b"})
	v, ok := c.Get(KeyMembers)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	c.Invalidate(KeyMembers)
	_, ok = c.Get(KeyMembers)
	assert.False(t, ok, "invalidated key must miss")
}

func TestTableCache_InvalidatePrefixSweepsPagedEntries(t *testing.T) {
	c := New(8, time.Minute)

	c.Set(KeyHistory+":50:0", "page one")
	c.Set(KeyHistory+":50:50", "page two")
	c.Set(KeyMembers, "roster")

	c.InvalidatePrefix(KeyHistory)

	_, ok := c.Get(KeyHistory + ":50:0")
	assert.False(t, ok, "first history page must be swept")
	_, ok = c.Get(KeyHistory + ":50:50")
	assert.False(t, ok, "second history page must be swept")
	_, ok = c.Get(KeyMembers)
	assert.True(t, ok, "keys outside the prefix must survive")
}

func TestTableCache_TTLExpiry(t *testing.T) {
	c := New(8, 10*time.Millisecond)

	c.Set(KeyPoolState, 42)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(KeyPoolState)
	assert.False(t, ok, "entries must expire after the TTL")
}

func TestTableCache_NilReceiverIsNoOp(t *testing.T) {
	var c *TableCache

	c.Set(KeyHistory, 1)
	_, ok := c.Get(KeyHistory)
	assert.False(t, ok)
	c.Invalidate(KeyHistory)
	c.InvalidatePrefix(KeyHistory)
	c.Purge()
}
