package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	cache := GetCache()
	cache.Flush()

	cache.Set("greeting", "hello", time.Minute)
	assert.Equal(t, "hello", cache.Get("greeting"))
	assert.Nil(t, cache.Get("missing"))
}

func TestCacheExpiry(t *testing.T) {
	cache := GetCache()
	cache.Flush()

	cache.Set("short", "lived", 30*time.Millisecond)
	assert.Equal(t, "lived", cache.Get("short"))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, cache.Get("short"), "expired entries read as missing")
}

func TestCacheDeleteAndFlush(t *testing.T) {
	cache := GetCache()
	cache.Flush()

	cache.Set("a", 1, time.Minute)
	cache.Set("b", 2, time.Minute)

	cache.Delete("a")
	assert.Nil(t, cache.Get("a"))
	assert.Equal(t, 2, cache.Get("b"))

	cache.Flush()
	assert.Nil(t, cache.Get("b"))
}

func TestCacheLastWriterWins(t *testing.T) {
	cache := GetCache()
	cache.Flush()

	cache.Set("key", "first", time.Minute)
	cache.Set("key", "second", time.Minute)
	assert.Equal(t, "second", cache.Get("key"))
}
