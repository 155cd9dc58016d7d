package spell

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/redline/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// CachedChecker is a read-through cache in front of another Checker.
// Check verdicts and suggestion lists are cached per word; errors are
// never cached, so a not-yet-initialized dictionary is retried on the
// next query. Flush the cache whenever the underlying dictionary reloads.
type CachedChecker struct {
	inner Checker
	cache *gocache.Cache
}

// NewCachedChecker wraps inner with an expiring in-memory cache.
func NewCachedChecker(inner Checker, expiration, cleanupInterval time.Duration) *CachedChecker {
	return &CachedChecker{
		inner: inner,
		cache: gocache.New(expiration, cleanupInterval),
	}
}

// Check implements Checker.
func (c *CachedChecker) Check(word string) (bool, error) {
	key := "check:" + word
	if v, found := c.cache.Get(key); found {
		if known, ok := v.(bool); ok {
			log.Debug(log.CatCache, "check cache hit", "word", word)
			return known, nil
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)
	}

	known, err := c.inner.Check(word)
	if err != nil {
		return false, err
	}
	c.cache.Set(key, known, gocache.DefaultExpiration)
	return known, nil
}

// Suggest implements Checker.
func (c *CachedChecker) Suggest(word string) ([]string, error) {
	key := "suggest:" + word
	if v, found := c.cache.Get(key); found {
		if suggestions, ok := v.([]string); ok {
			log.Debug(log.CatCache, "suggest cache hit", "word", word)
			return suggestions, nil
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)
	}

	suggestions, err := c.inner.Suggest(word)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, suggestions, gocache.DefaultExpiration)
	return suggestions, nil
}

// Flush drops every cached verdict and suggestion list.
func (c *CachedChecker) Flush() {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed")
}
