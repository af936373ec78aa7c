package cache

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
)

// cachedResponse represents a cached completion
type cachedResponse struct {
	response  string
	timestamp time.Time
}

// memoryCache in-process TTL cache with a size cap
type memoryCache struct {
	cache   map[string]cachedResponse
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	// Statistics
	hits   int64
	misses int64
}

const (
	DefaultTTL     = 5 * time.Minute
	DefaultMaxSize = 1000
)

// MemoryCache exposes statistics next to the ResponseCache contract
type MemoryCache interface {
	repository.ResponseCache
	Stats() (hits, misses int64, size int)
	Clear()
	Cleanup(ctx context.Context)
}

// NewMemoryCache creates a new response cache
func NewMemoryCache(ttl time.Duration, maxSize int) MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &memoryCache{
		cache:   make(map[string]cachedResponse),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get retrieves a cached response if it exists and is still valid
func (mc *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	cached, exists := mc.cache[key]
	if !exists {
		mc.misses++
		return "", false, nil
	}
	if mc.now().Sub(cached.timestamp) > mc.ttl {
		delete(mc.cache, key)
		mc.misses++
		return "", false, nil
	}
	mc.hits++
	return cached.response, true, nil
}

// Set stores a response, evicting the oldest entry when full
func (mc *memoryCache) Set(_ context.Context, key, response string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.cache[key]; !exists && len(mc.cache) >= mc.maxSize {
		var oldestKey string
		var oldestTime time.Time
		first := true
		for k, v := range mc.cache {
			if first || v.timestamp.Before(oldestTime) {
				oldestKey = k
				oldestTime = v.timestamp
				first = false
			}
		}
		if !first {
			delete(mc.cache, oldestKey)
		}
	}

	mc.cache[key] = cachedResponse{response: response, timestamp: mc.now()}
	return nil
}

// Cleanup removes expired entries every ttl until ctx is done
func (mc *memoryCache) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(mc.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mc.purgeExpired()
		}
	}
}

func (mc *memoryCache) purgeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	now := mc.now()
	for key, cached := range mc.cache {
		if now.Sub(cached.timestamp) > mc.ttl {
			delete(mc.cache, key)
		}
	}
}

// Stats returns cache statistics
func (mc *memoryCache) Stats() (hits, misses int64, size int) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.hits, mc.misses, len(mc.cache)
}

// Clear drops all cached entries
func (mc *memoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.cache = make(map[string]cachedResponse)
}
