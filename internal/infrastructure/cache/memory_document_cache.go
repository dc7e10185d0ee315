package cache

import (
	"context"
	"sync"
	"time"
)

// documentEntry is a cached rendered document with expiration
type documentEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryDocumentCache stores rendered documents in an in-memory map.
// This is suitable for single-instance deployments and testing.
type MemoryDocumentCache struct {
	mu        sync.RWMutex
	entries   map[string]documentEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryDocumentCache creates an in-memory document cache. It starts
// a background goroutine to evict expired entries.
func NewMemoryDocumentCache() *MemoryDocumentCache {
	c := &MemoryDocumentCache{
		entries:  make(map[string]documentEntry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached document for key, if present and unexpired
func (c *MemoryDocumentCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores a rendered document under key with a TTL
func (c *MemoryDocumentCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = documentEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *MemoryDocumentCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *MemoryDocumentCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *MemoryDocumentCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
