package memory

import (
	"encoding/hex"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/rpeek"
)

// Compile-time interface verification.
var _ rpeek.RenderCache = (*RenderCache)(nil)

// RenderCache is an in-memory rpeek.RenderCache keyed by canonical thread
// URL. Entries live until the cache is dropped; the number of distinct
// threads a user opens in one session is small.
type RenderCache struct {
	mu      sync.RWMutex
	entries map[string]rpeek.RenderEntry
}

// NewRenderCache creates an empty RenderCache.
func NewRenderCache() *RenderCache {
	return &RenderCache{
		entries: make(map[string]rpeek.RenderEntry),
	}
}

// Get returns the entry cached for url.
func (c *RenderCache) Get(url string) (rpeek.RenderEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[rpeek.CanonicalURL(url)]
	return e, ok
}

// Set overwrites the entry for url and stamps it with the content hash.
// An entry whose hash and item match the cached one is not rewritten.
func (c *RenderCache) Set(url string, entry rpeek.RenderEntry) (rpeek.RenderEntry, bool) {
	entry.Hash = hashContent(entry.Content)
	key := rpeek.CanonicalURL(url)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[key]; ok && prev.Hash == entry.Hash && prev.ItemID == entry.ItemID {
		return prev, false
	}
	c.entries[key] = entry
	return entry, true
}

// Len returns the number of cached threads.
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}
