package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/util"
)

// MemoryCacheEntry is a downloaded dataset body with its validators
type MemoryCacheEntry struct {
	Data         []byte
	ETag         string
	LastModified string
	FetchedAt    int64
	LastAccessed int64
}

// MemoryCache keeps remote dataset bodies keyed by URL so reloads can
// revalidate instead of downloading again, and can fall back to the last
// good body when the remote is unreachable.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*MemoryCacheEntry
	maxSize int64
	size    int64
}

// NewMemoryCache creates a cache holding at most maxSize bytes; 0 means unbounded.
func NewMemoryCache(maxSize int64) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*MemoryCacheEntry),
		maxSize: maxSize,
	}
}

func (mc *MemoryCache) Set(url string, entry *MemoryCacheEntry) {
	if entry == nil {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now().Unix()
	entry.LastAccessed = now
	if entry.FetchedAt == 0 {
		entry.FetchedAt = now
	}
	if old, ok := mc.entries[url]; ok {
		mc.size -= int64(len(old.Data))
	}
	mc.entries[url] = entry
	mc.size += int64(len(entry.Data))
	mc.evict(url)
}

func (mc *MemoryCache) Get(url string) (*MemoryCacheEntry, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[url]
	if ok {
		entry.LastAccessed = time.Now().Unix()
	}
	return entry, ok
}

// Touch marks url as revalidated without replacing its body.
func (mc *MemoryCache) Touch(url string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if entry, ok := mc.entries[url]; ok {
		now := time.Now().Unix()
		entry.FetchedAt = now
		entry.LastAccessed = now
	}
}

func (mc *MemoryCache) Delete(url string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if entry, ok := mc.entries[url]; ok {
		mc.size -= int64(len(entry.Data))
		delete(mc.entries, url)
	}
}

func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries = make(map[string]*MemoryCacheEntry)
	mc.size = 0
	util.LogInfo("MemoryCache: Cleared")
}

// Size returns the number of cached bytes.
func (mc *MemoryCache) Size() int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.size
}

func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

// evict drops least recently used entries until the cache fits, never
// dropping keep.
func (mc *MemoryCache) evict(keep string) {
	if mc.maxSize <= 0 {
		return
	}
	for mc.size > mc.maxSize {
		victim := ""
		var oldest int64
		for url, entry := range mc.entries {
			if url == keep {
				continue
			}
			if victim == "" || entry.LastAccessed < oldest {
				victim, oldest = url, entry.LastAccessed
			}
		}
		if victim == "" {
			return
		}
		mc.size -= int64(len(mc.entries[victim].Data))
		delete(mc.entries, victim)
		util.LogDebug(fmt.Sprintf("MemoryCache: Evicted %s, %d bytes cached", victim, mc.size))
	}
}
