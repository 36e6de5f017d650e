package fhir

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Cache is the response cache backend. Implementations must treat an
// expired entry as absent on Get.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a cached response body with its expiry.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry's TTL has passed.
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// CacheKey derives a canonical key from the outbound request identity:
// method, target, parameters, and the headers that affect the response.
// Logically identical requests always produce the same key.
func CacheKey(method, target string, query url.Values, headers map[string]string) string {
	var builder strings.Builder

	builder.WriteString(method)
	builder.WriteByte('\n')
	builder.WriteString(target)
	builder.WriteByte('\n')

	if len(query) > 0 {
		// url.Values.Encode sorts keys, keeping the key stable across
		// equivalent parameter orderings.
		builder.WriteString(query.Encode())
	}

	builder.WriteByte('\n')

	if len(headers) > 0 {
		keys := make([]string, 0, len(headers))
		for key := range headers {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			builder.WriteString(key)
			builder.WriteByte(':')
			builder.WriteString(headers[key])
			builder.WriteByte('\n')
		}
	}

	sum := sha256.Sum256([]byte(builder.String()))

	return hex.EncodeToString(sum[:])
}

// MemoryCache is a bounded in-memory cache with LRU eviction and lazy
// TTL expiry. Lookup-then-store sequences are atomic per key.
type MemoryCache struct {
	mu       sync.Mutex
	maxSize  int
	entries  map[string]*list.Element
	eviction *list.List
}

type memoryCacheItem struct {
	key   string
	entry *CacheEntry
}

// NewMemoryCache creates a memory cache holding at most maxSize
// entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}

	return &MemoryCache{
		maxSize:  maxSize,
		entries:  make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Get retrieves an entry and marks it recently used. An expired entry
// is removed and reported as absent.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	item := element.Value.(*memoryCacheItem)
	if item.entry.Expired() {
		c.removeElement(element)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	c.eviction.MoveToFront(element)

	return item.entry, nil
}

// Set stores an entry, evicting the least-recently-used entry when the
// cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		element.Value.(*memoryCacheItem).entry = entry
		c.eviction.MoveToFront(element)

		return nil
	}

	if c.eviction.Len() >= c.maxSize {
		oldest := c.eviction.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}

	c.entries[key] = c.eviction.PushFront(&memoryCacheItem{key: key, entry: entry})

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		c.removeElement(element)
	}

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.eviction.Init()

	return nil
}

// Has reports whether a live entry exists for the key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return false
	}

	return !element.Value.(*memoryCacheItem).entry.Expired()
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.eviction.Len()
}

func (c *MemoryCache) removeElement(element *list.Element) {
	item := element.Value.(*memoryCacheItem)
	delete(c.entries, item.key)
	c.eviction.Remove(element)
}
