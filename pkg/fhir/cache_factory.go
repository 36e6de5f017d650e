package fhir

import (
	"context"
	"fmt"
	"time"

	"github.com/medwire-io/fhir-client/internal/constants"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents the in-memory LRU cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents the NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures the response cache backend.
type CacheConfig struct {
	// Type is the cache backend type.
	Type CacheType

	// MaxSize is the maximum number of cached responses (memory
	// backend).
	MaxSize int

	// TTL is how long a cached response stays fresh.
	TTL time.Duration

	// NATS holds the NATS KV backend configuration.
	NATS *NATSKVConfig
}

// DefaultCacheConfig returns the default memory-backed configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:    CacheTypeMemory,
		MaxSize: constants.DefaultCacheSize,
		TTL:     constants.DefaultCacheTTL,
	}
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		maxSize := config.MaxSize
		if maxSize <= 0 {
			maxSize = constants.DefaultCacheSize
		}

		return NewMemoryCache(maxSize), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NoOpCache is a cache that does nothing. It stands in when caching is
// not configured, so every lookup is a miss and every store is
// discarded.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
