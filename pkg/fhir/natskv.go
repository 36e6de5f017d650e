package fhir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream KV cache backend. It lets
// several client processes share one response cache.
type NATSKVConfig struct {
	// URL is the NATS server URL.
	URL string

	// Bucket is the KV bucket name. Created when it does not exist.
	Bucket string

	// TTL is the bucket-level TTL applied on creation.
	TTL time.Duration

	// Credentials is an optional NATS credentials file path.
	Credentials string
}

// NATSKVCache stores cache entries in a NATS JetStream KV bucket.
type NATSKVCache struct {
	conn   *nats.Conn
	bucket nats.KeyValue
}

// NewNATSKVCache connects to NATS and opens (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	var opts []nats.Option
	if config.Credentials != "" {
		opts = append(opts, nats.UserCredentials(config.Credentials))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	bucket, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		bucket, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, bucket: bucket}, nil
}

// Get retrieves an entry. Expired entries are deleted and reported as
// absent.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.bucket.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	var entry CacheEntry
	if err := json.Unmarshal(kvEntry.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.bucket.Delete(key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if _, err := c.bucket.Put(key, data); err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	if err := c.bucket.Delete(key); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear removes all entries from the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.bucket.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		if err := c.bucket.Delete(key); err != nil {
			return fmt.Errorf("deleting cache entry: %w", err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for the key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close closes the NATS connection.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}
