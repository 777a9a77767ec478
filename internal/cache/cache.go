// Package cache provides a two-tier result cache: an in-memory L1 backed by an
// optional Redis L2 that survives restarts.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/career-coach/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix              = "cc:"
	defaultCleanupInterval = 5 * time.Minute
	redisPingTimeout       = 3 * time.Second
)

// Options configures a Cache.
type Options struct {
	// RedisURL enables the L2 tier. Empty disables it.
	RedisURL string
	// TTL is how long entries live in both tiers. Zero disables caching.
	TTL time.Duration
	// MaxEntries bounds L1. Zero means unbounded.
	MaxEntries int
	// CleanupInterval controls how often expired L1 entries are purged.
	CleanupInterval time.Duration
}

// Cache is safe for concurrent use. A nil *Cache behaves as an always-missing cache.
type Cache struct {
	l1         sync.Map      // key -> *entry
	rdb        *redis.Client // nil if Redis unavailable
	ttl        time.Duration
	maxEntries int
	log        *zap.Logger
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	stop chan struct{}
	once sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New builds a cache and starts its L1 cleanup loop. Call Close to stop it.
// An invalid or unreachable Redis only disables L2.
func New(ctx context.Context, opts Options, log *zap.Logger) *Cache {
	c := &Cache{
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		log:        logger.OrNop(log),
		now:        time.Now,
		stop:       make(chan struct{}),
	}

	if opts.RedisURL != "" {
		c.rdb = connectRedis(ctx, opts.RedisURL, c.log)
	}

	c.log.Info("cache initialized",
		zap.Duration("ttl", c.ttl),
		zap.Bool("redis", c.rdb != nil),
		zap.Int("max_entries", c.maxEntries),
	)

	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	go c.cleanupLoop(interval)
	return c
}

func connectRedis(ctx context.Context, url string, log *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid redis URL, L2 cache disabled", zap.Error(err))
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, L2 cache disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	log.Info("L2 redis cache connected", zap.String("addr", opts.Addr))
	return rdb
}

// Key builds a deterministic cache key from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:12])
}

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool {
	return c != nil && c.ttl > 0
}

// HasRedis reports whether the L2 tier is active.
func (c *Cache) HasRedis() bool {
	return c != nil && c.rdb != nil
}

// Get returns the raw bytes stored under key, trying L1 then L2. An L2 hit
// repopulates L1.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if c.now().Before(e.expiresAt) {
			c.hits.Add(1)
			return e.data, true
		}
		c.l1.Delete(key) // expired
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			c.hits.Add(1)
			c.storeL1(key, data)
			return data, true
		}
		if err != redis.Nil {
			c.log.Debug("L2 cache get failed", zap.Error(err))
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores data in both tiers.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if !c.Enabled() {
		return
	}

	c.evictIfNeeded()
	c.storeL1(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Debug("L2 cache set failed", zap.Error(err))
		}
	}
}

func (c *Cache) storeL1(key string, data []byte) {
	c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Close stops the cleanup loop and the Redis client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	var err error
	c.once.Do(func() {
		close(c.stop)
		if c.rdb != nil {
			err = c.rdb.Close()
		}
	})
	return err
}

// evictIfNeeded removes expired entries first, then the oldest ones, until L1 has
// room for one more entry.
func (c *Cache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := c.now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e, ok := val.(*entry)
			if ok && (oldestKey == nil || e.expiresAt.Before(oldestAt)) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := c.now()
			c.l1.Range(func(key, val any) bool {
				if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
					c.l1.Delete(key)
				}
				return true
			})
		}
	}
}

// GetJSON decodes a cached value of type T. Decode failures count as misses.
func GetJSON[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var out T
	data, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// SetJSON encodes v and stores it.
func SetJSON[T any](ctx context.Context, c *Cache, key string, v T) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data)
}
