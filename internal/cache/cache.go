package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/supplysight/sync-agent/internal/config"
)

// Mode indicates which cache backend is active.
type Mode string

const (
	ModeRedis    Mode = "redis"
	ModeInMemory Mode = "in-memory"
)

type item struct {
	data      []byte
	expiresAt time.Time
}

// Cache persists last-known-good domain snapshots so a restart during a
// backend outage serves real (stale) data instead of static fallback.
// Redis when configured and reachable, an in-memory map otherwise; values
// are stored as JSON either way so reads decode uniformly.
type Cache struct {
	cfg *config.Config

	rdb *redis.Client

	mu    sync.RWMutex
	mode  Mode
	store map[string]item

	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(cfg *config.Config) *Cache {
	c := &Cache{
		cfg:    cfg,
		mode:   ModeInMemory,
		store:  make(map[string]item),
		stopCh: make(chan struct{}),
	}

	if cfg.RedisEnabled {
		c.connectRedis()
	} else {
		log.Println("Redis disabled, snapshot cache is in-memory only")
	}

	return c
}

func (c *Cache) connectRedis() {
	c.rdb = redis.NewClient(&redis.Options{
		Addr:         c.cfg.RedisAddress,
		Password:     c.cfg.RedisPassword,
		DB:           c.cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := c.rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Redis connection failed: %v (snapshot cache falling back to in-memory)", err)
		c.setMode(ModeInMemory)
		return
	}

	log.Printf("Redis connected at %s", c.cfg.RedisAddress)
	c.setMode(ModeRedis)
}

func (c *Cache) setMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// Mode reports the active backend.
func (c *Cache) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// StartHealthLoop watches Redis health and flips modes as it comes and goes.
func (c *Cache) StartHealthLoop(ctx context.Context) {
	if c.rdb == nil {
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.checkHealth()
		}
	}
}

func (c *Cache) checkHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := c.rdb.Ping(ctx).Result()
	mode := c.Mode()

	if mode == ModeRedis && err != nil {
		log.Printf("Redis health check failed: %v (switching to in-memory)", err)
		c.setMode(ModeInMemory)
	} else if mode == ModeInMemory && err == nil {
		log.Println("Redis reconnected, switching snapshot cache back to redis")
		c.setMode(ModeRedis)
	}
}

// Set stores a snapshot under key with the given TTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal snapshot for cache key %q: %v", key, err)
		return
	}

	if c.Mode() == ModeRedis {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
			log.Printf("Redis SET failed for %q: %v (falling back to in-memory)", key, err)
			c.setInMemory(key, data, ttl)
		}
		return
	}

	c.setInMemory(key, data, ttl)
}

// Get decodes the snapshot stored under key into out. Returns false when the
// key is missing, expired, or undecodable.
func (c *Cache) Get(key string, out interface{}) bool {
	var data []byte

	if c.Mode() == ModeRedis {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		raw, err := c.rdb.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return false
		}
		if err != nil {
			data = c.getInMemory(key)
		} else {
			data = raw
		}
	} else {
		data = c.getInMemory(key)
	}

	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("Failed to decode cached snapshot %q: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) setInMemory(key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = item{data: data, expiresAt: time.Now().Add(ttl)}
}

func (c *Cache) getInMemory(key string) []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.store[key]
	if !ok || time.Now().After(it.expiresAt) {
		return nil
	}
	return it.data
}

func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	if c.rdb != nil {
		c.rdb.Close()
	}
}
