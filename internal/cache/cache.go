package cache

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// KV is the raw persistent key-value text store underneath the TTL
// layer. Implementations must be safe for concurrent use.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

// entry is the stored envelope: payload plus write time in unix millis.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Cache is a TTL-bounded read/write layer over an injected KV store.
// Reads evict expired entries; writes are best-effort and never fail
// the caller.
type Cache struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func New(kv KV, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		kv:     kv,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Get loads a fresh entry into out. Returns false when the key is
// absent, expired (the entry is evicted) or undecodable.
func (c *Cache) Get(key string, out interface{}) bool {
	raw, ok, err := c.kv.Get(key)
	if err != nil {
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		c.logger.Warn("Evicting undecodable cache entry", zap.String("key", key), zap.Error(err))
		c.evict(key)
		return false
	}

	if c.now().Sub(time.UnixMilli(e.Timestamp)) > c.ttl {
		c.logger.Debug("Evicting expired cache entry", zap.String("key", key))
		c.evict(key)
		return false
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		c.logger.Warn("Cache entry payload mismatch", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put stores value under key with the current timestamp. Failures are
// logged and swallowed.
func (c *Cache) Put(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache value not serializable", zap.String("key", key), zap.Error(err))
		return
	}

	payload, err := json.Marshal(entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn("Cache envelope not serializable", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.kv.Put(key, string(payload)); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) evict(key string) {
	if err := c.kv.Delete(key); err != nil {
		c.logger.Warn("Cache eviction failed", zap.String("key", key), zap.Error(err))
	}
}
