package cacheadapter

import (
	"time"

	"github.com/viccon/sturdyc"

	"resourced/resource/ports"
)

// Config tunes the sturdyc client backing the resource cache.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Cache is the production ports.Cache backed by sturdyc: sharded, bounded
// capacity with percentage eviction, TTL expiry. Entries are never served
// after an explicit Evict for their key.
type Cache struct {
	client *sturdyc.Client[ports.Resource]
}

func New(cfg Config) *Cache {
	if cfg.Capacity <= 0 {
		cfg = DefaultConfig()
	}
	return &Cache{
		client: sturdyc.New[ports.Resource](
			cfg.Capacity,
			cfg.NumShards,
			cfg.TTL,
			cfg.EvictionPercentage,
		),
	}
}

func (c *Cache) Get(id string) (ports.Resource, bool) {
	return c.client.Get(id)
}

func (c *Cache) Put(id string, resource ports.Resource) {
	c.client.Set(id, resource)
}

func (c *Cache) Evict(id string) {
	c.client.Delete(id)
}
