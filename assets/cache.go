// Package assets loads decoded sprites by path and keeps the most recently
// used ones in memory.
package assets

import (
	"context"
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/retroblast-engine/ase"
)

const defaultSize = 64

// Config holds the cache settings.
type Config struct {
	Size   int                                    // Maximum number of sprites kept (0 = 64)
	Decode func(path string) (*ase.Sprite, error) // Loader used on a miss (nil = ase.DecodeFile)
}

// Option is a functional option for configuring the cache.
type Option func(*Config)

// WithSize sets how many decoded sprites the cache keeps.
func WithSize(n int) Option {
	return func(c *Config) {
		c.Size = n
	}
}

// WithDecoder replaces the function used to load a sprite on a cache miss.
func WithDecoder(decode func(path string) (*ase.Sprite, error)) Option {
	return func(c *Config) {
		c.Decode = decode
	}
}

// Cache hands out decoded sprites keyed by cleaned path. Concurrent loads of
// the same path share one decode. Sprites are shared between callers and must
// not be modified.
type Cache struct {
	decode func(path string) (*ase.Sprite, error)
	lru    *lru.Cache[string, *ase.Sprite]
	group  singleflight.Group
}

// New creates a cache with the given options.
func New(opts ...Option) (*Cache, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	if cfg.Decode == nil {
		cfg.Decode = ase.DecodeFile
	}

	l, err := lru.New[string, *ase.Sprite](cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return &Cache{decode: cfg.Decode, lru: l}, nil
}

// Load returns the sprite at path, decoding it on a miss.
func (c *Cache) Load(path string) (*ase.Sprite, error) {
	key := filepath.Clean(path)
	if s, ok := c.lru.Get(key); ok {
		return s, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if s, ok := c.lru.Get(key); ok {
			return s, nil
		}
		s, err := c.decode(key)
		if err != nil {
			return nil, fmt.Errorf("assets: load %s: %w", key, err)
		}
		c.lru.Add(key, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ase.Sprite), nil
}

// LoadAll loads every path using at most limit concurrent decodes (limit <= 0
// means no limit). The result is in the order of paths. The first failure
// cancels the remaining loads.
func (c *Cache) LoadAll(ctx context.Context, paths []string, limit int) ([]*ase.Sprite, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	out := make([]*ase.Sprite, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := c.Load(path)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Contains reports whether path is cached, without updating its recency.
func (c *Cache) Contains(path string) bool {
	return c.lru.Contains(filepath.Clean(path))
}

// Len returns the number of cached sprites.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every cached sprite.
func (c *Cache) Purge() { c.lru.Purge() }
