package dataset

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc reads a dataset from a path
type LoadFunc func(path string) (*Dataset, error)

// Cache keeps each dataset in memory after its first load.
// Entries are keyed by file path and never invalidated; the files are
// static for the life of the process.
type Cache struct {
	load  LoadFunc
	hooks []func(*Dataset) error

	mu      sync.RWMutex
	entries map[string]*Dataset
	group   singleflight.Group
}

// NewCache creates a cache that loads datasets with load
func NewCache(load LoadFunc) *Cache {
	if load == nil {
		load = LoadFile
	}
	return &Cache{
		load:    load,
		entries: make(map[string]*Dataset),
	}
}

// OnLoad registers fn to run once after each successful first load.
// A hook error fails the load and nothing is cached.
func (c *Cache) OnLoad(fn func(*Dataset) error) {
	c.mu.Lock()
	c.hooks = append(c.hooks, fn)
	c.mu.Unlock()
}

// Get returns the dataset at path, loading it on first use.
// Concurrent first calls for the same path share one load.
func (c *Cache) Get(path string) (*Dataset, error) {
	c.mu.RLock()
	ds, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return ds, nil
	}

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		c.mu.RLock()
		ds, ok := c.entries[path]
		hooks := c.hooks
		c.mu.RUnlock()
		if ok {
			return ds, nil
		}

		ds, err := c.load(path)
		if err != nil {
			return nil, err
		}
		for _, hook := range hooks {
			if err := hook(ds); err != nil {
				return nil, fmt.Errorf("dataset %s load hook failed: %w", path, err)
			}
		}

		c.mu.Lock()
		c.entries[path] = ds
		c.mu.Unlock()

		log.Printf("[DatasetCache] Cached %s", path)
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Len returns the number of cached datasets
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
