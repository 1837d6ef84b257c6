package dataset

import (
	"crypto/sha256"
	"os"
	"sync"

	"github.com/dbmrq/districtboard/internal/errors"
	"github.com/dbmrq/districtboard/internal/logging"
)

// Cache memoizes parsed tables by input identity: the source name plus a
// SHA-256 of the raw bytes. Re-reading an unchanged file is a hash and a
// map lookup; a changed file (or an explicit Invalidate) forces a parse.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	sum   [sha256.Size]byte
	opts  Options
	table *Table
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Load returns the cached table for (opts.Source, data) or parses data and
// stores the result. Parse errors are not cached.
func (c *Cache) Load(data []byte, opts Options) (*Table, error) {
	sum := sha256.Sum256(data)
	key := opts.source()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.sum == sum && e.opts == opts {
		c.hits++
		c.mu.Unlock()
		return e.table, nil
	}
	c.misses++
	c.mu.Unlock()

	t, err := LoadBytes(data, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{sum: sum, opts: opts, table: t}
	c.mu.Unlock()

	logging.Debug("dataset parsed", "source", key, "rows", t.Len())
	return t, nil
}

// LoadFile reads path and resolves it through the cache.
func (c *Cache) LoadFile(path string, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.DataFileNotFound(path)
		}
		return nil, errors.DataParseError(path, err)
	}
	if opts.Source == "" {
		opts.Source = path
	}
	return c.Load(data, opts)
}

// Invalidate drops the entry for source so the next Load re-parses.
func (c *Cache) Invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, source)
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
