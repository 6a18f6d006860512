// internal/metrics/cache.go
package metrics

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mwiater/modelcompare/internal/logging"
)

// Cache memoizes Load by file path, modification time and size, so repeated
// renders of an unchanged CSV skip parsing. Failed loads are never cached.
type Cache struct {
	mutex   sync.Mutex
	entries map[string]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	table   *Table
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Load returns the cached table for path when the file is unchanged since it
// was parsed, and otherwise loads and caches it. A nil Cache always loads.
func (c *Cache) Load(path string, required []string) (*Table, error) {
	if c == nil {
		return Load(path, required)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "stat", Err: err}
	}
	key := path + "|" + strings.Join(required, ",")

	c.mutex.Lock()
	entry, ok := c.entries[key]
	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		c.hits++
		c.mutex.Unlock()
		return entry.table, nil
	}
	c.misses++
	c.mutex.Unlock()

	if ok {
		logging.LogEvent("[METRICS] %s changed on disk, reloading", path)
	}
	table, err := Load(path, required)
	if err != nil {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, err
	}

	c.mutex.Lock()
	c.entries[key] = cacheEntry{modTime: info.ModTime(), size: info.Size(), table: table}
	c.mutex.Unlock()
	return table, nil
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.hits, c.misses
}

// Reset drops every cached table.
func (c *Cache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]cacheEntry)
}
