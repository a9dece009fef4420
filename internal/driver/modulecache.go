package driver

import (
	"slices"
	"sync"

	"shoumei/internal/diag"
	"shoumei/internal/project"
	"shoumei/internal/source"
)

// CacheEntry is the remembered outcome of loading one module.
type CacheEntry struct {
	Path source.ModulePath
	// Compiled is nil when the module failed.
	Compiled *Compiled
	Content  project.Digest
	Imports  []project.ImportMeta
	// FirstErr is the first error the module produced, if any.
	FirstErr *diag.Message
}

// Present reports whether the module loaded successfully.
func (e CacheEntry) Present() bool { return e.Compiled != nil }

// ModuleCache provides an in-memory cache of load outcomes keyed by module path.
type ModuleCache struct {
	mu    sync.RWMutex
	byMod map[string]CacheEntry // key: ModulePath.Key()
}

// NewModuleCache creates a ModuleCache with the given capacity hint.
func NewModuleCache(capHint int) *ModuleCache {
	return &ModuleCache{byMod: make(map[string]CacheEntry, capHint)}
}

// Get retrieves the entry for path.
func (c *ModuleCache) Get(path source.ModulePath) (CacheEntry, bool) {
	c.mu.RLock()
	rec, ok := c.byMod[path.Key()]
	c.mu.RUnlock()
	return rec, ok
}

// Put inserts an entry, overwriting any previous one for the same path.
func (c *ModuleCache) Put(e CacheEntry) {
	c.mu.Lock()
	c.byMod[e.Path.Key()] = e
	c.mu.Unlock()
}

func (c *ModuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byMod)
}

// Entries returns all entries sorted by module path.
func (c *ModuleCache) Entries() []CacheEntry {
	c.mu.RLock()
	out := make([]CacheEntry, 0, len(c.byMod))
	for _, e := range c.byMod {
		out = append(out, e)
	}
	c.mu.RUnlock()
	slices.SortFunc(out, func(a, b CacheEntry) int {
		return a.Path.Compare(b.Path)
	})
	return out
}
