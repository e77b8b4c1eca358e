package parser

import (
	"sync"

	"github.com/veritab/veritab/ast"
)

// Cache memoizes parsed formulas keyed by their raw text. The engine never
// owns one implicitly; callers that re-evaluate on every edit create a
// Cache, pass it to ParseCached, and Clear it when formulas change.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]ast.Condition
}

// NewCache returns an empty parse cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]ast.Condition)}
}

// Get returns the cached conditions for text, if present.
func (c *Cache) Get(text string) ([]ast.Condition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conds, ok := c.entries[text]
	return conds, ok
}

// Put stores the conditions for text.
func (c *Cache) Put(text string, conds []ast.Condition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[text] = conds
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]ast.Condition)
}

// Len returns the number of cached formulas.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ParseCached parses text through cache. A nil cache means parse directly.
func ParseCached(cache *Cache, text string) []ast.Condition {
	if cache == nil {
		return Parse(text)
	}
	if conds, ok := cache.Get(text); ok {
		return conds
	}
	conds := Parse(text)
	cache.Put(text, conds)
	return conds
}
