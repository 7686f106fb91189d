// =============================================================================
// WZ Generator - Price List Cache
// =============================================================================
//
// An explicit memoization cache for loaded price lists, keyed by file path
// with a content fingerprint guarding staleness. Modeled as an injectable
// object rather than package state so that each test (and each GUI session)
// can construct its own and inspect hit/miss behavior.
//
// Single-threaded by design: the application triggers one user action at a
// time, so no locking is needed. A concurrent caller would have to add a
// mutex and per-key de-duplication.
//
// =============================================================================

package pricelist

import "github.com/lpkonstal/wz-generator/internal/types"

// Cache memoizes price lists per source file. Bounded in practice by the
// number of distinct price files seen during the process lifetime, which is
// one or two.
type Cache struct {
	entries map[string]cacheEntry
	hits    int
	misses  int
}

// cacheEntry pairs a loaded price list with the fingerprint of the file
// content it was read from.
type cacheEntry struct {
	fingerprint string
	prices      types.PriceList
}

// NewCache creates an empty price list cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// get returns the cached price list for (path, fingerprint). A fingerprint
// mismatch counts as a miss: the file changed and must be reloaded.
func (c *Cache) get(path, fingerprint string) (types.PriceList, bool) {
	entry, ok := c.entries[path]
	if !ok || entry.fingerprint != fingerprint {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.prices, true
}

// put stores the price list for the given path, replacing any entry for a
// previous fingerprint of the same file.
func (c *Cache) put(path, fingerprint string, prices types.PriceList) {
	c.entries[path] = cacheEntry{fingerprint: fingerprint, prices: prices}
}

// Hits reports the number of cache hits since construction.
func (c *Cache) Hits() int { return c.hits }

// Misses reports the number of cache misses since construction.
func (c *Cache) Misses() int { return c.misses }

// Len reports the number of distinct price files currently cached.
func (c *Cache) Len() int { return len(c.entries) }
