package optimizer

// resultCache is a bounded map that evicts the entry inserted longest ago,
// regardless of how recently it was read. It is not safe for concurrent use;
// the Engine guards it.
type resultCache struct {
	entries map[string]*OptimizationResult
	order   []string
	max     int
}

func newResultCache(size int) *resultCache {
	return &resultCache{entries: make(map[string]*OptimizationResult), max: size}
}

func (c *resultCache) get(key string) (*OptimizationResult, bool) {
	r, ok := c.entries[key]
	return r, ok
}

// put stores r under key. Re-inserting an existing key replaces the value
// and keeps its original position.
func (c *resultCache) put(key string, r *OptimizationResult) (evicted string) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = r
		return ""
	}
	if len(c.order) >= c.max {
		evicted = c.order[0]
		c.order = c.order[1:]
		delete(c.entries, evicted)
	}
	c.entries[key] = r
	c.order = append(c.order, key)
	return evicted
}

func (c *resultCache) size() int {
	return len(c.entries)
}

func (c *resultCache) clear() {
	c.entries = make(map[string]*OptimizationResult)
	c.order = nil
}
