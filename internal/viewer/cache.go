package viewer

import "sync"

// Cache memoizes rendered page previews by page reference. It lives for the
// whole process: closing the viewer keeps warmed pages warm, and a preload
// that outlives its usefulness still lands here harmlessly. Unbounded growth
// is an accepted simplification; entries are pure memo data.
type Cache struct {
	mu       sync.Mutex
	rendered map[string]string
	pending  map[string]struct{}
}

func NewCache() *Cache {
	return &Cache{
		rendered: make(map[string]string),
		pending:  make(map[string]struct{}),
	}
}

// Get returns the cached render for ref, if any.
func (c *Cache) Get(ref string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	preview, ok := c.rendered[ref]
	return preview, ok
}

// Put stores a finished render and clears any pending mark.
func (c *Cache) Put(ref, preview string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, ref)
	c.rendered[ref] = preview
}

// StartLoad marks ref as in flight. It reports false when the ref is already
// cached or already loading, so duplicate preloads are skipped.
func (c *Cache) StartLoad(ref string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, done := c.rendered[ref]; done {
		return false
	}
	if _, loading := c.pending[ref]; loading {
		return false
	}
	c.pending[ref] = struct{}{}
	return true
}

// Fail clears the pending mark for a render that errored; the ref stays
// uncached so a later open can retry.
func (c *Cache) Fail(ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, ref)
}

// Len returns the number of cached renders.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rendered)
}
