package mdmath

import (
	"slices"
	"sync"
)

// Filter transforms a math expression before it is typeset.
// Implementations must not retain the expression.
type Filter interface {
	Transform(Expression) Expression
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(Expression) Expression

// Transform calls f(e).
func (f FilterFunc) Transform(e Expression) Expression {
	return f(e)
}

// FilterChain is an ordered list of filters applied to every expression.
// Registration happens at startup; Apply is safe for concurrent use.
type FilterChain struct {
	mu      sync.RWMutex
	entries []*Registration
}

// Registration identifies one filter added to a chain.
type Registration struct {
	chain  *FilterChain
	filter Filter
}

// Add appends f to the end of the chain.
// Filters run in the order they were added.
func (c *FilterChain) Add(f Filter) *Registration {
	r := &Registration{chain: c, filter: f}
	c.mu.Lock()
	c.entries = append(c.entries, r)
	c.mu.Unlock()
	return r
}

// Remove detaches the filter from its chain. Calling Remove twice is a no-op.
func (r *Registration) Remove() {
	c := r.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.Index(c.entries, r); i >= 0 {
		// Copy so slices already handed to Apply stay intact
		c.entries = slices.Delete(slices.Clone(c.entries), i, i+1)
	}
}

// Len returns the number of registered filters.
func (c *FilterChain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Apply runs e through every filter once, in registration order.
func (c *FilterChain) Apply(e Expression) Expression {
	c.mu.RLock()
	entries := c.entries
	c.mu.RUnlock()

	for _, r := range entries {
		e = r.filter.Transform(e)
	}
	return e
}
