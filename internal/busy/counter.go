// Package busy tracks in-flight operations for the loading indicator.
package busy

import "sync"

// Counter is safe for concurrent use. It never goes below zero: an End
// without a matching Start is ignored.
type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Start() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.n++
	return c.n
}

func (c *Counter) End() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.n > 0 {
		c.n--
	}
	return c.n
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.n
}

func (c *Counter) Busy() bool {
	return c.Count() > 0
}

// Track starts an operation and returns the func that ends it.
func (c *Counter) Track() func() {
	c.Start()
	var once sync.Once
	return func() { once.Do(func() { c.End() }) }
}
